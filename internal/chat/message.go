package chat

import (
	"time"

	"horse.fit/homer/internal/detect"
)

// Translation is the translated text together with the target language that
// produced it. The two are only meaningful as a pair and always patch
// atomically.
type Translation struct {
	Text               string `json:"text"`
	TargetLanguageCode string `json:"target_language_code"`
	TargetLanguageName string `json:"target_language_name"`
}

// Message is one chat entry. Text is immutable after creation; annotations
// arrive asynchronously and each patch rewrites only its own field.
type Message struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	CreatedAt   time.Time         `json:"created_at"`
	Detection   *detect.Detection `json:"detection,omitempty"`
	Translation *Translation      `json:"translation,omitempty"`
	Summary     *string           `json:"summary,omitempty"`
}
