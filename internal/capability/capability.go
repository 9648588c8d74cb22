package capability

import "context"

// Availability grades how usable a capability configuration is on this device.
type Availability string

const (
	AvailabilityNo    Availability = "no"
	AvailabilityMaybe Availability = "maybe"
	AvailabilityYes   Availability = "yes"
)

// Progress reports byte counters while a handle downloads its model.
type Progress struct {
	Loaded uint64
	Total  uint64
}

// ProgressFunc receives download progress events during provisioning.
// Implementations may pass nil when they do not care about progress.
type ProgressFunc func(Progress)

// Candidate is one language detection result. Providers return candidates
// sorted by descending confidence.
type Candidate struct {
	LanguageCode string
	Confidence   float64
}

// DetectorHandle is a provisioned language detector.
type DetectorHandle interface {
	Ready(ctx context.Context) error
	Detect(ctx context.Context, text string) ([]Candidate, error)
}

// TranslatorHandle is a provisioned translator bound to one language pair.
type TranslatorHandle interface {
	Ready(ctx context.Context) error
	Translate(ctx context.Context, text string) (string, error)
}

// SummarizerHandle is a provisioned summarizer.
type SummarizerHandle interface {
	Ready(ctx context.Context) error
	Summarize(ctx context.Context, text string) (string, error)
}

// DetectorCapability creates language detector handles.
type DetectorCapability interface {
	Usability(ctx context.Context) (Availability, error)
	Create(ctx context.Context, onProgress ProgressFunc) (DetectorHandle, error)
}

// TranslatorCapability creates translator handles for (source, target) pairs.
type TranslatorCapability interface {
	Usability(ctx context.Context, sourceLang, targetLang string) (Availability, error)
	Create(ctx context.Context, sourceLang, targetLang string, onProgress ProgressFunc) (TranslatorHandle, error)
}

// SummarizerCapability creates summarizer handles.
type SummarizerCapability interface {
	Usability(ctx context.Context) (Availability, error)
	Create(ctx context.Context, onProgress ProgressFunc) (SummarizerHandle, error)
}

// Provider is the host-supplied set of on-device AI capabilities. Each lookup
// reports absence as a first-class second return value; callers must not
// assume any capability exists.
type Provider interface {
	Name() string
	Detector() (DetectorCapability, bool)
	Translator() (TranslatorCapability, bool)
	Summarizer() (SummarizerCapability, bool)
}
