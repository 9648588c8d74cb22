package language

import (
	"sort"
	"strings"
)

// Option is one selectable language for display purposes.
type Option struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native,omitempty"`
}

type label struct {
	name   string
	native string
}

// catalogLabels maps ISO 639-1 codes to display names. The catalog only
// decorates results; it carries no behavior.
var catalogLabels = map[string]label{
	"ar": {name: "Arabic", native: "العربية"},
	"de": {name: "German", native: "Deutsch"},
	"en": {name: "English", native: "English"},
	"es": {name: "Spanish", native: "Español"},
	"fr": {name: "French", native: "Français"},
	"it": {name: "Italian", native: "Italiano"},
	"ja": {name: "Japanese", native: "日本語"},
	"ko": {name: "Korean", native: "한국어"},
	"nl": {name: "Dutch", native: "Nederlands"},
	"pl": {name: "Polish", native: "Polski"},
	"pt": {name: "Portuguese", native: "Português"},
	"ru": {name: "Russian", native: "Русский"},
	"tr": {name: "Turkish", native: "Türkçe"},
	"zh": {name: "Chinese", native: "中文"},
}

// Name returns the display name for a language code. Unknown but well-formed
// codes fall back to the uppercased code itself.
func Name(code string) string {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return ""
	}
	if labels, ok := catalogLabels[normalized]; ok {
		return labels.name
	}
	return strings.ToUpper(normalized)
}

// Known reports whether a code is part of the catalog.
func Known(code string) bool {
	_, ok := catalogLabels[NormalizeCode(code)]
	return ok
}

// Codes returns all catalog codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(catalogLabels))
	for code := range catalogLabels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Options returns the catalog as display options, sorted by code.
func Options() []Option {
	codes := Codes()
	options := make([]Option, 0, len(codes))
	for _, code := range codes {
		labels := catalogLabels[code]
		options = append(options, Option{
			Code:   code,
			Name:   labels.name,
			Native: labels.native,
		})
	}
	return options
}
