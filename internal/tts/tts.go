package tts

import "context"

// Voice describes one synthesis voice as exposed by the provider catalog.
type Voice struct {
	Name                   string   `json:"name"`
	LanguageCodes          []string `json:"language_codes"`
	SsmlGender             string   `json:"ssml_gender"`
	NaturalSampleRateHertz int32    `json:"natural_sample_rate_hertz"`
}

// Synthesizer converts a sanitized text chunk to encoded audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voiceName string, languageCode string) ([]byte, error)
}

// VoiceLister exposes the provider's voice catalog.
type VoiceLister interface {
	ListVoices(ctx context.Context, languageCode string) ([]Voice, error)
}
