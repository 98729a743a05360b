package synthesis

import (
	"context"

	"eto-audiobook-api/internal/script"
)

type SynthesisServiceAPI interface {
	SynthesizeBatch(ctx context.Context, segments []script.Segment, mapping map[string]VoiceAssignment) []AudioResult
	SynthesizeText(ctx context.Context, text string, voiceName string, languageCode string) (audioBase64 string, mock bool, err error)
}
