package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	geminiTTSModel    = "gemini-2.5-flash-tts"
	geminiVoicePrefix = "gemini-"
	geminiDefaultName = "Algenib"
)

const (
	geminiSampleRate    = 24000
	geminiChannels      = 1
	geminiBitsPerSample = 16
)

// GeminiClient synthesizes speech through the Gemini audio models. It serves
// catalog entries carrying the "gemini-" name prefix; the orchestrator routes
// everything else to the Cloud TTS client.
type GeminiClient struct {
	client *genai.Client
	logger *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, logger: logger}, nil
}

// IsGeminiVoice reports whether a catalog voice name is served by Gemini.
func IsGeminiVoice(voiceName string) bool {
	return strings.HasPrefix(voiceName, geminiVoicePrefix)
}

// Synthesize renders text as a 24kHz 16-bit mono WAV. Gemini returns raw PCM,
// so the RIFF framing is added here.
func (g *GeminiClient) Synthesize(ctx context.Context, text string, voiceName string, _ string) ([]byte, error) {
	prebuilt := geminiDefaultName
	if IsGeminiVoice(voiceName) {
		if name := strings.TrimPrefix(voiceName, geminiVoicePrefix); name != "" {
			prebuilt = name
		}
	}

	ctx, cancel := context.WithTimeout(ctx, synthesizeTimeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, geminiTTSModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: prebuilt},
			},
		},
	})
	if err != nil {
		g.logger.Error("gemini synthesis error", zap.String("voice", prebuilt), zap.Error(err))
		return nil, fmt.Errorf("gemini synthesis failed for voice %s: %w", prebuilt, err)
	}

	pcm := extractAudioData(resp)
	if len(pcm) == 0 {
		return nil, fmt.Errorf("gemini returned no audio for voice %s", prebuilt)
	}

	return pcmToWAV(pcm), nil
}

func extractAudioData(resp *genai.GenerateContentResponse) []byte {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}

func pcmToWAV(pcm []byte) []byte {
	byteRate := geminiSampleRate * geminiChannels * geminiBitsPerSample / 8
	blockAlign := geminiChannels * geminiBitsPerSample / 8

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(geminiChannels))
	binary.Write(buf, binary.LittleEndian, uint32(geminiSampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(geminiBitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
