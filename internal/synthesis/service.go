package synthesis

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"sync"

	"eto-audiobook-api/internal/script"
	"eto-audiobook-api/internal/tts"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultWorkers = 4

// mockAudio is the placeholder payload returned when no provider client could
// be constructed. It is not playable audio; results carrying it are flagged.
var mockAudio = base64.StdEncoding.EncodeToString([]byte("mock-audio-placeholder"))

type SynthesisService struct {
	Google  tts.Synthesizer // primary provider, nil when client construction failed
	Gemini  tts.Synthesizer // optional provider for "gemini-" voices
	Workers int
	Logger  *zap.Logger
}

type synthesisJob struct {
	index   int
	segment script.Segment
	voice   VoiceAssignment
}

// SynthesizeBatch fans the mapped segments out over a bounded worker pool and
// re-associates every result with its originating segment. A failing segment
// yields an error result; it never fails the batch.
func (ss *SynthesisService) SynthesizeBatch(ctx context.Context, segments []script.Segment, mapping map[string]VoiceAssignment) []AudioResult {
	jobs := make([]synthesisJob, 0, len(segments))
	for i, segment := range segments {
		if segment.Role == "" || segment.Text == "" {
			continue
		}
		voice, ok := mapping[segment.Role]
		if !ok {
			continue
		}
		if voice.VoiceName == "" || voice.LanguageCode == "" {
			continue
		}
		jobs = append(jobs, synthesisJob{index: i, segment: segment, voice: voice})
	}

	if len(jobs) == 0 {
		return []AudioResult{}
	}

	jobID := uuid.NewString()
	ss.Logger.Info("synthesis batch started",
		zap.String("job_id", jobID),
		zap.Int("segments", len(jobs)))

	if ss.Google == nil && ss.Gemini == nil {
		ss.Logger.Warn("no tts client available, returning mock results", zap.String("job_id", jobID))
		results := make([]AudioResult, 0, len(jobs))
		for _, j := range jobs {
			audio := mockAudio
			results = append(results, AudioResult{
				Index:  j.index,
				Role:   j.segment.Role,
				Text:   j.segment.Text,
				Audio:  &audio,
				Status: StatusSuccess,
				Mock:   true,
			})
		}
		return results
	}

	workers := ss.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	sem := make(chan struct{}, workers)
	outCh := make(chan AudioResult, len(jobs))
	var wg sync.WaitGroup

	for _, j := range jobs {
		wg.Add(1)

		go func(j synthesisJob) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			outCh <- ss.synthesizeOne(ctx, j)
		}(j)
	}

	wg.Wait()
	close(outCh)

	results := make([]AudioResult, 0, len(jobs))
	failed := 0
	for result := range outCh {
		if result.Status == StatusError {
			failed++
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, k int) bool { return results[i].Index < results[k].Index })

	ss.Logger.Info("synthesis batch finished",
		zap.String("job_id", jobID),
		zap.Int("succeeded", len(results)-failed),
		zap.Int("failed", failed))

	return results
}

func (ss *SynthesisService) synthesizeOne(ctx context.Context, j synthesisJob) AudioResult {
	result := AudioResult{
		Index: j.index,
		Role:  j.segment.Role,
		Text:  j.segment.Text,
	}

	client := ss.clientFor(j.voice.VoiceName)
	if client == nil {
		result.Status = StatusError
		result.Error = "tts service unavailable"
		return result
	}

	audioBytes, err := client.Synthesize(ctx, j.segment.Text, j.voice.VoiceName, j.voice.LanguageCode)
	if err != nil {
		ss.Logger.Error("segment synthesis failed",
			zap.String("role", j.segment.Role),
			zap.Int("index", j.index),
			zap.Error(err))
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	audio := base64.StdEncoding.EncodeToString(audioBytes)
	result.Audio = &audio
	result.Status = StatusSuccess
	return result
}

func (ss *SynthesisService) clientFor(voiceName string) tts.Synthesizer {
	if tts.IsGeminiVoice(voiceName) && ss.Gemini != nil {
		return ss.Gemini
	}
	return ss.Google
}

// SynthesizeText renders a single chunk of text, used by voice previews and
// the single-narrator path. With no client configured it degrades to the
// flagged placeholder instead of failing.
func (ss *SynthesisService) SynthesizeText(ctx context.Context, text string, voiceName string, languageCode string) (string, bool, error) {
	client := ss.clientFor(voiceName)
	if client == nil {
		return mockAudio, true, nil
	}

	audioBytes, err := client.Synthesize(ctx, text, voiceName, languageCode)
	if err != nil {
		return "", false, fmt.Errorf("voice preview failed: %w", err)
	}

	return base64.StdEncoding.EncodeToString(audioBytes), false, nil
}
