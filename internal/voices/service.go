package voices

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"eto-audiobook-api/internal/cache"
	"eto-audiobook-api/internal/tts"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	catalogTTL          = time.Hour
	catalogKeyPrefix    = "voices:catalog:"
	defaultLanguageCode = "en"
	defaultPerPage      = 100
)

type VoiceService struct {
	DB     *gorm.DB // optional; nil disables seeding
	Lister tts.VoiceLister
	Cache  cache.Store
	Logger *zap.Logger
}

// fetchCatalog returns the provider catalog for a language filter, memoized
// through the cache store with a one-hour TTL. Any provider failure falls back
// to the static mock table so the catalog endpoints never hard-fail.
func (vs *VoiceService) fetchCatalog(ctx context.Context, language string) Catalog {
	key := catalogKeyPrefix + language

	if raw, ok := vs.Cache.Get(ctx, key); ok {
		var cached []tts.Voice
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return Catalog{Voices: cached}
		}
		vs.Cache.Delete(ctx, key)
	}

	if vs.Lister == nil {
		vs.Logger.Warn("tts client not available, using mock voices")
		return Catalog{Voices: tts.MockVoices(language), Mock: true}
	}

	listed, err := vs.Lister.ListVoices(ctx, language)
	if err != nil {
		vs.Logger.Error("voice listing failed, using mock voices", zap.Error(err))
		return Catalog{Voices: tts.MockVoices(language), Mock: true}
	}

	voices := make([]tts.Voice, 0, len(listed))
	for _, v := range listed {
		if language == "" || matchesLanguage(v, language) {
			voices = append(voices, v)
		}
	}

	if encoded, err := json.Marshal(voices); err == nil {
		vs.Cache.Set(ctx, key, string(encoded), catalogTTL)
	}
	vs.Logger.Info("fetched voices from tts api",
		zap.String("language", language),
		zap.Int("count", len(voices)))

	return Catalog{Voices: voices}
}

func matchesLanguage(v tts.Voice, language string) bool {
	for _, code := range v.LanguageCodes {
		if strings.Contains(strings.ToLower(code), strings.ToLower(language)) {
			return true
		}
	}
	return false
}

// ListVoices applies the filter policy over the cached catalog: gender is a
// case-insensitive exact match, the free-text query matches name substrings
// case-insensitively, and results are sliced deterministically by page.
func (vs *VoiceService) ListVoices(ctx context.Context, opts ListOptions) Catalog {
	if opts.Language == "" {
		opts.Language = defaultLanguageCode
	}

	catalog := vs.fetchCatalog(ctx, opts.Language)
	voices := catalog.Voices

	if opts.Gender != "" {
		filtered := voices[:0:0]
		for _, v := range voices {
			if strings.EqualFold(v.SsmlGender, opts.Gender) {
				filtered = append(filtered, v)
			}
		}
		voices = filtered
	}

	if opts.Query != "" {
		q := strings.ToLower(opts.Query)
		filtered := voices[:0:0]
		for _, v := range voices {
			if strings.Contains(strings.ToLower(v.Name), q) {
				filtered = append(filtered, v)
			}
		}
		voices = filtered
	}

	return Catalog{Voices: paginate(voices, opts.Page, opts.PerPage), Mock: catalog.Mock}
}

// AllVoices returns the full English catalog sorted by name.
func (vs *VoiceService) AllVoices(ctx context.Context) Catalog {
	catalog := vs.fetchCatalog(ctx, defaultLanguageCode)

	sorted := make([]tts.Voice, len(catalog.Voices))
	copy(sorted, catalog.Voices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	return Catalog{Voices: sorted, Mock: catalog.Mock}
}

func (vs *VoiceService) TaggedVoices(ctx context.Context, opts ListOptions) ([]TaggedVoice, bool) {
	catalog := vs.ListVoices(ctx, opts)

	tagged := make([]TaggedVoice, 0, len(catalog.Voices))
	for _, v := range catalog.Voices {
		tagged = append(tagged, tagVoice(v))
	}
	return tagged, catalog.Mock
}

// SeedVoices persists the live catalog into the metadata store, upserting by
// voice name.
func (vs *VoiceService) SeedVoices(ctx context.Context) (int, error) {
	if vs.DB == nil {
		return 0, fmt.Errorf("voice metadata store is not configured")
	}

	catalog := vs.fetchCatalog(ctx, defaultLanguageCode)

	count := 0
	for _, v := range catalog.Voices {
		codes, err := json.Marshal(v.LanguageCodes)
		if err != nil {
			return count, fmt.Errorf("failed to encode language codes for %s: %w", v.Name, err)
		}
		tags, err := json.Marshal(tagVoice(v).Tags)
		if err != nil {
			return count, fmt.Errorf("failed to encode tags for %s: %w", v.Name, err)
		}

		row := Voice{Name: v.Name}
		assign := Voice{
			LanguageCodes:          datatypes.JSON(codes),
			SsmlGender:             v.SsmlGender,
			NaturalSampleRateHertz: v.NaturalSampleRateHertz,
			Tags:                   datatypes.JSON(tags),
		}
		if err := vs.DB.Where(Voice{Name: v.Name}).Assign(assign).FirstOrCreate(&row).Error; err != nil {
			return count, fmt.Errorf("failed to seed voice %s: %w", v.Name, err)
		}
		count++
	}

	vs.Logger.Info("seeded voice metadata", zap.Int("count", count), zap.Bool("mock", catalog.Mock))
	return count, nil
}

// ExportWorkbook renders the sorted catalog as an xlsx report.
func (vs *VoiceService) ExportWorkbook(ctx context.Context) ([]byte, error) {
	catalog := vs.AllVoices(ctx)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Name", "Language Codes", "Gender", "Sample Rate (Hz)", "Quality", "Region"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, v := range catalog.Voices {
		tagged := tagVoice(v)
		values := []interface{}{
			v.Name,
			strings.Join(v.LanguageCodes, ", "),
			v.SsmlGender,
			v.NaturalSampleRateHertz,
			tagged.Tags.Quality,
			tagged.Tags.Region,
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ClearCache drops all memoized catalog entries. Exposed behind the admin
// routes as the manual invalidation path.
func (vs *VoiceService) ClearCache(ctx context.Context) {
	for _, language := range []string{"", defaultLanguageCode} {
		vs.Cache.Delete(ctx, catalogKeyPrefix+language)
	}
	vs.Logger.Info("voice catalog cache cleared")
}

func paginate(voices []tts.Voice, page, perPage int) []tts.Voice {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	start := (page - 1) * perPage
	if start >= len(voices) {
		return []tts.Voice{}
	}
	end := start + perPage
	if end > len(voices) {
		end = len(voices)
	}
	return voices[start:end]
}
