package voices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"eto-audiobook-api/internal/cache"
	"eto-audiobook-api/internal/tts"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeLister struct {
	voices []tts.Voice
	err    error
	calls  int
}

func (f *fakeLister) ListVoices(_ context.Context, _ string) ([]tts.Voice, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.voices, nil
}

func providerVoices() []tts.Voice {
	return []tts.Voice{
		{Name: "en-US-Standard-A", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
		{Name: "en-US-Standard-B", LanguageCodes: []string{"en-US"}, SsmlGender: "MALE", NaturalSampleRateHertz: 24000},
		{Name: "en-GB-Wavenet-C", LanguageCodes: []string{"en-GB"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
		{Name: "fr-FR-Standard-A", LanguageCodes: []string{"fr-FR"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
	}
}

func newVoiceService(lister tts.VoiceLister) *VoiceService {
	return &VoiceService{
		Lister: lister,
		Cache:  cache.NewMemoryStore(),
		Logger: zap.NewNop(),
	}
}

func setupVoiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&Voice{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestListVoices_FiltersOutOtherLanguages(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	catalog := svc.ListVoices(context.Background(), ListOptions{})

	if catalog.Mock {
		t.Fatalf("provider catalog must not be flagged mock")
	}
	if len(catalog.Voices) != 3 {
		t.Fatalf("expected 3 english voices, got %d", len(catalog.Voices))
	}
	for _, v := range catalog.Voices {
		if v.Name == "fr-FR-Standard-A" {
			t.Fatalf("non-english voice leaked into catalog")
		}
	}
}

func TestListVoices_GenderAndQueryFilters(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	catalog := svc.ListVoices(context.Background(), ListOptions{Gender: "female", Query: "standard"})

	if len(catalog.Voices) != 1 {
		t.Fatalf("expected 1 voice, got %d: %#v", len(catalog.Voices), catalog.Voices)
	}
	if catalog.Voices[0].Name != "en-US-Standard-A" {
		t.Fatalf("unexpected voice: %s", catalog.Voices[0].Name)
	}
}

func TestListVoices_Pagination(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	page1 := svc.ListVoices(context.Background(), ListOptions{Page: 1, PerPage: 2})
	if len(page1.Voices) != 2 {
		t.Fatalf("expected 2 voices on page 1, got %d", len(page1.Voices))
	}

	page2 := svc.ListVoices(context.Background(), ListOptions{Page: 2, PerPage: 2})
	if len(page2.Voices) != 1 {
		t.Fatalf("expected 1 voice on page 2, got %d", len(page2.Voices))
	}
	if page2.Voices[0].Name == page1.Voices[0].Name {
		t.Fatalf("pages must not overlap")
	}

	beyond := svc.ListVoices(context.Background(), ListOptions{Page: 9, PerPage: 2})
	if len(beyond.Voices) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(beyond.Voices))
	}
	if beyond.Voices == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestListVoices_CachesProviderResult(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	svc.ListVoices(context.Background(), ListOptions{})
	svc.ListVoices(context.Background(), ListOptions{Gender: "MALE"})

	if lister.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", lister.calls)
	}
}

func TestListVoices_IgnoresCorruptCacheEntry(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	svc.Cache.Set(context.Background(), catalogKeyPrefix+"en", "{not json", catalogTTL)

	catalog := svc.ListVoices(context.Background(), ListOptions{})

	if lister.calls != 1 {
		t.Fatalf("expected refetch after corrupt cache entry, got %d calls", lister.calls)
	}
	if len(catalog.Voices) == 0 {
		t.Fatalf("expected voices after refetch")
	}
}

func TestListVoices_NoClientFallsBackToMock(t *testing.T) {
	svc := newVoiceService(nil)

	catalog := svc.ListVoices(context.Background(), ListOptions{})

	if !catalog.Mock {
		t.Fatalf("fallback catalog must be flagged mock")
	}
	if len(catalog.Voices) != 4 {
		t.Fatalf("expected 4 mock voices, got %d", len(catalog.Voices))
	}
}

func TestListVoices_ProviderErrorFallsBackToMock(t *testing.T) {
	lister := &fakeLister{err: errors.New("permission denied")}
	svc := newVoiceService(lister)

	catalog := svc.ListVoices(context.Background(), ListOptions{})

	if !catalog.Mock {
		t.Fatalf("fallback catalog must be flagged mock")
	}
	if len(catalog.Voices) == 0 {
		t.Fatalf("expected mock voices")
	}
}

func TestAllVoices_SortedByName(t *testing.T) {
	shuffled := []tts.Voice{
		{Name: "en-US-Standard-D", LanguageCodes: []string{"en-US"}, SsmlGender: "MALE"},
		{Name: "en-US-Standard-A", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE"},
		{Name: "en-US-Standard-C", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE"},
	}
	svc := newVoiceService(&fakeLister{voices: shuffled})

	catalog := svc.AllVoices(context.Background())

	if !sort.SliceIsSorted(catalog.Voices, func(i, j int) bool {
		return catalog.Voices[i].Name < catalog.Voices[j].Name
	}) {
		t.Fatalf("expected catalog sorted by name: %#v", catalog.Voices)
	}
}

func TestTaggedVoices_AttachesTags(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	tagged, mock := svc.TaggedVoices(context.Background(), ListOptions{})

	if mock {
		t.Fatalf("provider catalog must not be flagged mock")
	}
	if len(tagged) == 0 {
		t.Fatalf("expected tagged voices")
	}
	for _, v := range tagged {
		if v.Tags.Quality == "" || v.Tags.Gender == "" {
			t.Fatalf("voice %s missing tags: %#v", v.Name, v.Tags)
		}
		if v.SearchText == "" {
			t.Fatalf("voice %s missing search text", v.Name)
		}
	}
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	lister := &fakeLister{voices: providerVoices()}
	svc := newVoiceService(lister)

	svc.ListVoices(context.Background(), ListOptions{})
	svc.ClearCache(context.Background())
	svc.ListVoices(context.Background(), ListOptions{})

	if lister.calls != 2 {
		t.Fatalf("expected refetch after cache clear, got %d calls", lister.calls)
	}
}

func TestSeedVoices_PersistsCatalog(t *testing.T) {
	db := setupVoiceDB(t)
	svc := newVoiceService(&fakeLister{voices: providerVoices()})
	svc.DB = db

	count, err := svc.SeedVoices(context.Background())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 seeded voices, got %d", count)
	}

	var rows int64
	db.Model(&Voice{}).Count(&rows)
	if rows != 3 {
		t.Fatalf("expected 3 rows, got %d", rows)
	}

	var stored Voice
	if err := db.Where("name = ?", "en-US-Standard-A").First(&stored).Error; err != nil {
		t.Fatalf("expected seeded row: %v", err)
	}
	if stored.SsmlGender != "FEMALE" {
		t.Fatalf("unexpected gender: %s", stored.SsmlGender)
	}
}

func TestSeedVoices_UpsertIsIdempotent(t *testing.T) {
	db := setupVoiceDB(t)
	svc := newVoiceService(&fakeLister{voices: providerVoices()})
	svc.DB = db

	if _, err := svc.SeedVoices(context.Background()); err != nil {
		t.Fatalf("first seed failed: %v", err)
	}
	if _, err := svc.SeedVoices(context.Background()); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	var rows int64
	db.Model(&Voice{}).Count(&rows)
	if rows != 3 {
		t.Fatalf("reseeding must not duplicate rows, got %d", rows)
	}
}

func newMockGormPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return db, mock
}

func TestSeedVoices_DBError(t *testing.T) {
	db, mock := newMockGormPostgres(t)
	mock.ExpectQuery(`SELECT \* FROM "voices"`).
		WillReturnError(errors.New("connection refused"))

	svc := newVoiceService(&fakeLister{voices: providerVoices()})
	svc.DB = db

	if _, err := svc.SeedVoices(context.Background()); err == nil {
		t.Fatalf("expected error from broken db")
	}
}

func TestSeedVoices_NoDB(t *testing.T) {
	svc := newVoiceService(&fakeLister{voices: providerVoices()})

	if _, err := svc.SeedVoices(context.Background()); err == nil {
		t.Fatalf("expected error without metadata store")
	}
}

func TestExportWorkbook_ProducesXLSX(t *testing.T) {
	svc := newVoiceService(&fakeLister{voices: providerVoices()})

	data, err := svc.ExportWorkbook(context.Background())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected workbook bytes")
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("expected zip signature, got %q", data[:2])
	}
}
