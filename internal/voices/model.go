package voices

import (
	"time"

	"eto-audiobook-api/internal/tts"

	"gorm.io/datatypes"
)

// Voice is the persisted form of a catalog entry in the optional metadata
// store. The live catalog itself is served from the provider + cache; rows
// here only exist after an explicit seed.
type Voice struct {
	ID                     uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                   string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	LanguageCodes          datatypes.JSON `gorm:"column:language_codes" json:"language_codes"`
	SsmlGender             string         `gorm:"size:20;not null" json:"ssml_gender"`
	NaturalSampleRateHertz int32          `gorm:"column:natural_sample_rate_hertz" json:"natural_sample_rate_hertz"`
	Tags                   datatypes.JSON `json:"tags"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
}

func (Voice) TableName() string {
	return "voices"
}

// Catalog is an explicit provider-or-fallback result: Mock is true when the
// voices came from the static table because the provider was unavailable.
type Catalog struct {
	Voices []tts.Voice `json:"voices"`
	Mock   bool        `json:"mock"`
}

// VoiceTags is the rule-based classification attached to tagged catalog
// entries.
type VoiceTags struct {
	Language string `json:"language"`
	Region   string `json:"region"`
	Gender   string `json:"gender"`
	Quality  string `json:"quality"`
	UseCase  string `json:"use_case"`
	Tone     string `json:"tone"`
	Age      string `json:"age"`
}

type TaggedVoice struct {
	tts.Voice
	Tags       VoiceTags `json:"tags"`
	SearchText string    `json:"search_text"`
}

type ListOptions struct {
	Page     int
	PerPage  int
	Gender   string
	Query    string
	Language string
}
