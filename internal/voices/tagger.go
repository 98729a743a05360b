package voices

import (
	"strings"

	"eto-audiobook-api/internal/tts"
)

// tagVoice derives classification tags from the voice name and metadata. The
// rules are intentionally coarse; they exist to drive catalog filtering in the
// UI, not to be authoritative.
func tagVoice(v tts.Voice) TaggedVoice {
	tags := VoiceTags{
		Language: "English",
		Region:   regionFromName(v.Name),
		Gender:   strings.ToLower(v.SsmlGender),
		Quality:  qualityFromName(v.Name),
		UseCase:  "General",
		Tone:     "Friendly",
		Age:      "Adult",
	}

	search := strings.ToLower(strings.Join([]string{
		v.Name, tags.Language, tags.Region, tags.Gender, tags.Quality, tags.UseCase,
	}, " "))

	return TaggedVoice{Voice: v, Tags: tags, SearchText: search}
}

// regionFromName reads the locale out of names like "en-GB-Standard-A".
func regionFromName(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) >= 2 && len(parts[1]) == 2 {
		return strings.ToUpper(parts[1])
	}
	return "US"
}

func qualityFromName(name string) string {
	switch {
	case strings.Contains(name, "Studio"):
		return "Studio"
	case strings.Contains(name, "Neural2"):
		return "Neural2"
	case strings.Contains(name, "Wavenet"):
		return "Wavenet"
	case strings.Contains(name, "News"):
		return "News"
	default:
		return "Standard"
	}
}

// FilterOptions enumerates the values the catalog UI can filter on.
func FilterOptions() map[string][]string {
	return map[string][]string{
		"genders":   {"MALE", "FEMALE"},
		"qualities": {"Standard", "Wavenet", "Neural2"},
		"regions":   {"US", "GB", "AU"},
	}
}
