package tts

import "strings"

// mockVoiceTable mirrors the Standard en-US voices so that catalog consumers
// keep a working contract when the provider is unreachable.
var mockVoiceTable = []Voice{
	{Name: "en-US-Standard-A", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
	{Name: "en-US-Standard-B", LanguageCodes: []string{"en-US"}, SsmlGender: "MALE", NaturalSampleRateHertz: 24000},
	{Name: "en-US-Standard-C", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
	{Name: "en-US-Standard-D", LanguageCodes: []string{"en-US"}, SsmlGender: "MALE", NaturalSampleRateHertz: 24000},
}

// MockVoices returns the static fallback catalog, filtered by language code
// substring when langFilter is non-empty.
func MockVoices(langFilter string) []Voice {
	if langFilter == "" {
		out := make([]Voice, len(mockVoiceTable))
		copy(out, mockVoiceTable)
		return out
	}

	var out []Voice
	for _, v := range mockVoiceTable {
		for _, code := range v.LanguageCodes {
			if strings.Contains(code, langFilter) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}
