package synthesis

// VoiceAssignment pairs a speaker role with the provider voice that should
// read it.
type VoiceAssignment struct {
	VoiceName    string `json:"voiceName"`
	LanguageCode string `json:"languageCode"`
}

// AudioResult reports the outcome of one attempted segment. Index points back
// at the originating segment so callers can reassemble the batch regardless of
// completion order. Mock marks placeholder audio produced when no provider
// client was available.
type AudioResult struct {
	Index  int     `json:"index"`
	Role   string  `json:"role"`
	Text   string  `json:"text,omitempty"`
	Audio  *string `json:"audio"`
	Status string  `json:"status"`
	Error  string  `json:"error,omitempty"`
	Mock   bool    `json:"mock,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
