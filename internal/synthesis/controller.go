package synthesis

import (
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"eto-audiobook-api/internal/script"
	"eto-audiobook-api/internal/voices"

	"github.com/gin-gonic/gin"
)

const (
	maxPreviewLength   = 500
	defaultPreviewText = "Hello, this is a voice preview."
)

type SynthesisController struct {
	Service SynthesisServiceAPI
	Script  script.ScriptServiceAPI
	Voices  voices.VoiceServiceAPI
}

type SynthesizeInput struct {
	Segments     []script.Segment           `json:"segments"`
	VoiceMapping map[string]VoiceAssignment `json:"voiceMapping"`
}

type PreviewInput struct {
	VoiceName    string `json:"voiceName"`
	LanguageCode string `json:"languageCode"`
	Text         string `json:"text"`
}

func (sc *SynthesisController) Synthesize(c *gin.Context) {
	var input SynthesizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if len(input.Segments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No segments provided"})
		return
	}
	if len(input.VoiceMapping) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No voice mapping provided"})
		return
	}

	for i := range input.Segments {
		input.Segments[i].Text = sc.Script.Sanitize(input.Segments[i].Text)
	}

	results := sc.Service.SynthesizeBatch(c.Request.Context(), input.Segments, input.VoiceMapping)

	c.JSON(http.StatusOK, gin.H{"audioSegments": results})
}

func (sc *SynthesisController) PreviewVoice(c *gin.Context) {
	var input PreviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if input.VoiceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voice name required"})
		return
	}
	if input.LanguageCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Language code required"})
		return
	}

	text := sc.Script.Sanitize(input.Text)
	if strings.TrimSpace(text) == "" {
		text = defaultPreviewText
	}
	if len(text) > maxPreviewLength {
		text = text[:maxPreviewLength]
	}

	audio, mock, err := sc.Service.SynthesizeText(c.Request.Context(), text, input.VoiceName, input.LanguageCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio": audio, "mock": mock})
}

// SynthesizeSingle reads a whole uploaded script as one narrator using the
// first voice in the catalog.
func (sc *SynthesisController) SynthesizeSingle(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if ok, reason := script.ValidateUploadName(fileHeader.Filename); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	if !utf8.Valid(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be valid UTF-8 text"})
		return
	}

	content := sc.Script.Sanitize(string(raw))
	if strings.TrimSpace(content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File content is empty or invalid"})
		return
	}

	catalog := sc.Voices.ListVoices(c.Request.Context(), voices.ListOptions{})
	if len(catalog.Voices) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No voices available"})
		return
	}

	voice := catalog.Voices[0]
	languageCode := "en-US"
	if len(voice.LanguageCodes) > 0 {
		languageCode = voice.LanguageCodes[0]
	}

	audio, mock, err := sc.Service.SynthesizeText(c.Request.Context(), content, voice.Name, languageCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audio": audio,
		"text":  content,
		"voice": voice.Name,
		"mock":  mock,
	})
}
