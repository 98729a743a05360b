package script

import (
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

type ScriptController struct {
	Service ScriptServiceAPI
}

// ValidateUploadName enforces the accepted script extensions. Shared with the
// single-voice synthesis upload.
func ValidateUploadName(filename string) (ok bool, reason string) {
	if filename == "" {
		return false, "No file selected"
	}
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".txt") && !strings.HasSuffix(lower, ".md") {
		return false, "Only .txt and .md files are allowed"
	}
	return true, ""
}

func (sc *ScriptController) DetectRoles(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if ok, reason := ValidateUploadName(fileHeader.Filename); !ok {
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

	content := sc.Service.Sanitize(string(raw))
	if strings.TrimSpace(content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File content is empty or invalid"})
		return
	}

	segments, roles := sc.Service.Parse(content)

	c.JSON(http.StatusOK, gin.H{
		"roles":    roles,
		"segments": segments,
	})
}
