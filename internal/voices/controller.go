package voices

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type VoiceController struct {
	Service VoiceServiceAPI
}

func (vc *VoiceController) ListVoices(c *gin.Context) {
	opts := ListOptions{
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", defaultPerPage),
		Gender:  c.Query("gender"),
		Query:   c.Query("q"),
	}

	catalog := vc.Service.ListVoices(c.Request.Context(), opts)

	c.JSON(http.StatusOK, gin.H{
		"voices": catalog.Voices,
		"mock":   catalog.Mock,
	})
}

func (vc *VoiceController) ListAllVoices(c *gin.Context) {
	catalog := vc.Service.AllVoices(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"voices": catalog.Voices,
		"mock":   catalog.Mock,
	})
}

func (vc *VoiceController) ListTaggedVoices(c *gin.Context) {
	opts := ListOptions{
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", defaultPerPage),
		Gender:  c.Query("gender"),
		Query:   c.Query("q"),
	}

	tagged, mock := vc.Service.TaggedVoices(c.Request.Context(), opts)

	c.JSON(http.StatusOK, gin.H{
		"voices": tagged,
		"total":  len(tagged),
		"mock":   mock,
		"filters_applied": gin.H{
			"language": "en",
			"gender":   opts.Gender,
			"q":        opts.Query,
		},
	})
}

func (vc *VoiceController) GetFilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, FilterOptions())
}

func (vc *VoiceController) GetLanguages(c *gin.Context) {
	// The catalog is English-only for now.
	c.JSON(http.StatusOK, gin.H{
		"languages": []gin.H{{"code": "en", "name": "English"}},
	})
}

func (vc *VoiceController) ExportCatalog(c *gin.Context) {
	data, err := vc.Service.ExportWorkbook(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("voices_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (vc *VoiceController) SeedVoices(c *gin.Context) {
	count, err := vc.Service.SeedVoices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voices seeded successfully",
		"count":   count,
	})
}

func (vc *VoiceController) ClearCache(c *gin.Context) {
	vc.Service.ClearCache(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Voice catalog cache cleared"})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
