package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vacantvectors/postcraft/internal/models"
)

// Options returns the selectable generation parameters for clients
func Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"lengths":   []models.LengthBucket{models.LengthShort, models.LengthMedium, models.LengthLong},
		"languages": []models.Language{models.LanguageEnglish, models.LanguageHinglish},
		"tones":     models.Tones,
		"audiences": models.Audiences,
		"purposes":  models.Purposes,
		"styles":    models.Styles,
	})
}
