package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/i18n"
)

// GET /i18n/:lang
func GetTranslations() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Lang(c.Param("lang"))
		if !lang.Valid() {
			c.JSON(http.StatusNotFound, gin.H{"error": "unsupported language"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"lang": lang, "messages": i18n.Table(lang)})
	}
}
