package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/models"
	"github.com/princinho/boutique/realtime"
	"github.com/princinho/boutique/settings"
)

// GET /settings
func (a *App) GetSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, a.sessionSettings(sess))
	}
}

// GET /settings/stream
func (a *App) StreamSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := session(c)
		if !ok {
			return
		}
		events, cancel := a.Hub.Subscribe()
		defer cancel()

		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.SSEvent(string(realtime.TopicSettings), a.sessionSettings(sess))
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case ev, open := <-events:
				if !open {
					return false
				}
				switch ev.Topic {
				case realtime.TopicSettings:
					c.SSEvent(string(ev.Topic), a.sessionSettings(sess))
				case realtime.TopicProducts:
					c.SSEvent(string(ev.Topic), ev.Product)
				}
				return true
			}
		})
	}
}

// PATCH /admin/settings
func (a *App) PatchSettings() gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.SettingsPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// map coordinates are not part of the remote row
		patch.MapLat, patch.MapLng = nil, nil

		saved, err := a.Gateway.UpsertSettings(c.Request.Context(), patch)
		if err != nil {
			respondError(c, err)
			return
		}
		current := a.Settings.Dispatch(settings.RemotePatch{Patch: settings.PatchOf(saved)})
		a.settingsChanged(current)
		c.JSON(http.StatusOK, current)
	}
}
