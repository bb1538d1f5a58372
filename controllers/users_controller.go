package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/dto"
	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/middleware"
	"github.com/princinho/boutique/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// POST /admin/users/me/password
func (a *App) ChangeMyPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ChangeMyPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userID, err := bson.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
			return
		}

		ctx := c.Request.Context()
		user, err := a.Accounts.FindUserByID(ctx, userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.CurrentPassword); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}

		newHash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}
		if err := a.Accounts.UpdatePassword(ctx, userID, newHash); err != nil {
			respondError(c, err)
			return
		}

		if err := a.Accounts.RevokeAllRefreshTokens(ctx, userID, time.Now().UTC()); err != nil {
			logx.Warn().Err(err).Str("userId", userID.Hex()).Msg("revoke refresh tokens failed")
		}
		a.clearRefreshCookie(c)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
