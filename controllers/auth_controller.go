package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/dto"
	"github.com/princinho/boutique/logx"
	"github.com/princinho/boutique/models"
	"github.com/princinho/boutique/utils"
)

const (
	refreshCookie     = "refreshToken"
	refreshCookiePath = "/auth"
)

// POST /auth/login
func (a *App) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.Email))
		user, err := a.Accounts.FindUserByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := utils.CheckPassword(user.PasswordHash, body.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		accessToken, err := a.issueTokens(c, user)
		if err != nil {
			logx.Error().Err(err).Str("email", email).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "connection failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}

// POST /auth/refresh
func (a *App) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := c.Cookie(refreshCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
			return
		}
		if _, err := utils.ValidateToken(token, a.Auth.JWTRefreshSecret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		now := time.Now().UTC()
		hash := utils.HashToken(token)
		rt, err := a.Accounts.FindActiveRefreshToken(ctx, hash, now)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}

		user, err := a.Accounts.FindUserByID(ctx, rt.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
			return
		}

		// Rotate refresh token
		newToken, err := utils.GenerateRefreshToken(a.Auth.JWTRefreshSecret, user.ID.Hex(), a.Auth.RefreshTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
			return
		}
		newHash := utils.HashToken(newToken)
		if err := a.Accounts.RevokeRefreshToken(ctx, hash, &newHash, now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke refresh token"})
			return
		}
		if err := a.storeRefreshToken(c, user, newToken, now); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store refresh token"})
			return
		}

		accessToken, err := utils.GenerateAccessToken(a.Auth.JWTSecret, user.ID.Hex(), user.Email, string(user.Role), a.Auth.AccessTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate access token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
	}
}

// POST /auth/logout
func (a *App) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(refreshCookie)
		a.clearRefreshCookie(c)

		// best effort revoke
		if token != "" {
			if err := a.Accounts.RevokeRefreshToken(c.Request.Context(), utils.HashToken(token), nil, time.Now().UTC()); err != nil {
				logx.Warn().Err(err).Msg("refresh token revoke failed")
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func (a *App) issueTokens(c *gin.Context, user models.User) (string, error) {
	accessToken, err := utils.GenerateAccessToken(a.Auth.JWTSecret, user.ID.Hex(), user.Email, string(user.Role), a.Auth.AccessTTL)
	if err != nil {
		return "", err
	}
	refreshToken, err := utils.GenerateRefreshToken(a.Auth.JWTRefreshSecret, user.ID.Hex(), a.Auth.RefreshTTL)
	if err != nil {
		return "", err
	}
	if err := a.storeRefreshToken(c, user, refreshToken, time.Now().UTC()); err != nil {
		return "", err
	}
	return accessToken, nil
}

func (a *App) storeRefreshToken(c *gin.Context, user models.User, token string, now time.Time) error {
	err := a.Accounts.InsertRefreshToken(c.Request.Context(), models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(token),
		ExpiresAt: now.Add(a.Auth.RefreshTTL),
		CreatedAt: now,
	})
	if err != nil {
		return err
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     refreshCookiePath,
		Domain:   a.Auth.CookieDomain,
		MaxAge:   int(a.Auth.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   a.Auth.CookieSecure,
		SameSite: http.SameSiteNoneMode, // for cross-site
	})
	return nil
}

func (a *App) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, refreshCookiePath, a.Auth.CookieDomain, a.Auth.CookieSecure, true)
}
