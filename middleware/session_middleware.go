package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/boutique/clientstate"
	"github.com/princinho/boutique/errx"
	"github.com/princinho/boutique/i18n"
	"github.com/princinho/boutique/logx"
)

const (
	SessionCookie = "sid"
	SessionKey    = "session"
)

type SessionOptions struct {
	Store        clientstate.Store
	DefaultLang  i18n.Lang
	MaxAge       int
	CookieSecure bool
	CookieDomain string
}

// Session resolves the visitor's session from the sid cookie, issuing a new
// id when it is missing or malformed, and rehydrates its client state.
func Session(opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !clientstate.ValidSessionID(id) {
			id = clientstate.NewSessionID()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, opts.MaxAge, "/", opts.CookieDomain, opts.CookieSecure, true)

		lang := opts.DefaultLang
		if accept := c.GetHeader("Accept-Language"); accept != "" {
			lang = i18n.Parse(accept, opts.DefaultLang)
		}

		sess, err := clientstate.Open(c.Request.Context(), opts.Store, id, lang)
		if err != nil {
			logx.Error().Err(err).Str("session", id).Msg("failed to open session")
			c.AbortWithStatusJSON(errx.Status(err), gin.H{"error": errx.Message(err)})
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

func SessionFrom(c *gin.Context) *clientstate.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*clientstate.Session)
	return sess
}
