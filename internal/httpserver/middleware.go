package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"storefront/internal/domain"
	"storefront/internal/identity"
	accountsvc "storefront/internal/service/account"
)

const (
	cartCookie = "cart_session"
	cartHeader = "X-Cart-Session"

	identityKey = "identity"
)

// routeSpan names the request span after the route template so ids in the
// path do not end up in span names.
func routeSpan() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		span.SetName(c.Request.Method + " " + route)
		span.SetAttributes(attribute.String("http.route", route))
	}
}

// authMiddleware resolves an optional bearer token to the current identity.
// Requests without a token continue anonymously; a bad token is rejected.
func authMiddleware(h *handlers) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}
		acct, err := h.deps.AccountSvc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, accountsvc.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			h.fail(c, domain.StoreFailure("lookup token", err))
			c.Abort()
			return
		}
		id := acct.Identity()
		c.Set(identityKey, id)
		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// requireSeller rejects anonymous callers and non-sellers.
func requireSeller(h *handlers) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := identity.RequireSeller(c.Request.Context(), identity.ContextProvider{}); err != nil {
			h.fail(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) domain.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// cartSession returns the caller's cart session, issuing a new one when the
// request carries none.
func (h *handlers) cartSession(c *gin.Context) string {
	session := strings.TrimSpace(c.GetHeader(cartHeader))
	if session == "" {
		if v, err := c.Cookie(cartCookie); err == nil {
			session = strings.TrimSpace(v)
		}
	}
	if session == "" {
		session = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cartCookie, session, int(h.deps.CartTTL.Seconds()), "/", "", false, true)
	}
	c.Header(cartHeader, session)
	return session
}
