package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/session"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	visitorCookie = "verein_visitor"
	sessionCookie = "verein_session"

	ctxVisitor = "visitor"
	ctxSession = "session"
)

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return nil
	}
}

// identify attaches the visitor id and, if a valid token is presented, the
// session to the request. Invalid tokens make the request anonymous.
func (h *Handler) identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		visitor := ""
		if cookie, err := c.Cookie(visitorCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				visitor = cookie.Value
			}
		}
		if visitor == "" {
			visitor = uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     visitorCookie,
				Value:    visitor,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.cookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(ctxVisitor, visitor)

		if token := sessionToken(c); token != "" {
			sess, err := h.auth.Session(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set(ctxSession, sess)
			case errors.Is(err, verein.ErrUnauthorized):
				h.log.Debug("session token rejected", "path", c.Path())
			default:
				h.log.Error("session lookup failed", "error", err)
			}
		}

		return next(c)
	}
}

func sessionToken(c echo.Context) string {
	if bearer, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer "); ok {
		return strings.TrimSpace(bearer)
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func currentSession(c echo.Context) *verein.Session {
	sess, _ := c.Get(ctxSession).(*verein.Session)
	return sess
}

// ownerKey returns the registry owner of the request.
func ownerKey(c echo.Context) string {
	if sess := currentSession(c); sess != nil {
		return session.OwnerKey(*sess)
	}
	visitor, _ := c.Get(ctxVisitor).(string)
	return session.VisitorKey(visitor)
}

func (h *Handler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentSession(c) == nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Bitte melden Sie sich an."})
		}
		return next(c)
	}
}

// requireAuthor admits approved accounts.
func (h *Handler) requireAuthor(next echo.HandlerFunc) echo.HandlerFunc {
	return h.requireSession(func(c echo.Context) error {
		if !currentSession(c).CanAuthor() {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: verein.MsgNotApproved})
		}
		return next(c)
	})
}

func (h *Handler) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return h.requireSession(func(c echo.Context) error {
		if !currentSession(c).User.IsAdmin {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "Keine Berechtigung."})
		}
		return next(c)
	})
}

func (h *Handler) setSessionCookie(c echo.Context, sess verein.Session) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
