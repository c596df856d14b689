package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/swaggo/swag"

	"github.com/daniilsolovey/verein-site/internal/metrics"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	apiV1Prefix = "/api/v1"

	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"
	rpcPath     = "/rpc"
	objectPath  = verein.PublicObjectPrefix + ":bucket/*"
)

// RegisterRoutes builds the echo engine with all routes.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(h.loggingMiddleware)

	h.registerOperationalRoutes(e)
	e.GET(objectPath, h.Object)

	api := e.Group(apiV1Prefix, h.identify)
	h.registerPublicRoutes(api)
	h.registerAuthorRoutes(api)
	h.registerAdminRoutes(api.Group("/admin", h.requireAdmin))

	return e
}

func (h *Handler) registerOperationalRoutes(e *echo.Echo) {
	e.GET(healthPath, h.Health)
	e.GET(metricsPath, echo.WrapHandler(metrics.Handler()))
	e.GET(swaggerPath, h.SwaggerDoc)
	if h.rpc != nil {
		e.Any(rpcPath, echo.WrapHandler(h.rpc))
	}
}

func (h *Handler) registerPublicRoutes(g *echo.Group) {
	g.GET("/feed", h.Feed)
	g.GET("/archive", h.Archive)
	g.GET("/posts/:id", h.PostByID)

	g.POST("/forms/contact", h.SendContact)
	g.POST("/forms/membership", h.SendMembership)

	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
	g.POST("/auth/logout", h.Logout, h.requireSession)
	g.GET("/auth/session", h.Session, h.requireSession)
}

func (h *Handler) registerAuthorRoutes(g *echo.Group) {
	author := h.requireAuthor

	g.POST("/posts", h.CreatePost, author)
	g.DELETE("/posts/:id", h.DeletePost, author)

	g.POST("/posts/:id/edit", h.BeginEdit, author)
	g.GET("/posts/:id/draft", h.Draft, author)
	g.PATCH("/posts/:id/draft", h.EditDraft, author)
	g.DELETE("/posts/:id/draft", h.CancelDraft, author)
	g.PUT("/posts/:id/draft/image", h.AttachImage, author)
	g.DELETE("/posts/:id/draft/image", h.DetachImage, author)
	g.POST("/posts/:id/draft/commit", h.CommitDraft, author)
}

func (h *Handler) registerAdminRoutes(g *echo.Group) {
	g.GET("/registrations", h.Registrations)
	g.POST("/registrations/:id/approve", h.ApproveRegistration)
	g.POST("/registrations/:id/deny", h.DenyRegistration)
}

// Health handles GET /health
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	if h.ping != nil {
		if err := h.ping(c.Request().Context()); err != nil {
			h.log.Error("health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SwaggerDoc serves the generated API description.
func (h *Handler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusNotFound, "api docs not registered")
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}
