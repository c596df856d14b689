package rest

import (
	"errors"
	"net/http"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/db"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

// Registrations handles GET /api/v1/admin/registrations
// @Summary List registrations
// @Tags admin
// @Produce json
// @Param status query string false "pending, approved or denied"
// @Param limit query int false "Page size"
// @Param page query int false "Page number"
// @Success 200 {array} rest.PendingRegistration
// @Failure 400,401,403,422,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/registrations [get]
func (h *Handler) Registrations(c echo.Context) error {
	ctx := c.Request().Context()

	var filter db.RegistrationFilter
	if err := urlstruct.Unmarshal(ctx, c.QueryParams(), &filter); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request parameters")
	}

	list, err := h.content.Registrations(ctx, &filter)
	if err != nil {
		var verr *verein.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: verr.Message})
		}
		return h.handleError(c, err, http.StatusInternalServerError, verein.MsgRegistrationsLoad)
	}

	return c.JSON(http.StatusOK, Map(list, NewPendingRegistration))
}

// ApproveRegistration handles POST /api/v1/admin/registrations/:id/approve
// @Summary Approve a registration
// @Tags admin
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} rest.Submission
// @Failure 401,403,409,422,500 {object} rest.Submission
// @Router /api/v1/admin/registrations/{id}/approve [post]
func (h *Handler) ApproveRegistration(c echo.Context) error {
	state, err := h.forms.Decide(c.Request().Context(), ownerKey(c), c.Param("id"), true)
	return h.respondSubmission(c, Submission{State: state}, err)
}

// DenyRegistration handles POST /api/v1/admin/registrations/:id/deny
// @Summary Deny a registration
// @Tags admin
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} rest.Submission
// @Failure 401,403,409,422,500 {object} rest.Submission
// @Router /api/v1/admin/registrations/{id}/deny [post]
func (h *Handler) DenyRegistration(c echo.Context) error {
	state, err := h.forms.Decide(c.Request().Context(), ownerKey(c), c.Param("id"), false)
	return h.respondSubmission(c, Submission{State: state}, err)
}
