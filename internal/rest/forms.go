package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/forms"
)

// SendContact handles POST /api/v1/forms/contact
// @Summary Send the contact form
// @Tags forms
// @Accept json
// @Produce json
// @Param form body forms.ContactForm true "Contact form"
// @Success 200 {object} rest.Submission
// @Failure 400,409,422,500 {object} rest.Submission
// @Router /api/v1/forms/contact [post]
func (h *Handler) SendContact(c echo.Context) error {
	var f forms.ContactForm
	if err := c.Bind(&f); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	state, err := h.forms.SendContact(c.Request().Context(), ownerKey(c), f)
	return h.respondSubmission(c, Submission{State: state}, err)
}

// SendMembership handles POST /api/v1/forms/membership
// @Summary Send the membership application
// @Tags forms
// @Accept json
// @Produce json
// @Param form body forms.MembershipForm true "Membership form"
// @Success 200 {object} rest.Submission
// @Failure 400,409,422,500 {object} rest.Submission
// @Router /api/v1/forms/membership [post]
func (h *Handler) SendMembership(c echo.Context) error {
	var f forms.MembershipForm
	if err := c.Bind(&f); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	state, err := h.forms.SendMembership(c.Request().Context(), ownerKey(c), f)
	return h.respondSubmission(c, Submission{State: state}, err)
}

// Register handles POST /api/v1/auth/register
// @Summary Register an account
// @Description Creates the account and a pending registration. The account is signed out until an administrator approves it.
// @Tags auth
// @Accept json
// @Produce json
// @Param form body forms.RegistrationForm true "Registration form"
// @Success 200 {object} rest.Submission
// @Failure 400,409,422,500 {object} rest.Submission
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c echo.Context) error {
	var f forms.RegistrationForm
	if err := c.Bind(&f); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	state, err := h.forms.Register(c.Request().Context(), ownerKey(c), f)
	return h.respondSubmission(c, Submission{State: state}, err)
}

// Login handles POST /api/v1/auth/login
// @Summary Sign in
// @Description Sets the session cookie and returns the token for bearer use
// @Tags auth
// @Accept json
// @Produce json
// @Param form body forms.LoginForm true "Credentials"
// @Success 200 {object} rest.Submission
// @Failure 400,401,409,422,500 {object} rest.Submission
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var f forms.LoginForm
	if err := c.Bind(&f); err != nil {
		return h.handleError(c, err, http.StatusBadRequest, "invalid request body")
	}

	state, sess, err := h.forms.Login(c.Request().Context(), ownerKey(c), f)
	resp := Submission{State: state}
	if err == nil && sess != nil {
		h.setSessionCookie(c, *sess)
		resp.Token = sess.Token
	}

	return h.respondSubmission(c, resp, err)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} rest.Submission
// @Failure 401,500 {object} rest.Submission
// @Router /api/v1/auth/logout [post]
func (h *Handler) Logout(c echo.Context) error {
	state, err := h.forms.Logout(c.Request().Context(), *currentSession(c))
	if err == nil {
		h.clearSessionCookie(c)
	}

	return h.respondSubmission(c, Submission{State: state}, err)
}

// Session handles GET /api/v1/auth/session
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} rest.Session
// @Failure 401 {object} rest.ErrorResponse
// @Router /api/v1/auth/session [get]
func (h *Handler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, NewSession(*currentSession(c)))
}
