// Package mailrelay implements the mail relay function. Each request is
// forwarded as two mails: a notification for the association and a
// confirmation for the sender.
package mailrelay

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	functionsPrefix = "/functions/v1"

	MembershipPath = functionsPrefix + "/send-membership-email"
	ContactPath    = functionsPrefix + "/send-contact-email"
)

type Config struct {
	// Organization receives the notifications.
	Organization string
	// Signature closes the confirmation mails.
	Signature string
}

type Relay struct {
	sender Sender
	cfg    Config
	log    *slog.Logger
}

func New(sender Sender, cfg Config, log *slog.Logger) *Relay {
	return &Relay{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

func (r *Relay) Membership(ctx context.Context, req MembershipRequest) error {
	return r.sender.Send(ctx,
		Mail{
			To:       r.cfg.Organization,
			Subject:  "Neue Mitgliedsanfrage",
			Template: membershipNotification,
			Data:     req,
		},
		Mail{
			To:       req.Email,
			Subject:  "Ihre Mitgliedsanfrage beim " + r.cfg.Signature,
			Template: membershipConfirmation,
			Data:     confirmationData{Name: req.Name, Signature: r.cfg.Signature + "-Team"},
		},
	)
}

func (r *Relay) Contact(ctx context.Context, req ContactRequest) error {
	return r.sender.Send(ctx,
		Mail{
			To:       r.cfg.Organization,
			Subject:  "Neue Kontaktanfrage: " + req.Subject,
			Template: contactNotification,
			Data:     req,
		},
		Mail{
			To:       req.Email,
			Subject:  "Ihre Nachricht an den " + r.cfg.Signature,
			Template: contactConfirmation,
			Data:     confirmationData{Name: req.Name, Subject: req.Subject, Signature: r.cfg.Signature + "-Team"},
		},
	)
}

// SendMembership handles POST /functions/v1/send-membership-email
// @Summary Send membership request
// @Description Sends the membership request to the association and a confirmation to the applicant
// @Tags functions
// @Accept json
// @Produce json
// @Param request body mailrelay.MembershipRequest true "Membership request"
// @Success 200 {object} mailrelay.Response
// @Failure 400,500 {object} mailrelay.Response
// @Router /functions/v1/send-membership-email [post]
func (r *Relay) SendMembership(c echo.Context) error {
	var req MembershipRequest
	if err := c.Bind(&req); err != nil {
		return r.handleError(c, err, http.StatusBadRequest)
	}
	if req.Email == "" {
		return r.handleError(c, fmt.Errorf("%w: email", verein.ErrInvalidInput), http.StatusBadRequest)
	}

	if err := r.Membership(c.Request().Context(), req); err != nil {
		return r.handleError(c, err, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, Response{Message: verein.MsgMailRelaySent})
}

// SendContact handles POST /functions/v1/send-contact-email
// @Summary Send contact message
// @Tags functions
// @Accept json
// @Produce json
// @Param request body mailrelay.ContactRequest true "Contact message"
// @Success 200 {object} mailrelay.Response
// @Failure 400,500 {object} mailrelay.Response
// @Router /functions/v1/send-contact-email [post]
func (r *Relay) SendContact(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return r.handleError(c, err, http.StatusBadRequest)
	}
	if req.Email == "" {
		return r.handleError(c, fmt.Errorf("%w: email", verein.ErrInvalidInput), http.StatusBadRequest)
	}

	if err := r.Contact(c.Request().Context(), req); err != nil {
		return r.handleError(c, err, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, Response{Message: verein.MsgMailRelaySent})
}

func (r *Relay) handleError(c echo.Context, err error, statusCode int) error {
	r.log.Error("mail relay failed", "error", err, "statusCode", statusCode, "path", c.Path())
	return c.JSON(statusCode, Response{Error: verein.MsgMailRelayError})
}
