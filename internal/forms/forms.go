package forms

import (
	"time"

	"github.com/daniilsolovey/verein-site/internal/mailrelay"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const (
	MembershipSingle = "single"
	MembershipFamily = "family"

	ApplicantSelf  = "self"
	ApplicantOther = "other"
)

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (f ContactForm) Validate() error {
	if err := verein.Required("name", f.Name); err != nil {
		return err
	}
	if err := verein.ValidateEmail("email", f.Email); err != nil {
		return err
	}
	if err := verein.Required("subject", f.Subject); err != nil {
		return err
	}
	return verein.Required("message", f.Message)
}

func (f ContactForm) request() mailrelay.ContactRequest {
	return mailrelay.ContactRequest{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Message: f.Message,
	}
}

// MembershipForm is the application form. Phone and Message are optional,
// empty choices default to a single membership for oneself.
type MembershipForm struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Birthdate      string `json:"birthdate"`
	MembershipType string `json:"membershipType"`
	ApplicantType  string `json:"applicantType"`
	Message        string `json:"message"`
}

func (f MembershipForm) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
	} {
		if err := verein.Required(field.name, field.value); err != nil {
			return err
		}
	}
	if err := verein.ValidateEmail("email", f.Email); err != nil {
		return err
	}
	if err := verein.Required("address", f.Address); err != nil {
		return err
	}
	if err := verein.Required("birthdate", f.Birthdate); err != nil {
		return err
	}
	if _, err := time.Parse(verein.DateLayout, f.Birthdate); err != nil {
		return verein.Invalid("birthdate", verein.MsgInvalidDate)
	}

	switch f.MembershipType {
	case "", MembershipSingle, MembershipFamily:
	default:
		return verein.Invalid("membershipType", verein.MsgInvalidChoice)
	}
	switch f.ApplicantType {
	case "", ApplicantSelf, ApplicantOther:
	default:
		return verein.Invalid("applicantType", verein.MsgInvalidChoice)
	}

	return nil
}

func (f MembershipForm) request() mailrelay.MembershipRequest {
	membershipType, applicantType := f.MembershipType, f.ApplicantType
	if membershipType == "" {
		membershipType = MembershipSingle
	}
	if applicantType == "" {
		applicantType = ApplicantSelf
	}

	return mailrelay.MembershipRequest{
		Name:           f.FirstName + " " + f.LastName,
		Email:          f.Email,
		Phone:          f.Phone,
		Address:        f.Address,
		Birthdate:      f.Birthdate,
		Message:        f.Message,
		MembershipType: membershipType,
		ApplicantType:  applicantType,
	}
}

type RegistrationForm struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f RegistrationForm) Validate() error {
	if err := verein.ValidateEmail("email", f.Email); err != nil {
		return err
	}
	return verein.ValidatePassword(f.Password, f.ConfirmPassword)
}

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	if err := verein.Required("email", f.Email); err != nil {
		return err
	}
	return verein.Required("password", f.Password)
}
