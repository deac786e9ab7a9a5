package domain

import (
	"context"
	"errors"
	"strings"
)

type Service interface {
	SubmitCorporateInquiry(ctx context.Context, input CorporateInquiryInput) (*CorporateInquiry, error)
	SubmitContactForm(ctx context.Context, input ContactFormInput) (*ContactForm, error)
	Subscribe(ctx context.Context, input NewsletterInput) (*Newsletter, error)
}

var ErrAlreadySubscribed = errors.New("already_subscribed")

// NormalizeEmail is the form under which newsletter emails are stored and
// compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
