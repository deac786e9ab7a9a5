package domain

import "context"

type Repository interface {
	CreateCorporateInquiry(ctx context.Context, input CorporateInquiryInput) (*CorporateInquiry, error)
	CreateContactForm(ctx context.Context, input ContactFormInput) (*ContactForm, error)
	// CreateNewsletter fails with ErrAlreadySubscribed for a known email.
	CreateNewsletter(ctx context.Context, input NewsletterInput) (*Newsletter, error)
	IsEmailSubscribed(ctx context.Context, email string) (bool, error)
}
