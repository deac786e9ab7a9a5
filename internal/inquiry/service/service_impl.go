package service

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/storefront/internal/inquiry/domain"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/validation"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	formCorporate  = "corporate_inquiry"
	formContact    = "contact"
	formNewsletter = "newsletter"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:     p.Log.Named("inquiry.service"),
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) SubmitCorporateInquiry(ctx context.Context, input domain.CorporateInquiryInput) (*domain.CorporateInquiry, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Company = strings.TrimSpace(input.Company)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input); err != nil {
		s.record(ctx, formCorporate, "invalid")
		return nil, err
	}

	item, err := s.repo.CreateCorporateInquiry(ctx, input)
	if err != nil {
		s.record(ctx, formCorporate, "error")
		return nil, err
	}
	s.record(ctx, formCorporate, "accepted")
	logger.WithContext(ctx, s.log).Info("corporate inquiry received", zap.Int64("inquiry_id", item.ID))
	return item, nil
}

func (s *Service) SubmitContactForm(ctx context.Context, input domain.ContactFormInput) (*domain.ContactForm, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Subject = strings.TrimSpace(input.Subject)
	if err := validation.Struct(input); err != nil {
		s.record(ctx, formContact, "invalid")
		return nil, err
	}

	item, err := s.repo.CreateContactForm(ctx, input)
	if err != nil {
		s.record(ctx, formContact, "error")
		return nil, err
	}
	s.record(ctx, formContact, "accepted")
	logger.WithContext(ctx, s.log).Info("contact form received", zap.Int64("contact_id", item.ID))
	return item, nil
}

// Subscribe checks for an existing subscription before writing. Storage still
// enforces uniqueness for concurrent signups, reported as ErrAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, input domain.NewsletterInput) (*domain.Newsletter, error) {
	input.Email = domain.NormalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		s.record(ctx, formNewsletter, "invalid")
		return nil, err
	}

	subscribed, err := s.repo.IsEmailSubscribed(ctx, input.Email)
	if err != nil {
		s.record(ctx, formNewsletter, "error")
		return nil, err
	}
	if subscribed {
		s.record(ctx, formNewsletter, "duplicate")
		return nil, validation.NewError("email", "already_subscribed", "Email is already subscribed")
	}

	item, err := s.repo.CreateNewsletter(ctx, input)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			result = "duplicate"
		}
		s.record(ctx, formNewsletter, result)
		return nil, err
	}
	s.record(ctx, formNewsletter, "accepted")
	return item, nil
}

func (s *Service) record(ctx context.Context, form, result string) {
	s.metrics.RecordFormSubmission(ctx, form, result)
}
