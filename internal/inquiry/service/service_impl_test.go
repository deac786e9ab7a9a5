package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/storefront/internal/inquiry/domain"
	"github.com/smallbiznis/storefront/internal/storage/memory"
	"github.com/smallbiznis/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, repo domain.Repository) domain.Service {
	t.Helper()
	if repo == nil {
		node, err := snowflake.NewNode(7)
		require.NoError(t, err)
		repo = memory.New(node, memory.WithoutSeed())
	}
	return New(Params{Log: zap.NewNop(), Repo: repo})
}

func TestSubscribe(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	item, err := svc.Subscribe(ctx, domain.NewsletterInput{Email: "  Fan@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", item.Email)

	_, err = svc.Subscribe(ctx, domain.NewsletterInput{Email: "fan@example.com"})
	var verr *validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Errors[0].Field)
	assert.Equal(t, "already_subscribed", verr.Errors[0].Code)
	assert.Equal(t, "Email is already subscribed", verr.Errors[0].Message)

	_, err = svc.Subscribe(ctx, domain.NewsletterInput{Email: "not-an-email"})
	assert.True(t, validation.IsValidation(err))
}

// racyRepo reports every email as new so the storage constraint is hit.
type racyRepo struct {
	domain.Repository
}

func (racyRepo) IsEmailSubscribed(context.Context, string) (bool, error) { return false, nil }

func (racyRepo) CreateNewsletter(context.Context, domain.NewsletterInput) (*domain.Newsletter, error) {
	return nil, domain.ErrAlreadySubscribed
}

func TestSubscribeStorageConflict(t *testing.T) {
	svc := newTestService(t, racyRepo{})
	_, err := svc.Subscribe(context.Background(), domain.NewsletterInput{Email: "fan@example.com"})
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestSubmitCorporateInquiry(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()
	qty := int64(40)

	item, err := svc.SubmitCorporateInquiry(ctx, domain.CorporateInquiryInput{
		Name:     "Budi",
		Email:    "budi@corp.example",
		Company:  "Corp",
		Phone:    "021555",
		Message:  "Hampers for the team",
		Quantity: &qty,
	})
	require.NoError(t, err)
	require.NotNil(t, item.Quantity)
	assert.Equal(t, int64(40), *item.Quantity)

	zero := int64(0)
	_, err = svc.SubmitCorporateInquiry(ctx, domain.CorporateInquiryInput{
		Name: "Budi", Email: "budi@corp.example", Company: "Corp", Phone: "021555", Message: "x", Quantity: &zero,
	})
	var verr *validation.Errors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quantity", verr.Errors[0].Field)
}

func TestSubmitContactForm(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	item, err := svc.SubmitContactForm(ctx, domain.ContactFormInput{
		Name: "Ayu", Email: "ayu@example.com", Subject: "Allergens", Message: "Do you use nuts?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Allergens", item.Subject)

	_, err = svc.SubmitContactForm(ctx, domain.ContactFormInput{Name: "Ayu", Email: "ayu@example.com"})
	assert.True(t, validation.IsValidation(err))
}
