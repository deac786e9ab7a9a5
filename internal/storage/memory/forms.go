package memory

import (
	"context"

	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
)

func (s *Store) CreateCorporateInquiry(ctx context.Context, input inquirydomain.CorporateInquiryInput) (*inquirydomain.CorporateInquiry, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inquiry := inquirydomain.CorporateInquiry{
		ID:        s.nextID(),
		Name:      input.Name,
		Email:     input.Email,
		Company:   input.Company,
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: s.now(),
	}
	if input.Quantity != nil {
		q := *input.Quantity
		inquiry.Quantity = &q
	}
	s.inquiries[inquiry.ID] = inquiry
	return &inquiry, nil
}

func (s *Store) CreateContactForm(ctx context.Context, input inquirydomain.ContactFormInput) (*inquirydomain.ContactForm, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contact := inquirydomain.ContactForm{
		ID:        s.nextID(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: s.now(),
	}
	s.contacts[contact.ID] = contact
	return &contact, nil
}

func (s *Store) CreateNewsletter(ctx context.Context, input inquirydomain.NewsletterInput) (*inquirydomain.Newsletter, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	email := inquirydomain.NormalizeEmail(input.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.newsletters[email]; exists {
		return nil, inquirydomain.ErrAlreadySubscribed
	}
	entry := inquirydomain.Newsletter{
		ID:        s.nextID(),
		Email:     email,
		CreatedAt: s.now(),
	}
	s.newsletters[email] = entry
	return &entry, nil
}

func (s *Store) IsEmailSubscribed(ctx context.Context, email string) (bool, error) {
	if err := checkContext(ctx); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.newsletters[inquirydomain.NormalizeEmail(email)]
	return exists, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*userdomain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, nil
	}
	u := s.users[id]
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, input userdomain.NewUser) (*userdomain.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[input.Username]; taken {
		return nil, userdomain.ErrUsernameTaken
	}
	u := userdomain.User{
		ID:       s.nextID(),
		Username: input.Username,
		Password: input.PasswordHash,
	}
	s.users[u.ID] = u
	s.usernames[u.Username] = u.ID
	return &u, nil
}
