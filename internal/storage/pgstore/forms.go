package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
	"github.com/smallbiznis/storefront/pkg/db"
)

func (s *Store) CreateCorporateInquiry(ctx context.Context, input inquirydomain.CorporateInquiryInput) (*inquirydomain.CorporateInquiry, error) {
	inquiry := inquirydomain.CorporateInquiry{
		ID:        s.nextID(),
		Name:      input.Name,
		Email:     input.Email,
		Company:   input.Company,
		Phone:     input.Phone,
		Message:   input.Message,
		Quantity:  input.Quantity,
		CreatedAt: s.now(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO corporate_inquiries (id, name, email, company, phone, message, quantity, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inquiry.ID,
		inquiry.Name,
		inquiry.Email,
		inquiry.Company,
		inquiry.Phone,
		inquiry.Message,
		inquiry.Quantity,
		inquiry.CreatedAt,
	)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &inquiry, nil
}

func (s *Store) CreateContactForm(ctx context.Context, input inquirydomain.ContactFormInput) (*inquirydomain.ContactForm, error) {
	contact := inquirydomain.ContactForm{
		ID:        s.nextID(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: s.now(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_forms (id, name, email, subject, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		contact.ID,
		contact.Name,
		contact.Email,
		contact.Subject,
		contact.Message,
		contact.CreatedAt,
	)
	if err != nil {
		return nil, db.Classify(err)
	}
	return &contact, nil
}

func (s *Store) CreateNewsletter(ctx context.Context, input inquirydomain.NewsletterInput) (*inquirydomain.Newsletter, error) {
	entry := inquirydomain.Newsletter{
		ID:        s.nextID(),
		Email:     inquirydomain.NormalizeEmail(input.Email),
		CreatedAt: s.now(),
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO newsletters (id, email, created_at) VALUES ($1, $2, $3)`,
		entry.ID, entry.Email, entry.CreatedAt,
	)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, inquirydomain.ErrAlreadySubscribed
		}
		return nil, db.Classify(err)
	}
	return &entry, nil
}

func (s *Store) IsEmailSubscribed(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM newsletters WHERE email = $1)`,
		inquirydomain.NormalizeEmail(email),
	).Scan(&exists)
	if err != nil {
		return false, db.Classify(err)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*userdomain.User, error) {
	var u userdomain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*userdomain.User, error) {
	return getOne(ctx, s.pool, scanUser, `SELECT id, username, password FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	return getOne(ctx, s.pool, scanUser, `SELECT id, username, password FROM users WHERE username = $1`, username)
}

func (s *Store) CreateUser(ctx context.Context, input userdomain.NewUser) (*userdomain.User, error) {
	u := userdomain.User{
		ID:       s.nextID(),
		Username: input.Username,
		Password: input.PasswordHash,
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password) VALUES ($1, $2, $3)`,
		u.ID, u.Username, u.Password,
	)
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, userdomain.ErrUsernameTaken
		}
		return nil, db.Classify(err)
	}
	return &u, nil
}
