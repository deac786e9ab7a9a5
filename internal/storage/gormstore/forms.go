package gormstore

import (
	"context"

	inquirydomain "github.com/smallbiznis/storefront/internal/inquiry/domain"
	userdomain "github.com/smallbiznis/storefront/internal/user/domain"
	"github.com/smallbiznis/storefront/pkg/db"
)

func (s *Store) CreateCorporateInquiry(ctx context.Context, input inquirydomain.CorporateInquiryInput) (*inquirydomain.CorporateInquiry, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
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
	if err := s.conn(ctx).Create(&inquiry).Error; err != nil {
		return nil, db.Classify(err)
	}
	return &inquiry, nil
}

func (s *Store) CreateContactForm(ctx context.Context, input inquirydomain.ContactFormInput) (*inquirydomain.ContactForm, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	contact := inquirydomain.ContactForm{
		ID:        s.nextID(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: s.now(),
	}
	if err := s.conn(ctx).Create(&contact).Error; err != nil {
		return nil, db.Classify(err)
	}
	return &contact, nil
}

func (s *Store) CreateNewsletter(ctx context.Context, input inquirydomain.NewsletterInput) (*inquirydomain.Newsletter, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	entry := inquirydomain.Newsletter{
		ID:        s.nextID(),
		Email:     inquirydomain.NormalizeEmail(input.Email),
		CreatedAt: s.now(),
	}
	if err := s.conn(ctx).Create(&entry).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, inquirydomain.ErrAlreadySubscribed
		}
		return nil, db.Classify(err)
	}
	return &entry, nil
}

func (s *Store) IsEmailSubscribed(ctx context.Context, email string) (bool, error) {
	if s.db == nil {
		return false, nil
	}
	var count int64
	err := s.conn(ctx).
		Model(&inquirydomain.Newsletter{}).
		Where("email = ?", inquirydomain.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, db.Classify(err)
	}
	return count > 0, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*userdomain.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	return s.findUser(ctx, "username = ?", username)
}

func (s *Store) findUser(ctx context.Context, query string, arg any) (*userdomain.User, error) {
	if s.db == nil {
		return nil, nil
	}
	var u userdomain.User
	res := s.conn(ctx).Where(query, arg).Limit(1).Find(&u)
	if res.Error != nil {
		return nil, db.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, input userdomain.NewUser) (*userdomain.User, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	u := userdomain.User{
		ID:       s.nextID(),
		Username: input.Username,
		Password: input.PasswordHash,
	}
	if err := s.conn(ctx).Create(&u).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, userdomain.ErrUsernameTaken
		}
		return nil, db.Classify(err)
	}
	return &u, nil
}
