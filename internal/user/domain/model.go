package domain

import (
	"context"
	"errors"
)

type User struct {
	ID       int64  `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	Username string `json:"username" gorm:"type:varchar(255);not null;uniqueIndex:ux_users_username"`
	Password string `json:"-" gorm:"type:text;not null"`
}

func (User) TableName() string { return "users" }

// NewUser carries an already hashed password.
type NewUser struct {
	Username     string
	PasswordHash string
}

type Repository interface {
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, input NewUser) (*User, error)
}

var ErrUsernameTaken = errors.New("username_taken")
