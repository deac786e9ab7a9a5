package domain

import "time"

type CorporateInquiry struct {
	ID        int64     `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Company   string    `json:"company" gorm:"type:text;not null"`
	Phone     string    `json:"phone" gorm:"type:text;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Quantity  *int64    `json:"quantity" gorm:"default:null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (CorporateInquiry) TableName() string { return "corporate_inquiries" }

type ContactForm struct {
	ID        int64     `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Email     string    `json:"email" gorm:"type:text;not null"`
	Subject   string    `json:"subject" gorm:"type:text;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (ContactForm) TableName() string { return "contact_forms" }

type Newsletter struct {
	ID        int64     `json:"id,string" gorm:"primaryKey;autoIncrement:false"`
	Email     string    `json:"email" gorm:"type:varchar(320);not null;uniqueIndex:ux_newsletters_email"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (Newsletter) TableName() string { return "newsletters" }

type CorporateInquiryInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Company  string `json:"company" validate:"notblank"`
	Phone    string `json:"phone" validate:"notblank"`
	Message  string `json:"message" validate:"notblank"`
	Quantity *int64 `json:"quantity" validate:"omitempty,gte=1"`
}

type ContactFormInput struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"notblank"`
	Message string `json:"message" validate:"notblank"`
}

type NewsletterInput struct {
	Email string `json:"email" validate:"required,email"`
}
