package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleApplicant Role = "applicant"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleApplicant || r == RoleRecruiter
}

// Account is immutable after sign-up except for the credential hash.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"type:text;not null;uniqueIndex:idx_accounts_email_role" json:"email"`
	Role         Role      `gorm:"type:text;not null;uniqueIndex:idx_accounts_email_role" json:"role"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	DisplayName  string    `gorm:"type:text" json:"display_name"`
	CreatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (a *Account) TableName() string {
	return "accounts"
}
