package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role partitions accounts by the side of the job board they belong to.
type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "jobseeker"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployer, RoleJobSeeker:
		return true
	}
	return false
}

// Account is a registered identity. Email is unique per role, not globally.
type Account struct {
	ID           uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	Email        string            `json:"email" gorm:"size:255;not null;uniqueIndex:idx_accounts_email_role"`
	PasswordHash string            `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role              `json:"role" gorm:"size:32;not null;uniqueIndex:idx_accounts_email_role"`
	Profile      datatypes.JSONMap `json:"profile,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewAccount is a sign-up payload. Password is plaintext and must never be
// persisted or logged.
type NewAccount struct {
	Email    string
	Password string
	Role     Role
	Profile  map[string]any
}

// NewAccountFromPayload splits a decoded JSON body into the credential fields
// and the opaque profile. Non-string credential values are treated as absent.
// The role is kept exactly as sent; only the lowercase names are valid.
func NewAccountFromPayload(payload map[string]any) NewAccount {
	acct := NewAccount{Profile: make(map[string]any, len(payload))}
	for k, v := range payload {
		switch k {
		case "email":
			acct.Email, _ = v.(string)
		case "password":
			acct.Password, _ = v.(string)
		case "role":
			role, _ := v.(string)
			acct.Role = Role(role)
		default:
			acct.Profile[k] = v
		}
	}
	return acct
}
