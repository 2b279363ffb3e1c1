package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  MovementType = "INCOME"
	Expense MovementType = "EXPENSE"

	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type (
	MovementType string

	Role string

	// UserRef is the owner snippet embedded in a movement.
	UserRef struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// Movement is a single income or expense record. Amounts are held in
	// cents; the HTTP layer formats them as 2-decimal strings.
	Movement struct {
		ID          string
		Type        MovementType
		AmountCents int64
		Concept     string
		Date        time.Time
		CreatedAt   time.Time
		User        UserRef
	}

	User struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Phone     string    `json:"phone"`
		Role      Role      `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}

	// UserPatch carries the optional fields of a user update. Nil means
	// "leave unchanged".
	UserPatch struct {
		Name  *string
		Role  *Role
		Phone *string
	}
)

var (
	ErrInvalidType   = errors.New("type must be INCOME or EXPENSE")
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrEmptyConcept  = errors.New("concept is required")
	ErrInvalidDate   = errors.New("date must be a valid ISO string")
	ErrInvalidRole   = errors.New("role must be ADMIN or USER")
	ErrEmptyPatch    = errors.New("at least one field must be provided")
)

func (t MovementType) Valid() bool {
	return t == Income || t == Expense
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (m Movement) Validate() error {
	if !m.Type.Valid() {
		return ErrInvalidType
	}
	if m.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(m.Concept) == "" {
		return ErrEmptyConcept
	}
	if m.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (p UserPatch) Validate() error {
	if p.Name == nil && p.Role == nil && p.Phone == nil {
		return ErrEmptyPatch
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if p.Role != nil && !p.Role.Valid() {
		return ErrInvalidRole
	}
	if p.Phone != nil && strings.TrimSpace(*p.Phone) == "" {
		return errors.New("phone cannot be empty")
	}
	return nil
}
