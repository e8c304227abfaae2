package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// View is the client-safe projection of a LoanApplication. It is the only
// shape read operations return: sensitive fields are masked, never plaintext
// and never raw ciphertext. Export collaborators consume this same shape.
type View struct {
	ID      uuid.UUID `json:"id"`
	OwnerID string    `json:"ownerId"`

	Status   Status   `json:"status"`
	Decision Decision `json:"decision,omitempty"`

	AssignedTo string     `json:"assignedTo,omitempty"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
	ReviewedBy string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`

	StatusHistory []StatusChange `json:"statusHistory"`

	BorrowerInfo   BorrowerInfoView `json:"borrowerInfo"`
	CurrentAddress Address          `json:"currentAddress"`
	Employment     Employment       `json:"employment"`
	FinancialInfo  FinancialInfo    `json:"financialInfo"`
	PropertyInfo   PropertyInfo     `json:"propertyInfo"`
	Declarations   Declarations     `json:"declarations"`
	Assets         []AssetView      `json:"assets"`
	Liabilities    []Liability      `json:"liabilities"`
	Documents      []DocumentMeta   `json:"documents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BorrowerInfoView carries the masked SSN (XXX-XX-####).
type BorrowerInfoView struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	SSN         string `json:"ssn,omitempty"`
}

// AssetView carries the masked account number (****####).
type AssetView struct {
	Type          string          `json:"type,omitempty"`
	Institution   string          `json:"institution,omitempty"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Value         decimal.Decimal `json:"value"`
}
