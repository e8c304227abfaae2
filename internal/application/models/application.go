package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lendfold/internal/access"
)

// LoanApplication is the aggregate root for one loan origination record.
//
// Invariants:
//   - ID and OwnerID are set at creation and never change.
//   - Status and Decision only hold values from their closed sets.
//   - AssignedTo moves from empty to one employee id at most once; this
//     subsystem has no reassignment path.
//   - StatusHistory only grows; entries are never edited or truncated.
//   - BorrowerInfo.SSN and Asset.AccountNumber are never persisted as
//     plaintext except for rows that predate encryption.
type LoanApplication struct {
	ID      uuid.UUID `json:"id"`
	OwnerID string    `json:"ownerId"`

	Status   Status   `json:"status"`
	Decision Decision `json:"decision,omitempty"`

	AssignedTo string     `json:"assignedTo,omitempty"`
	AssignedAt *time.Time `json:"assignedAt,omitempty"`
	ReviewedBy string     `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`

	StatusHistory []StatusChange `json:"statusHistory"`

	BorrowerInfo   BorrowerInfo   `json:"borrowerInfo"`
	CurrentAddress Address        `json:"currentAddress"`
	Employment     Employment     `json:"employment"`
	FinancialInfo  FinancialInfo  `json:"financialInfo"`
	PropertyInfo   PropertyInfo   `json:"propertyInfo"`
	Declarations   Declarations   `json:"declarations"`
	Assets         []Asset        `json:"assets"`
	Liabilities    []Liability    `json:"liabilities"`
	Documents      []DocumentMeta `json:"documents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusChange is one append-only history entry. Entries carry either a
// status transition, a decision, or both, and are always attributable to a
// specific actor and role.
type StatusChange struct {
	Status    Status      `json:"status"`
	Decision  Decision    `json:"decision,omitempty"`
	ActorID   string      `json:"actorId"`
	ActorRole access.Role `json:"actorRole"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     string      `json:"notes,omitempty"`
}

// BorrowerInfo holds the applicant's identity details. SSN is ciphertext at
// rest; only the masked form ever leaves the subsystem.
type BorrowerInfo struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	SSN         string `json:"ssn,omitempty"`
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	YearsAt int    `json:"yearsAt,omitempty"`
}

type Employment struct {
	Employer      string          `json:"employer,omitempty"`
	Position      string          `json:"position,omitempty"`
	YearsEmployed int             `json:"yearsEmployed,omitempty"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
	WorkPhone     string          `json:"workPhone,omitempty"`
}

type FinancialInfo struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	CreditScore      int             `json:"creditScore,omitempty"`
}

type PropertyInfo struct {
	Address       string          `json:"address,omitempty"`
	PropertyValue decimal.Decimal `json:"propertyValue"`
	LoanAmount    decimal.Decimal `json:"loanAmount"`
	DownPayment   decimal.Decimal `json:"downPayment"`
	LoanPurpose   string          `json:"loanPurpose,omitempty"`
}

type Declarations struct {
	OutstandingJudgments bool `json:"outstandingJudgments"`
	Bankruptcy           bool `json:"bankruptcy"`
	Foreclosure          bool `json:"foreclosure"`
	PartyToLawsuit       bool `json:"partyToLawsuit"`
	USCitizen            bool `json:"usCitizen"`
	PrimaryResidence     bool `json:"primaryResidence"`
}

// Asset is a declared asset. AccountNumber is ciphertext at rest.
type Asset struct {
	Type          string          `json:"type,omitempty"`
	Institution   string          `json:"institution,omitempty"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	Value         decimal.Decimal `json:"value"`
}

type Liability struct {
	Type           string          `json:"type,omitempty"`
	Creditor       string          `json:"creditor,omitempty"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Balance        decimal.Decimal `json:"balance"`
}

// DocumentMeta is upload metadata only; file bytes live elsewhere.
type DocumentMeta struct {
	Name       string    `json:"name"`
	Type       string    `json:"type,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
	StorageKey string    `json:"storageKey,omitempty"`
}

// HasSensitiveFields reports whether the record carries any value subject to
// encryption and masking. Used to decide whether a read emits a
// sensitive-access audit entry.
func (a *LoanApplication) HasSensitiveFields() bool {
	if a.BorrowerInfo.SSN != "" {
		return true
	}
	for _, asset := range a.Assets {
		if asset.AccountNumber != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so in-memory store reads never alias the stored
// record.
func (a *LoanApplication) Clone() *LoanApplication {
	clone := *a
	clone.StatusHistory = append([]StatusChange(nil), a.StatusHistory...)
	clone.Assets = append([]Asset(nil), a.Assets...)
	clone.Liabilities = append([]Liability(nil), a.Liabilities...)
	clone.Documents = append([]DocumentMeta(nil), a.Documents...)
	if a.AssignedAt != nil {
		t := *a.AssignedAt
		clone.AssignedAt = &t
	}
	if a.ReviewedAt != nil {
		t := *a.ReviewedAt
		clone.ReviewedAt = &t
	}
	return &clone
}
