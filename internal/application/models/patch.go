package models

import "github.com/shopspring/decimal"

// Patches are the typed replacement for ad-hoc spread merges: each nested
// group has a companion struct whose pointer fields say, at compile time,
// which keys a payload supplied. Apply copies only the supplied keys onto the
// stored subdocument, so a payload touching one key leaves every sibling key
// untouched.

type BorrowerInfoPatch struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
	SSN         *string `json:"ssn,omitempty"`
}

func (p *BorrowerInfoPatch) Apply(b *BorrowerInfo) {
	setString(p.FirstName, &b.FirstName)
	setString(p.LastName, &b.LastName)
	setString(p.Email, &b.Email)
	setString(p.Phone, &b.Phone)
	setString(p.DateOfBirth, &b.DateOfBirth)
	setString(p.SSN, &b.SSN)
}

type AddressPatch struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
	YearsAt *int    `json:"yearsAt,omitempty"`
}

func (p *AddressPatch) Apply(a *Address) {
	setString(p.Street, &a.Street)
	setString(p.City, &a.City)
	setString(p.State, &a.State)
	setString(p.ZipCode, &a.ZipCode)
	setInt(p.YearsAt, &a.YearsAt)
}

type EmploymentPatch struct {
	Employer      *string          `json:"employer,omitempty"`
	Position      *string          `json:"position,omitempty"`
	YearsEmployed *int             `json:"yearsEmployed,omitempty"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome,omitempty"`
	WorkPhone     *string          `json:"workPhone,omitempty"`
}

func (p *EmploymentPatch) Apply(e *Employment) {
	setString(p.Employer, &e.Employer)
	setString(p.Position, &e.Position)
	setInt(p.YearsEmployed, &e.YearsEmployed)
	setDecimal(p.MonthlyIncome, &e.MonthlyIncome)
	setString(p.WorkPhone, &e.WorkPhone)
}

type FinancialInfoPatch struct {
	TotalAssets      *decimal.Decimal `json:"totalAssets,omitempty"`
	TotalLiabilities *decimal.Decimal `json:"totalLiabilities,omitempty"`
	CreditScore      *int             `json:"creditScore,omitempty"`
}

func (p *FinancialInfoPatch) Apply(f *FinancialInfo) {
	setDecimal(p.TotalAssets, &f.TotalAssets)
	setDecimal(p.TotalLiabilities, &f.TotalLiabilities)
	setInt(p.CreditScore, &f.CreditScore)
}

type PropertyInfoPatch struct {
	Address       *string          `json:"address,omitempty"`
	PropertyValue *decimal.Decimal `json:"propertyValue,omitempty"`
	LoanAmount    *decimal.Decimal `json:"loanAmount,omitempty"`
	DownPayment   *decimal.Decimal `json:"downPayment,omitempty"`
	LoanPurpose   *string          `json:"loanPurpose,omitempty"`
}

func (p *PropertyInfoPatch) Apply(pi *PropertyInfo) {
	setString(p.Address, &pi.Address)
	setDecimal(p.PropertyValue, &pi.PropertyValue)
	setDecimal(p.LoanAmount, &pi.LoanAmount)
	setDecimal(p.DownPayment, &pi.DownPayment)
	setString(p.LoanPurpose, &pi.LoanPurpose)
}

type DeclarationsPatch struct {
	OutstandingJudgments *bool `json:"outstandingJudgments,omitempty"`
	Bankruptcy           *bool `json:"bankruptcy,omitempty"`
	Foreclosure          *bool `json:"foreclosure,omitempty"`
	PartyToLawsuit       *bool `json:"partyToLawsuit,omitempty"`
	USCitizen            *bool `json:"usCitizen,omitempty"`
	PrimaryResidence     *bool `json:"primaryResidence,omitempty"`
}

func (p *DeclarationsPatch) Apply(d *Declarations) {
	setBool(p.OutstandingJudgments, &d.OutstandingJudgments)
	setBool(p.Bankruptcy, &d.Bankruptcy)
	setBool(p.Foreclosure, &d.Foreclosure)
	setBool(p.PartyToLawsuit, &d.PartyToLawsuit)
	setBool(p.USCitizen, &d.USCitizen)
	setBool(p.PrimaryResidence, &d.PrimaryResidence)
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(src *int, dst *int) {
	if src != nil {
		*dst = *src
	}
}

func setBool(src *bool, dst *bool) {
	if src != nil {
		*dst = *src
	}
}

func setDecimal(src *decimal.Decimal, dst *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}
