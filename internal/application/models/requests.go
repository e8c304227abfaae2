package models

import (
	"regexp"

	dErrors "lendfold/pkg/domain-errors"
)

var ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)

// ValidSSNFormat reports whether a plaintext value looks like an SSN. The
// check only applies to plaintext; ciphertext tokens bypass it on the write
// path.
func ValidSSNFormat(ssn string) bool {
	return ssnPattern.MatchString(ssn)
}

// CreateRequest is the full submission payload. Nested groups are pointers so
// "absent" and "empty" are distinguishable; borrowerInfo and propertyInfo are
// required. Status, decision, assignment, and history are never accepted from
// the client at creation.
type CreateRequest struct {
	BorrowerInfo   *BorrowerInfo  `json:"borrowerInfo"`
	CurrentAddress *Address       `json:"currentAddress,omitempty"`
	Employment     *Employment    `json:"employment,omitempty"`
	FinancialInfo  *FinancialInfo `json:"financialInfo,omitempty"`
	PropertyInfo   *PropertyInfo  `json:"propertyInfo"`
	Declarations   *Declarations  `json:"declarations,omitempty"`
	Assets         []Asset        `json:"assets,omitempty"`
	Liabilities    []Liability    `json:"liabilities,omitempty"`
}

// Validate enforces the creation preconditions: required groups present and
// positive amounts. SSN format is checked by the service, which knows whether
// the value is plaintext or a resubmitted ciphertext token.
func (r *CreateRequest) Validate() error {
	if r.BorrowerInfo == nil {
		return dErrors.New(dErrors.CodeValidation, "borrowerInfo is required")
	}
	if r.PropertyInfo == nil {
		return dErrors.New(dErrors.CodeValidation, "propertyInfo is required")
	}
	if !r.PropertyInfo.LoanAmount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "propertyInfo.loanAmount must be positive")
	}
	if !r.PropertyInfo.PropertyValue.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "propertyInfo.propertyValue must be positive")
	}
	return nil
}

// Groups lists the top-level nested group names present in the payload, in a
// stable order. Used for audit metadata, which carries field names only.
func (r *CreateRequest) Groups() []string {
	var groups []string
	if r.BorrowerInfo != nil {
		groups = append(groups, "borrowerInfo")
	}
	if r.CurrentAddress != nil {
		groups = append(groups, "currentAddress")
	}
	if r.Employment != nil {
		groups = append(groups, "employment")
	}
	if r.FinancialInfo != nil {
		groups = append(groups, "financialInfo")
	}
	if r.PropertyInfo != nil {
		groups = append(groups, "propertyInfo")
	}
	if r.Declarations != nil {
		groups = append(groups, "declarations")
	}
	if len(r.Assets) > 0 {
		groups = append(groups, "assets")
	}
	if len(r.Liabilities) > 0 {
		groups = append(groups, "liabilities")
	}
	return groups
}

// UpdateRequest is a partial update. Nested groups are patches: only the keys
// a patch carries are merged into the stored subdocument. Assets, liabilities,
// and documents are replaced wholesale when present. Status and decision are
// raw strings validated by the state machine before any mutation.
type UpdateRequest struct {
	Status        *string `json:"status,omitempty"`
	Decision      *string `json:"decision,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	DecisionNotes string  `json:"decisionNotes,omitempty"`

	BorrowerInfo   *BorrowerInfoPatch  `json:"borrowerInfo,omitempty"`
	CurrentAddress *AddressPatch       `json:"currentAddress,omitempty"`
	Employment     *EmploymentPatch    `json:"employment,omitempty"`
	FinancialInfo  *FinancialInfoPatch `json:"financialInfo,omitempty"`
	PropertyInfo   *PropertyInfoPatch  `json:"propertyInfo,omitempty"`
	Declarations   *DeclarationsPatch  `json:"declarations,omitempty"`
	Assets         *[]Asset            `json:"assets,omitempty"`
	Liabilities    *[]Liability        `json:"liabilities,omitempty"`
	Documents      *[]DocumentMeta     `json:"documents,omitempty"`
}

// Validate applies the creation amount preconditions to whichever amounts
// the payload carries. Absent fields keep their stored values and are not
// re-checked.
func (r *UpdateRequest) Validate() error {
	if r.PropertyInfo == nil {
		return nil
	}
	if r.PropertyInfo.LoanAmount != nil && !r.PropertyInfo.LoanAmount.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "propertyInfo.loanAmount must be positive")
	}
	if r.PropertyInfo.PropertyValue != nil && !r.PropertyInfo.PropertyValue.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "propertyInfo.propertyValue must be positive")
	}
	return nil
}

// Merge applies every supplied patch onto the record. Status, decision,
// assignment, and history are deliberately not handled here; those flow
// through the state machine so history stays append-only and attributable.
func (r *UpdateRequest) Merge(app *LoanApplication) {
	if r.BorrowerInfo != nil {
		r.BorrowerInfo.Apply(&app.BorrowerInfo)
	}
	if r.CurrentAddress != nil {
		r.CurrentAddress.Apply(&app.CurrentAddress)
	}
	if r.Employment != nil {
		r.Employment.Apply(&app.Employment)
	}
	if r.FinancialInfo != nil {
		r.FinancialInfo.Apply(&app.FinancialInfo)
	}
	if r.PropertyInfo != nil {
		r.PropertyInfo.Apply(&app.PropertyInfo)
	}
	if r.Declarations != nil {
		r.Declarations.Apply(&app.Declarations)
	}
	if r.Assets != nil {
		app.Assets = append([]Asset(nil), (*r.Assets)...)
	}
	if r.Liabilities != nil {
		app.Liabilities = append([]Liability(nil), (*r.Liabilities)...)
	}
	if r.Documents != nil {
		app.Documents = append([]DocumentMeta(nil), (*r.Documents)...)
	}
}

// ChangedFields lists the top-level field names present in the payload, in a
// stable order. Audit metadata is limited to these names; raw values never
// reach the audit trail.
func (r *UpdateRequest) ChangedFields() []string {
	var fields []string
	if r.Status != nil {
		fields = append(fields, "status")
	}
	if r.Decision != nil {
		fields = append(fields, "decision")
	}
	if r.BorrowerInfo != nil {
		fields = append(fields, "borrowerInfo")
	}
	if r.CurrentAddress != nil {
		fields = append(fields, "currentAddress")
	}
	if r.Employment != nil {
		fields = append(fields, "employment")
	}
	if r.FinancialInfo != nil {
		fields = append(fields, "financialInfo")
	}
	if r.PropertyInfo != nil {
		fields = append(fields, "propertyInfo")
	}
	if r.Declarations != nil {
		fields = append(fields, "declarations")
	}
	if r.Assets != nil {
		fields = append(fields, "assets")
	}
	if r.Liabilities != nil {
		fields = append(fields, "liabilities")
	}
	if r.Documents != nil {
		fields = append(fields, "documents")
	}
	return fields
}
