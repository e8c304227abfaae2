package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "lendfold/pkg/domain-errors"
)

func validCreateRequest() *CreateRequest {
	return &CreateRequest{
		BorrowerInfo: &BorrowerInfo{
			FirstName: "Ada",
			LastName:  "Nguyen",
			SSN:       "123-45-6789",
		},
		PropertyInfo: &PropertyInfo{
			Address:       "12 Elm St",
			PropertyValue: decimal.NewFromInt(450000),
			LoanAmount:    decimal.NewFromInt(360000),
		},
	}
}

func TestCreateRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validCreateRequest().Validate())
	})

	t.Run("missing borrowerInfo", func(t *testing.T) {
		req := validCreateRequest()
		req.BorrowerInfo = nil
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("missing propertyInfo", func(t *testing.T) {
		req := validCreateRequest()
		req.PropertyInfo = nil
		assert.Error(t, req.Validate())
	})

	t.Run("non-positive loan amount", func(t *testing.T) {
		req := validCreateRequest()
		req.PropertyInfo.LoanAmount = decimal.Zero
		assert.Error(t, req.Validate())
	})

	t.Run("negative property value", func(t *testing.T) {
		req := validCreateRequest()
		req.PropertyInfo.PropertyValue = decimal.NewFromInt(-1)
		assert.Error(t, req.Validate())
	})
}

func TestValidSSNFormat(t *testing.T) {
	assert.True(t, ValidSSNFormat("123-45-6789"))
	assert.False(t, ValidSSNFormat("123456789"))
	assert.False(t, ValidSSNFormat("123-45-678"))
	assert.False(t, ValidSSNFormat("12a-45-6789"))
	assert.False(t, ValidSSNFormat(""))
}

func TestCreateRequestGroups(t *testing.T) {
	req := validCreateRequest()
	req.Assets = []Asset{{Type: "checking"}}
	assert.Equal(t, []string{"borrowerInfo", "propertyInfo", "assets"}, req.Groups())
}

func TestUpdateRequestMerge(t *testing.T) {
	t.Run("patch touches only supplied keys", func(t *testing.T) {
		app := &LoanApplication{
			BorrowerInfo: BorrowerInfo{
				FirstName: "Ada",
				LastName:  "Nguyen",
				Email:     "ada@example.com",
				SSN:       "enc:v1:abc:def",
			},
			Employment: Employment{
				Employer:      "Initech",
				MonthlyIncome: decimal.NewFromInt(8000),
			},
		}
		phone := "555-0100"
		income := decimal.NewFromInt(9500)
		req := &UpdateRequest{
			BorrowerInfo: &BorrowerInfoPatch{Phone: &phone},
			Employment:   &EmploymentPatch{MonthlyIncome: &income},
		}

		req.Merge(app)

		assert.Equal(t, "555-0100", app.BorrowerInfo.Phone)
		assert.Equal(t, "Ada", app.BorrowerInfo.FirstName)
		assert.Equal(t, "ada@example.com", app.BorrowerInfo.Email)
		assert.Equal(t, "enc:v1:abc:def", app.BorrowerInfo.SSN)
		assert.Equal(t, "Initech", app.Employment.Employer)
		assert.True(t, income.Equal(app.Employment.MonthlyIncome))
	})

	t.Run("absent groups are untouched", func(t *testing.T) {
		app := &LoanApplication{
			CurrentAddress: Address{City: "Springfield"},
			Declarations:   Declarations{USCitizen: true},
		}
		req := &UpdateRequest{}
		req.Merge(app)
		assert.Equal(t, "Springfield", app.CurrentAddress.City)
		assert.True(t, app.Declarations.USCitizen)
	})

	t.Run("collections replaced wholesale", func(t *testing.T) {
		app := &LoanApplication{
			Assets: []Asset{{Type: "checking"}, {Type: "savings"}},
		}
		assets := []Asset{{Type: "brokerage"}}
		req := &UpdateRequest{Assets: &assets}
		req.Merge(app)
		require.Len(t, app.Assets, 1)
		assert.Equal(t, "brokerage", app.Assets[0].Type)
	})

	t.Run("explicit empty string clears a field", func(t *testing.T) {
		app := &LoanApplication{BorrowerInfo: BorrowerInfo{Phone: "555-0100"}}
		empty := ""
		req := &UpdateRequest{BorrowerInfo: &BorrowerInfoPatch{Phone: &empty}}
		req.Merge(app)
		assert.Empty(t, app.BorrowerInfo.Phone)
	})
}

func TestUpdateRequestValidate(t *testing.T) {
	t.Run("empty patch is valid", func(t *testing.T) {
		assert.NoError(t, (&UpdateRequest{}).Validate())
	})

	t.Run("positive amounts pass", func(t *testing.T) {
		amount := decimal.NewFromInt(360000)
		req := &UpdateRequest{PropertyInfo: &PropertyInfoPatch{LoanAmount: &amount}}
		assert.NoError(t, req.Validate())
	})

	t.Run("zero loan amount rejected", func(t *testing.T) {
		zero := decimal.Zero
		req := &UpdateRequest{PropertyInfo: &PropertyInfoPatch{LoanAmount: &zero}}
		err := req.Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("negative property value rejected", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		req := &UpdateRequest{PropertyInfo: &PropertyInfoPatch{PropertyValue: &negative}}
		assert.True(t, dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	})

	t.Run("absent amounts are not re-checked", func(t *testing.T) {
		address := "14 Elm St"
		req := &UpdateRequest{PropertyInfo: &PropertyInfoPatch{Address: &address}}
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateRequestChangedFields(t *testing.T) {
	status := "under_review"
	req := &UpdateRequest{
		Status:       &status,
		BorrowerInfo: &BorrowerInfoPatch{},
	}
	assert.Equal(t, []string{"status", "borrowerInfo"}, req.ChangedFields())
	assert.Empty(t, (&UpdateRequest{}).ChangedFields())
}

// JSON absent-vs-empty is the whole point of the patch shapes, so pin the
// decoding behavior down.
func TestUpdateRequestDecoding(t *testing.T) {
	var req UpdateRequest
	payload := `{"borrowerInfo":{"phone":""},"notes":"n"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	require.NotNil(t, req.BorrowerInfo)
	require.NotNil(t, req.BorrowerInfo.Phone)
	assert.Empty(t, *req.BorrowerInfo.Phone)
	assert.Nil(t, req.BorrowerInfo.SSN)
	assert.Nil(t, req.Status)
}
