package service

import (
	"lendfold/internal/application/models"
	"lendfold/internal/fieldcrypt"
)

// buildView projects the aggregate into its client-safe shape. Sensitive
// values are decrypted and then masked; rows written before encryption was
// introduced still mask their plaintext values.
func (s *Service) buildView(app *models.LoanApplication) *models.View {
	view := &models.View{
		ID:            app.ID,
		OwnerID:       app.OwnerID,
		Status:        app.Status,
		Decision:      app.Decision,
		AssignedTo:    app.AssignedTo,
		AssignedAt:    app.AssignedAt,
		ReviewedBy:    app.ReviewedBy,
		ReviewedAt:    app.ReviewedAt,
		StatusHistory: append([]models.StatusChange(nil), app.StatusHistory...),
		BorrowerInfo: models.BorrowerInfoView{
			FirstName:   app.BorrowerInfo.FirstName,
			LastName:    app.BorrowerInfo.LastName,
			Email:       app.BorrowerInfo.Email,
			Phone:       app.BorrowerInfo.Phone,
			DateOfBirth: app.BorrowerInfo.DateOfBirth,
		},
		CurrentAddress: app.CurrentAddress,
		Employment:     app.Employment,
		FinancialInfo:  app.FinancialInfo,
		PropertyInfo:   app.PropertyInfo,
		Declarations:   app.Declarations,
		Liabilities:    append([]models.Liability(nil), app.Liabilities...),
		Documents:      append([]models.DocumentMeta(nil), app.Documents...),
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}

	if app.BorrowerInfo.SSN != "" {
		view.BorrowerInfo.SSN = s.maskSSN(app.BorrowerInfo.SSN)
	}

	view.Assets = make([]models.AssetView, 0, len(app.Assets))
	for _, asset := range app.Assets {
		av := models.AssetView{
			Type:        asset.Type,
			Institution: asset.Institution,
			Value:       asset.Value,
		}
		if asset.AccountNumber != "" {
			av.AccountNumber = s.maskAccountNumber(asset.AccountNumber)
		}
		view.Assets = append(view.Assets, av)
	}
	return view
}

// maskSSN masks the plaintext behind a stored SSN value. A token that cannot
// be decrypted is fully masked; its ciphertext digits must not pose as the
// real last four.
func (s *Service) maskSSN(value string) string {
	plain, wasEncrypted := s.codec.Reveal(value)
	if !wasEncrypted && s.codec.IsEncrypted(value) {
		return "XXX-XX-XXXX"
	}
	return fieldcrypt.MaskSSN(plain)
}

func (s *Service) maskAccountNumber(value string) string {
	plain, wasEncrypted := s.codec.Reveal(value)
	if !wasEncrypted && s.codec.IsEncrypted(value) {
		return "********"
	}
	return fieldcrypt.MaskAccountNumber(plain)
}
