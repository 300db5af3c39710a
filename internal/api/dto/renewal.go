package dto

import (
	"time"

	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/flexprice/quoter/internal/validator"
)

type GetRenewalRequest struct {
	PaymentFrequency types.PaymentFrequency `form:"payment_frequency" validate:"required"`
	// From is a date (2006-01-02) or RFC3339 time, today when empty
	From string `form:"from"`
}

func (r *GetRenewalRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.PaymentFrequency.Validate()
}

// FromTime parses From, falling back to now
func (r *GetRenewalRequest) FromTime(now time.Time) (time.Time, error) {
	if r.From == "" {
		return now, nil
	}
	t, err := types.ParseDateOrTime(r.From)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHint("from must be a date like 2024-01-31 or an RFC3339 time").
			WithReportableDetails(map[string]any{
				"from": r.From,
			}).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}
