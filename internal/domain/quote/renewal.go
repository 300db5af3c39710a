package quote

import (
	"time"

	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
)

// Renewal holds the renewal dates around a reference date. The display
// strings are derived from the structured dates and are for rendering only.
type Renewal struct {
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency"`
	From             time.Time              `json:"from"`
	Next             time.Time              `json:"next"`
	Previous         time.Time              `json:"previous"`
	NextDisplay      string                 `json:"next_display"`
	PreviousDisplay  string                 `json:"previous_display"`
}

// RenewalDates computes the next and previous renewal dates of from
func RenewalDates(frequency types.PaymentFrequency, from time.Time) (*Renewal, error) {
	if err := frequency.Validate(); err != nil {
		return nil, err
	}

	next, err := types.NextRenewalDate(frequency, from)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to compute next renewal date").
			Mark(ierr.ErrValidation)
	}
	previous, err := types.PreviousRenewalDate(frequency, from)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to compute previous renewal date").
			Mark(ierr.ErrValidation)
	}

	return &Renewal{
		PaymentFrequency: frequency,
		From:             from,
		Next:             next,
		Previous:         previous,
		NextDisplay:      types.FormatDisplayDate(next),
		PreviousDisplay:  types.FormatDisplayDate(previous),
	}, nil
}
