package stripe

import (
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/stripe/stripe-go/v82"
)

// NewStripeClient returns a configured Stripe client for secretKey
func NewStripeClient(secretKey string) (*stripe.Client, error) {
	if secretKey == "" {
		return nil, ierr.NewError("stripe secret key is empty").
			WithHint("Stripe connection is not configured").
			Mark(ierr.ErrValidation)
	}
	return stripe.NewClient(secretKey, nil), nil
}
