package dto

import (
	"time"

	"github.com/flexprice/quoter/internal/domain/quote"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/types"
	"github.com/flexprice/quoter/internal/validator"
	"github.com/samber/lo"
)

type CreateQuoteRequest struct {
	Module           types.ModuleType       `json:"module" validate:"required"`
	Edition          types.Edition          `json:"edition" validate:"required"`
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency" validate:"required"`
	Developers       int64                  `json:"developers" validate:"gte=0"`
	// MAU is expressed in samples ex 250 for 250K MAUs
	MAU            int64 `json:"mau" validate:"gte=0"`
	PremiumSupport bool  `json:"premium_support"`
}

func (r *CreateQuoteRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToQuoteParams().Validate()
}

func (r *CreateQuoteRequest) ToQuoteParams() quote.QuoteParams {
	return quote.QuoteParams{
		Module:           r.Module,
		Edition:          r.Edition,
		PaymentFrequency: r.PaymentFrequency,
		Quantities: quote.Quantities{
			Developers: r.Developers,
			MAU:        r.MAU,
		},
		PremiumSupport: r.PremiumSupport,
	}
}

type QuoteLineItemResponse struct {
	quote.QuoteLineItem
	DisplayUnitPrice string `json:"display_unit_price"`
	DisplayTotal     string `json:"display_total"`
}

type QuoteResponse struct {
	*quote.SubscriptionQuote

	ID string `json:"id"`
	// Reference is a short code the customer can quote back
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`

	// LineItems shadows the embedded line items with display strings added
	LineItems           []QuoteLineItemResponse `json:"line_items"`
	DisplayMonthlyTotal string                  `json:"display_monthly_total"`
	DisplayDueToday     string                  `json:"display_due_today"`
	NextRenewal         string                  `json:"next_renewal"`
	Warnings            []string                `json:"warnings,omitempty"`
}

// NewQuoteResponse stamps q with a fresh id and renders its display fields
func NewQuoteResponse(q *quote.SubscriptionQuote, now time.Time) *QuoteResponse {
	resp := &QuoteResponse{
		SubscriptionQuote:   q,
		ID:                  types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		Reference:           types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_QUOTE),
		CreatedAt:           now,
		DisplayMonthlyTotal: types.FormatDisplayAmount(q.MonthlyTotal, q.Currency),
		DisplayDueToday:     types.FormatDisplayAmount(q.DueToday, q.Currency),
		Warnings:            q.Warnings(),
	}
	resp.LineItems = lo.Map(q.LineItems, func(item quote.QuoteLineItem, _ int) QuoteLineItemResponse {
		return QuoteLineItemResponse{
			QuoteLineItem:    item,
			DisplayUnitPrice: types.FormatDisplayAmount(item.UnitPrice, q.Currency),
			DisplayTotal:     types.FormatDisplayAmount(item.Total, q.Currency),
		}
	})
	if next, err := types.NextRenewalDate(q.PaymentFrequency, now); err == nil {
		resp.NextRenewal = types.FormatDisplayDate(next)
	}
	return resp
}

type CompareEditionsRequest struct {
	Module           types.ModuleType       `json:"module" validate:"required"`
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency" validate:"required"`
	Developers       int64                  `json:"developers" validate:"gte=0"`
	MAU              int64                  `json:"mau" validate:"gte=0"`
	PremiumSupport   bool                   `json:"premium_support"`
	// Editions to compare, every paid edition when empty
	Editions []types.Edition `json:"editions"`
}

func (r *CompareEditionsRequest) Validate() error {
	if len(r.Editions) == 0 {
		r.Editions = types.PaidEditions
	}
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if len(lo.Uniq(r.Editions)) != len(r.Editions) {
		return ierr.NewError("duplicate editions").
			WithHint("Each edition can only be compared once").
			WithReportableDetails(map[string]any{
				"editions": r.Editions,
			}).
			Mark(ierr.ErrValidation)
	}
	for _, edition := range r.Editions {
		if err := r.ForEdition(edition).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ForEdition returns the quote request of one compared edition
func (r *CompareEditionsRequest) ForEdition(edition types.Edition) *CreateQuoteRequest {
	return &CreateQuoteRequest{
		Module:           r.Module,
		Edition:          edition,
		PaymentFrequency: r.PaymentFrequency,
		Developers:       r.Developers,
		MAU:              r.MAU,
		PremiumSupport:   r.PremiumSupport,
	}
}

type CompareEditionsResponse struct {
	// Quotes are in the order of the requested editions
	Quotes []*QuoteResponse `json:"quotes"`
}

type CreateSubscriptionRequest struct {
	CreateQuoteRequest
	Customer string `json:"customer" validate:"required"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.CreateQuoteRequest.Validate()
}

// SubscriptionPayload is the body of the subscription service create call
type SubscriptionPayload struct {
	Customer         string                   `json:"customer"`
	Module           types.ModuleType         `json:"module"`
	Edition          types.Edition            `json:"edition"`
	PaymentFrequency types.PaymentFrequency   `json:"paymentFrequency"`
	PremiumSupport   bool                     `json:"premiumSupport"`
	Items            []quote.SubscriptionItem `json:"items"`
}
