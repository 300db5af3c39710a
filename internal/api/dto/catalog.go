package dto

import (
	"time"

	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/domain/quote"
	"github.com/flexprice/quoter/internal/types"
	"github.com/flexprice/quoter/internal/validator"
	"github.com/shopspring/decimal"
)

type GetProductPricesRequest struct {
	Module           types.ModuleType       `form:"module" validate:"required"`
	Edition          types.Edition          `form:"edition" validate:"required"`
	PaymentFrequency types.PaymentFrequency `form:"payment_frequency" validate:"required"`
}

func (r *GetProductPricesRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Module.Validate(); err != nil {
		return err
	}
	if err := r.Edition.Validate(); err != nil {
		return err
	}
	return r.PaymentFrequency.Validate()
}

// ProductPriceResponse is a catalog record with its per month price precomputed
type ProductPriceResponse struct {
	PriceID          string                 `json:"price_id"`
	PlanType         types.PlanType         `json:"plan_type"`
	Edition          types.Edition          `json:"edition,omitempty"`
	Currency         string                 `json:"currency"`
	LookupKey        string                 `json:"lookup_key,omitempty"`
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency"`

	// UnitAmount in minor currency units as stored in the catalog
	UnitAmount int64 `json:"unit_amount"`
	// UnitPrice in major currency units for the billing period
	UnitPrice decimal.Decimal `json:"unit_price"`
	// MonthlyUnitPrice is UnitPrice normalised to one month
	MonthlyUnitPrice decimal.Decimal `json:"monthly_unit_price"`
	// DisplayMonthlyPrice ex $75.00
	DisplayMonthlyPrice string `json:"display_monthly_price"`

	SampleUnit       string `json:"sample_unit,omitempty"`
	SampleMultiplier int64  `json:"sample_multiplier,omitempty"`
	MinUsage         int64  `json:"min_usage"`
	MaxUsage         *int64 `json:"max_usage,omitempty"`
}

func NewProductPriceResponse(r catalog.PriceRecord) ProductPriceResponse {
	monthly := quote.MonthlyUnitPrice(r.UnitAmount, r.Currency, r.Frequency)
	return ProductPriceResponse{
		PriceID:             r.PriceID,
		PlanType:            r.Metadata.PlanType,
		Edition:             r.Metadata.Edition,
		Currency:            r.Currency,
		LookupKey:           r.LookupKey,
		PaymentFrequency:    r.Frequency,
		UnitAmount:          r.UnitAmount,
		UnitPrice:           r.UnitPrice(),
		MonthlyUnitPrice:    monthly,
		DisplayMonthlyPrice: types.FormatDisplayAmount(monthly, r.Currency),
		SampleUnit:          r.Metadata.SampleUnit,
		SampleMultiplier:    r.Metadata.SampleMultiplier,
		MinUsage:            r.Metadata.MinUsage,
		MaxUsage:            r.Metadata.MaxUsage,
	}
}

type ListProductPricesResponse struct {
	Module           types.ModuleType       `json:"module"`
	Edition          types.Edition          `json:"edition"`
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency"`
	FetchedAt        time.Time              `json:"fetched_at"`
	Items            []ProductPriceResponse `json:"items"`
}

type GetSampleTierRequest struct {
	Module           types.ModuleType       `form:"module" validate:"required"`
	PlanType         types.PlanType         `form:"plan_type"`
	PaymentFrequency types.PaymentFrequency `form:"payment_frequency" validate:"required"`
}

func (r *GetSampleTierRequest) Validate() error {
	if r.PlanType == "" {
		r.PlanType = types.PlanTypeMAU
	}
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Module.Validate(); err != nil {
		return err
	}
	if err := r.PlanType.Validate(); err != nil {
		return err
	}
	return r.PaymentFrequency.Validate()
}

type SampleTierResponse struct {
	Module           types.ModuleType       `json:"module"`
	PlanType         types.PlanType         `json:"plan_type"`
	PaymentFrequency types.PaymentFrequency `json:"payment_frequency"`
	SampleTier       quote.SampleTier       `json:"sample_tier"`
	// Values are the selectable sample counts, one per tier boundary
	Values []int64 `json:"values"`
}

type RefreshCatalogRequest struct {
	// Modules to refresh, every module when empty
	Modules []types.ModuleType `json:"modules"`
}

func (r *RefreshCatalogRequest) Validate() error {
	for _, m := range r.Modules {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type CatalogSummary struct {
	Module    types.ModuleType        `json:"module"`
	Monthly   int                     `json:"monthly"`
	Yearly    int                     `json:"yearly"`
	FetchedAt time.Time               `json:"fetched_at"`
	Warnings  []catalog.IngestWarning `json:"warnings,omitempty"`
}

type RefreshCatalogResponse struct {
	Catalogs []CatalogSummary `json:"catalogs"`
}
