package dto

import (
	"github.com/flexprice/quoter/internal/domain/quote"
	"github.com/flexprice/quoter/internal/types"
	"github.com/flexprice/quoter/internal/validator"
)

type GetRecommendationRequest struct {
	Module           types.ModuleType       `form:"module" validate:"required"`
	PlanType         types.PlanType         `form:"plan_type"`
	PaymentFrequency types.PaymentFrequency `form:"payment_frequency" validate:"required"`
	// Recommended is the absolute usage to cover ex 180000 MAUs
	Recommended int64 `form:"recommended" validate:"gte=0"`
}

func (r *GetRecommendationRequest) Validate() error {
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

type RecommendationResponse struct {
	Module      types.ModuleType `json:"module"`
	PlanType    types.PlanType   `json:"plan_type"`
	Recommended int64            `json:"recommended"`
	SampleTier  quote.SampleTier `json:"sample_tier"`
	Values      []int64          `json:"values"`
	// Number is the recommended slider value in samples
	Number int64 `json:"number"`
	// Usage is Number in absolute units
	Usage int64 `json:"usage"`
}
