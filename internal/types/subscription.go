package types

import (
	"strings"

	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/samber/lo"
)

// Edition is a product tier controlling which price records are eligible
type Edition string

const (
	EditionFree       Edition = "FREE"
	EditionTeam       Edition = "TEAM"
	EditionEnterprise Edition = "ENTERPRISE"
)

// PaidEditions are the editions a quote can be built for
var PaidEditions = []Edition{EditionTeam, EditionEnterprise}

func (e Edition) String() string {
	return string(e)
}

func (e Edition) Validate() error {
	allowed := []Edition{EditionFree, EditionTeam, EditionEnterprise}
	if !lo.Contains(allowed, e) {
		return ierr.NewError("invalid edition").
			WithHint("Invalid edition").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": e,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanType identifies the billable dimension a price record charges for
type PlanType string

const (
	PlanTypeDevelopers PlanType = "DEVELOPERS"
	PlanTypeMAU        PlanType = "MAUS"

	// PlanTypeSupportSuffix qualifies a plan type for premium support records
	PlanTypeSupportSuffix = "_SUPPORT"
)

func (p PlanType) String() string {
	return string(p)
}

// WithSupport returns the support qualified plan type when isSupport is set
// ex DEVELOPERS -> DEVELOPERS_SUPPORT
func (p PlanType) WithSupport(isSupport bool) PlanType {
	if !isSupport || p.IsSupport() {
		return p
	}
	return PlanType(string(p) + PlanTypeSupportSuffix)
}

// IsSupport reports whether the plan type is already support qualified
func (p PlanType) IsSupport() bool {
	return strings.HasSuffix(string(p), PlanTypeSupportSuffix)
}

// Base strips the support suffix ex MAUS_SUPPORT -> MAUS
func (p PlanType) Base() PlanType {
	return PlanType(strings.TrimSuffix(string(p), PlanTypeSupportSuffix))
}

func (p PlanType) Validate() error {
	allowed := []PlanType{PlanTypeDevelopers, PlanTypeMAU}
	if !lo.Contains(allowed, p.Base()) {
		return ierr.NewError("invalid plan type").
			WithHint("Invalid plan type").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentFrequency is the billing cadence of a subscription
type PaymentFrequency string

const (
	PaymentFrequencyMonthly PaymentFrequency = "MONTHLY"
	PaymentFrequencyYearly  PaymentFrequency = "YEARLY"

	// MONTHS_PER_YEAR normalises yearly amounts into a per month rate
	MONTHS_PER_YEAR = 12
)

func (f PaymentFrequency) String() string {
	return string(f)
}

func (f PaymentFrequency) Validate() error {
	allowed := []PaymentFrequency{PaymentFrequencyMonthly, PaymentFrequencyYearly}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid payment frequency").
			WithHint("Payment frequency must be MONTHLY or YEARLY").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": f,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ModuleType is the product module a quote is built for
type ModuleType string

const (
	// ModuleCF is feature flags, billed per developer and per MAU
	ModuleCF ModuleType = "cf"
	// ModuleCI is continuous integration, billed per developer
	ModuleCI ModuleType = "ci"
)

// Modules lists every module with a price catalog
var Modules = []ModuleType{ModuleCF, ModuleCI}

func (m ModuleType) String() string {
	return string(m)
}

func (m ModuleType) Validate() error {
	if !lo.Contains(Modules, m) {
		return ierr.NewError("invalid module").
			WithHint("Module must be cf or ci").
			WithReportableDetails(map[string]any{
				"allowed_values": Modules,
				"provided_value": m,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PlanTypes returns the billable dimensions of the module in quote order
func (m ModuleType) PlanTypes() []PlanType {
	switch m {
	case ModuleCF:
		return []PlanType{PlanTypeDevelopers, PlanTypeMAU}
	case ModuleCI:
		return []PlanType{PlanTypeDevelopers}
	default:
		return nil
	}
}
