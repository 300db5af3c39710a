package catalog

import (
	"slices"
	"time"

	"github.com/flexprice/quoter/internal/types"
	"github.com/shopspring/decimal"
)

// Metadata is the validated form of the loosely typed metadata a catalog
// record carries. It is produced by Ingest and never mutated afterwards.
type Metadata struct {
	// PlanType is the billable dimension ex DEVELOPERS, MAUS, MAUS_SUPPORT
	PlanType types.PlanType `json:"type"`

	// Edition is the product tier the record belongs to. Empty means the
	// record applies to every edition.
	Edition types.Edition `json:"edition,omitempty"`

	// SampleUnit is the display unit of a sample ex K for thousands of MAUs
	SampleUnit string `json:"sample_unit,omitempty"`

	// SampleMultiplier converts a sample count into absolute usage
	SampleMultiplier int64 `json:"sample_multiplier,omitempty"`

	// MinUsage is the inclusive lower bound of the usage range
	MinUsage int64 `json:"min_usage"`

	// MaxUsage is the inclusive upper bound of the usage range, nil when unbounded
	MaxUsage *int64 `json:"max_usage,omitempty"`
}

// PriceRecord is a single price of the catalog
type PriceRecord struct {
	PriceID string `json:"price_id"`

	// Currency 3 digit ISO currency code in lowercase ex usd
	Currency string `json:"currency"`

	// UnitAmount in minor currency units ex 9000 for $90.00
	UnitAmount int64 `json:"unit_amount"`

	LookupKey string `json:"lookup_key,omitempty"`

	// Frequency is the catalog list the record was ingested from
	Frequency types.PaymentFrequency `json:"payment_frequency"`

	Metadata Metadata `json:"metadata"`
}

// UnitPrice returns the unit amount in major currency units
func (r PriceRecord) UnitPrice() decimal.Decimal {
	return types.MinorToMajor(r.UnitAmount, r.Currency)
}

// ContainsUsage reports whether usage falls inside [MinUsage, MaxUsage]
func (r PriceRecord) ContainsUsage(usage int64) bool {
	if usage < r.Metadata.MinUsage {
		return false
	}
	return r.Metadata.MaxUsage == nil || usage <= *r.Metadata.MaxUsage
}

// AppliesToEdition reports whether the record is eligible for edition
func (r PriceRecord) AppliesToEdition(edition types.Edition) bool {
	return r.Metadata.Edition == "" || r.Metadata.Edition == edition
}

// Catalog is a read-only snapshot of the monthly and yearly price lists of
// one module. Record order is the order of the source and is significant.
type Catalog struct {
	module    types.ModuleType
	monthly   []PriceRecord
	yearly    []PriceRecord
	fetchedAt time.Time
}

// New builds a catalog snapshot. The slices are copied.
func New(module types.ModuleType, monthly, yearly []PriceRecord, fetchedAt time.Time) *Catalog {
	return &Catalog{
		module:    module,
		monthly:   slices.Clone(monthly),
		yearly:    slices.Clone(yearly),
		fetchedAt: fetchedAt,
	}
}

func (c *Catalog) Module() types.ModuleType {
	return c.module
}

func (c *Catalog) FetchedAt() time.Time {
	return c.fetchedAt
}

// Records returns a copy of the price list for frequency
func (c *Catalog) Records(frequency types.PaymentFrequency) []PriceRecord {
	switch frequency {
	case types.PaymentFrequencyMonthly:
		return slices.Clone(c.monthly)
	case types.PaymentFrequencyYearly:
		return slices.Clone(c.yearly)
	default:
		return nil
	}
}

func (c *Catalog) Monthly() []PriceRecord {
	return c.Records(types.PaymentFrequencyMonthly)
}

func (c *Catalog) Yearly() []PriceRecord {
	return c.Records(types.PaymentFrequencyYearly)
}

// Len returns the number of records across both frequencies
func (c *Catalog) Len() int {
	return len(c.monthly) + len(c.yearly)
}
