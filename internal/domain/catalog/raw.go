package catalog

// Metadata keys of a raw catalog record
const (
	MetaKeyType             = "type"
	MetaKeyEdition          = "edition"
	MetaKeySampleUnit       = "sampleUnit"
	MetaKeySampleMultiplier = "sampleMultiplier"
	MetaKeyMin              = "min"
	MetaKeyMax              = "max"
)

// RawPrice is a catalog record as delivered by the subscription service,
// before ingestion. All metadata values are strings.
type RawPrice struct {
	PriceID    string            `json:"priceId" yaml:"priceId"`
	Currency   string            `json:"currency" yaml:"currency"`
	UnitAmount int64             `json:"unitAmount" yaml:"unitAmount"`
	LookupKey  string            `json:"lookupKey" yaml:"lookupKey"`
	MetaData   map[string]string `json:"metaData" yaml:"metaData"`
}

// RawCatalog is the wire shape of one module's catalog
type RawCatalog struct {
	Monthly []RawPrice `json:"monthly" yaml:"monthly"`
	Yearly  []RawPrice `json:"yearly" yaml:"yearly"`
}
