package catalog

import (
	"context"

	"github.com/flexprice/quoter/internal/types"
)

// Repository fetches the raw price catalog of a module from its source
type Repository interface {
	Fetch(ctx context.Context, module types.ModuleType) (*RawCatalog, error)
}
