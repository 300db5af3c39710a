package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/flexprice/quoter/internal/domain/catalog"
	ierr "github.com/flexprice/quoter/internal/errors"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/types"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on disk layout: one raw catalog per module
type catalogFile map[types.ModuleType]*catalog.RawCatalog

type catalogRepository struct {
	path string
	log  *logger.Logger
}

// NewCatalogRepository reads catalogs from a YAML or JSON file. The file is
// re-read on every Fetch so edits are picked up by the next refresh.
func NewCatalogRepository(path string, log *logger.Logger) catalog.Repository {
	return &catalogRepository{
		path: path,
		log:  log,
	}
}

func (r *catalogRepository) Fetch(ctx context.Context, module types.ModuleType) (*catalog.RawCatalog, error) {
	r.log.WithContext(ctx).Debugw("reading price catalog file",
		"path", r.path,
		"module", module,
	)

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Price catalog file could not be read").
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrCatalogUnavailable)
	}

	contents, err := decode(r.path, data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Price catalog file is not valid").
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrCatalogUnavailable)
	}

	raw, ok := contents[module]
	if !ok || raw == nil {
		return nil, ierr.NewErrorf("module %s not found in %s", module, r.path).
			WithHintf("No price catalog for module %s", module).
			WithReportableDetails(map[string]any{
				"module": module,
			}).
			Mark(ierr.ErrNotFound)
	}
	return raw, nil
}

func decode(path string, data []byte) (catalogFile, error) {
	var contents catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &contents); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &contents); err != nil {
			return nil, err
		}
	}
	return contents, nil
}
