package internal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/flexprice/quoter/internal/config"
	"github.com/flexprice/quoter/internal/domain/catalog"
	"github.com/flexprice/quoter/internal/domain/quote"
	"github.com/flexprice/quoter/internal/logger"
	"github.com/flexprice/quoter/internal/repository"
	"github.com/flexprice/quoter/internal/types"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type catalogScript struct {
	cfg  *config.Configuration
	log  *logger.Logger
	repo catalog.Repository
}

func newCatalogScript() (*catalogScript, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	repo, err := repository.NewCatalogRepository(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog repository: %w", err)
	}

	return &catalogScript{cfg: cfg, log: log, repo: repo}, nil
}

// ValidateCatalog ingests every module catalog and prints what ingestion
// changed or skipped. It fails when any module cannot be loaded.
func ValidateCatalog() error {
	s, err := newCatalogScript()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var failed []types.ModuleType
	for _, module := range types.Modules {
		raw, err := s.repo.Fetch(ctx, module)
		if err != nil {
			s.log.Errorw("failed to fetch catalog", "module", module, "error", err)
			failed = append(failed, module)
			continue
		}

		cat, warnings, err := catalog.Ingest(module, raw, catalog.IngestOptions{
			Strict:    s.cfg.Catalog.StrictMetadata,
			FetchedAt: time.Now().UTC(),
		})
		if err != nil {
			s.log.Errorw("catalog rejected", "module", module, "error", err)
			failed = append(failed, module)
			continue
		}

		fmt.Printf("%s: %d monthly, %d yearly records\n", module, len(cat.Monthly()), len(cat.Yearly()))
		for _, w := range warnings {
			fmt.Printf("  warning: %s\n", w)
		}

		for _, planType := range module.PlanTypes() {
			if planType != types.PlanTypeMAU {
				continue
			}
			for _, frequency := range []types.PaymentFrequency{types.PaymentFrequencyMonthly, types.PaymentFrequencyYearly} {
				records := cat.Records(frequency)
				tier, err := quote.ResolveSampleTier(records, planType)
				if err != nil {
					fmt.Printf("  %s %s: %v\n", planType, frequency, err)
					continue
				}
				fmt.Printf("  %s %s: 1%s = %d, min %d, values %v\n",
					planType, frequency, tier.Unit, tier.Multiplier, tier.MinValue,
					quote.TierValues(records, planType, tier))
			}
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("invalid catalogs: %v", lo.Uniq(failed))
	}
	return nil
}

// ExportCatalog snapshots the configured source into the YAML catalog file
// layout, so a Stripe or HTTP catalog can be served from disk.
func ExportCatalog() error {
	s, err := newCatalogScript()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	contents := make(map[types.ModuleType]*catalog.RawCatalog, len(types.Modules))
	for _, module := range types.Modules {
		raw, err := s.repo.Fetch(ctx, module)
		if err != nil {
			return fmt.Errorf("failed to fetch catalog of %s: %w", module, err)
		}
		contents[module] = raw
	}

	out, err := yaml.Marshal(contents)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	path := os.Getenv("CATALOG_OUT")
	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.Infow("exported price catalog", "path", path, "source", s.cfg.Catalog.Source)
	return nil
}
