package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	"github.com/sangkips/counter-billing/internal/domain/repository"
	"github.com/sangkips/counter-billing/pkg/apperror"
)

// LoadCatalog fills store from src. A source that cannot be read, for any
// reason, or that has no data rows leaves an empty catalog and is logged as a
// warning; the returned error lets the caller decide whether to carry on.
func LoadCatalog(ctx context.Context, store repository.CatalogStore, src repository.CatalogSource, logger *zap.Logger) (entity.CatalogLoadReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	records, err := src.Records(ctx)
	if err != nil {
		logger.Warn("Catalog source unavailable, starting with an empty catalog",
			zap.String("source", src.Describe()),
			zap.String("kind", string(apperror.KindOf(err))),
			zap.Error(err),
		)
		store.Load(nil)
		return entity.CatalogLoadReport{}, err
	}

	report := store.Load(records)
	if len(records) == 0 {
		logger.Warn("Catalog source has no data rows", zap.String("source", src.Describe()))
	}

	logger.Info("Catalog loaded",
		zap.String("source", src.Describe()),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}
