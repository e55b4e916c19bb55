package repository

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/database"
	"github.com/lehmann314159/dreamcars/internal/metrics"
	"github.com/lehmann314159/dreamcars/internal/models"
)

const (
	CollectionKey = "dreamCars"
	ThemeKey      = "dreamCarsTheme"
)

// Repository reads and writes the two persisted records. Every operation is
// best-effort: failures are logged and counted. Saves only report success;
// LoadCollection also hands back the error so callers can tell a failed
// read from an absent record.
type Repository struct {
	kv      database.KV
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func New(kv database.KV, logger *zap.Logger, m *metrics.Metrics) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{kv: kv, logger: logger, metrics: m}
}

// Collection

// LoadCollection reports found=false with a nil error when nothing has been
// stored yet. A non-nil error means a record may exist but could not be read.
func (r *Repository) LoadCollection(ctx context.Context) (cars []models.Car, found bool, err error) {
	data, ok, err := r.kv.Get(ctx, CollectionKey)
	if err != nil {
		r.failed(CollectionKey, "load", err)
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	if err := validateCollection([]byte(data)); err != nil {
		r.failed(CollectionKey, "load", err)
		return nil, true, err
	}
	if err := json.Unmarshal([]byte(data), &cars); err != nil {
		r.failed(CollectionKey, "load", err)
		return nil, true, err
	}
	return cars, true, nil
}

func (r *Repository) SaveCollection(ctx context.Context, cars []models.Car) bool {
	if cars == nil {
		cars = []models.Car{}
	}
	data, err := json.Marshal(cars)
	if err != nil {
		r.failed(CollectionKey, "save", err)
		return false
	}
	if err := r.kv.Set(ctx, CollectionKey, string(data)); err != nil {
		r.failed(CollectionKey, "save", err)
		return false
	}
	return true
}

// Theme

func (r *Repository) LoadTheme(ctx context.Context) (models.Theme, bool) {
	v, ok, err := r.kv.Get(ctx, ThemeKey)
	if err != nil {
		r.failed(ThemeKey, "load", err)
		return "", false
	}
	if !ok || v == "" {
		return "", false
	}
	return models.Theme(v), true
}

func (r *Repository) SaveTheme(ctx context.Context, theme models.Theme) bool {
	if err := r.kv.Set(ctx, ThemeKey, string(theme)); err != nil {
		r.failed(ThemeKey, "save", err)
		return false
	}
	return true
}

func (r *Repository) failed(key, op string, err error) {
	r.metrics.PersistenceError(key, op)
	r.logger.Error("storage "+op+" failed", zap.String("key", key), zap.Error(err))
}
