package repository

import (
	"context"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/model"
)

// PerformanceRepository reads per-student performance bundles.
type PerformanceRepository struct {
	api   *client.Client
	cache *Cache
}

// NewPerformanceRepository creates a new PerformanceRepository. cache may be nil.
func NewPerformanceRepository(api *client.Client, cache *Cache) *PerformanceRepository {
	return &PerformanceRepository{api: api, cache: cache}
}

// GetByStudentID returns the full bundle for one student.
func (r *PerformanceRepository) GetByStudentID(ctx context.Context, studentID int) (*model.PerformanceBundle, error) {
	key := config.CacheKey.StudentPerformanceKey(studentID)

	var bundle model.PerformanceBundle
	if r.cache.get(ctx, key, &bundle) {
		return &bundle, nil
	}

	b, err := r.api.GetPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, key, b)
	return b, nil
}
