package repository

import (
	"context"

	"github.com/stemsi/perfdash/internal/client"
	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/model"
)

// StudentRepository reads the student roster from the performance API.
type StudentRepository struct {
	api   *client.Client
	cache *Cache
}

// NewStudentRepository creates a new StudentRepository. cache may be nil.
func NewStudentRepository(api *client.Client, cache *Cache) *StudentRepository {
	return &StudentRepository{api: api, cache: cache}
}

// List returns every student, from cache when possible.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	if r.cache.get(ctx, config.CacheKey.StudentRosterKey(), &students) {
		return students, nil
	}
	return r.Refresh(ctx)
}

// Refresh fetches the roster from upstream and rewrites the cache entry.
func (r *StudentRepository) Refresh(ctx context.Context) ([]model.Student, error) {
	students, err := r.api.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, config.CacheKey.StudentRosterKey(), students)
	return students, nil
}

// Invalidate drops the cached roster and every cached performance bundle.
func (r *StudentRepository) Invalidate(ctx context.Context) error {
	return r.cache.deletePattern(ctx,
		config.CacheKey.StudentPerformancePattern(),
		config.CacheKey.StudentRosterKey(),
	)
}
