package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentRosterKey returns the cache key for the full student roster
func (r *CacheKeyStruct) StudentRosterKey() string {
	return "perfdash:students"
}

// StudentPerformanceKey returns the cache key for a student's performance bundle
func (r *CacheKeyStruct) StudentPerformanceKey(studentID int) string {
	return fmt.Sprintf("perfdash:student:%d:performance", studentID)
}

// StudentPerformancePattern matches every cached performance bundle
func (r *CacheKeyStruct) StudentPerformancePattern() string {
	return "perfdash:student:*:performance"
}

var CacheKey = NewCacheKeyStruct()
