package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/perfdash/internal/config"
	"github.com/stemsi/perfdash/internal/response"
)

const healthCacheTimeout = 2 * time.Second

// SystemHandler reports process health.
type SystemHandler struct {
	rdb       *redis.Client
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a new SystemHandler. rdb is nil when the cache is
// disabled.
func NewSystemHandler(rdb *redis.Client, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:       rdb,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type cacheHealth struct {
	Enabled      bool   `json:"enabled"`
	Reachable    bool   `json:"reachable"`
	RosterCached bool   `json:"roster_cached"`
	Error        string `json:"error,omitempty"`
}

type healthStatus struct {
	Status     string      `json:"status"`
	Uptime     string      `json:"uptime"`
	GoVersion  string      `json:"go_version"`
	Goroutines int         `json:"goroutines"`
	HeapAlloc  uint64      `json:"heap_alloc"`
	Cache      cacheHealth `json:"cache"`
}

// Health godoc
// GET /health
// Liveness probe. A broken cache degrades the status but never fails the
// probe, since every view still works against the performance API.
func (h *SystemHandler) Health(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	status := healthStatus{
		Status:     "ok",
		Uptime:     formatDuration(time.Since(h.startTime)),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		Cache:      h.cacheHealth(c.Request.Context()),
	}
	if status.Cache.Enabled && !status.Cache.Reachable {
		status.Status = "degraded"
	}

	response.Success(c, http.StatusOK, status)
}

func (h *SystemHandler) cacheHealth(ctx context.Context) cacheHealth {
	if h.rdb == nil {
		return cacheHealth{}
	}

	ctx, cancel := context.WithTimeout(ctx, healthCacheTimeout)
	defer cancel()

	pipe := h.rdb.Pipeline()
	pingCmd := pipe.Ping(ctx)
	existsCmd := pipe.Exists(ctx, config.CacheKey.StudentRosterKey())
	if _, err := pipe.Exec(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Cache health check failed")
		return cacheHealth{Enabled: true, Error: err.Error()}
	}

	n, _ := existsCmd.Result()
	return cacheHealth{
		Enabled:      true,
		Reachable:    pingCmd.Err() == nil,
		RosterCached: n > 0,
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
