package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

type endpointStats struct {
	count       int
	totalTime   time.Duration
	lastPrinted time.Time
}

type statsLogger struct {
	stats         map[string]*endpointStats
	mu            sync.Mutex
	flushInterval time.Duration
	done          chan struct{}
	stopOnce      sync.Once
}

func newStatsLogger(flushInterval time.Duration) *statsLogger {
	sl := &statsLogger{
		stats:         make(map[string]*endpointStats),
		flushInterval: flushInterval,
		done:          make(chan struct{}),
	}
	go sl.periodicFlush()
	return sl
}

func (sl *statsLogger) periodicFlush() {
	ticker := time.NewTicker(sl.flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sl.flushStats()
		case <-sl.done:
			return
		}
	}
}

func (sl *statsLogger) stop() {
	sl.stopOnce.Do(func() { close(sl.done) })
}

func (sl *statsLogger) flushStats() {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	now := time.Now()
	for endpoint, stats := range sl.stats {
		if stats.count > 0 && now.Sub(stats.lastPrinted) >= sl.flushInterval {
			avgTimeMs := float64(stats.totalTime.Microseconds()) / float64(stats.count) / 1000.0

			slog.Info("endpoint stats",
				"endpoint", endpoint,
				"count", stats.count,
				"avg_time_ms", fmt.Sprintf("%.2f", avgTimeMs),
				"period", sl.flushInterval,
			)
			stats.count = 0
			stats.totalTime = 0
			stats.lastPrinted = now
		}
	}
}

// middleware groups requests by route pattern.
func (sl *statsLogger) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		duration := time.Since(start)
		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		endpoint := fmt.Sprintf("%s %s", r.Method, pattern)

		sl.mu.Lock()
		if _, exists := sl.stats[endpoint]; !exists {
			sl.stats[endpoint] = &endpointStats{}
		}
		sl.stats[endpoint].count++
		sl.stats[endpoint].totalTime += duration
		sl.mu.Unlock()
	})
}

func (sl *statsLogger) count(endpoint string) int {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if s, ok := sl.stats[endpoint]; ok {
		return s.count
	}
	return 0
}
