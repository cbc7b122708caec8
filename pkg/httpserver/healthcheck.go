package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vaultmarkets/onboarding/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Liveness always answers 200 while the process can serve requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, healthReport{Status: "alive"})
	}
}

// Readiness runs every check concurrently, each bounded by timeout. It
// answers 200 when all pass and 503 otherwise. Failure details are logged,
// not returned.
func Readiness(log *slog.Logger, timeout time.Duration, checks map[string]Check) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		var (
			mu     sync.Mutex
			report = healthReport{Status: "ready", Checks: make(map[string]string, len(checks))}
		)

		var g errgroup.Group
		for name, check := range checks {
			g.Go(func() error {
				status := "ok"
				if err := check(ctx); err != nil {
					status = "failing"
					log.ErrorContext(ctx, "readiness check failed",
						logger.Component("httpserver"),
						logger.Backend(name),
						logger.Error(err),
					)
				}
				mu.Lock()
				report.Checks[name] = status
				if status != "ok" {
					report.Status = "not_ready"
				}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		code := http.StatusOK
		if report.Status != "ready" {
			code = http.StatusServiceUnavailable
		}
		writeHealth(w, code, report)
	}
}

func writeHealth(w http.ResponseWriter, code int, report healthReport) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(report)
}
