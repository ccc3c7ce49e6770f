package controllers

import (
	"net/http"

	"github.com/freshstockhq/freshstock-backend/api/responses"
	"github.com/freshstockhq/freshstock-backend/pkg/config"
	"github.com/freshstockhq/freshstock-backend/pkg/db"
	pkgerrors "github.com/freshstockhq/freshstock-backend/pkg/errors"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
	"github.com/freshstockhq/freshstock-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FreshStock-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks every wired dependency. A nil redis pinger means the
// deployment runs without Redis and is not counted against readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-FreshStock-Env", cfg.App.Env)

		checks := map[string]string{}
		failed := false

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				checks["database"] = "unreachable"
				failed = true
			} else {
				checks["database"] = "ok"
			}
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				checks["redis"] = "unreachable"
				failed = true
			} else {
				checks["redis"] = "ok"
			}
		}

		if failed {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency not ready").WithDetails(checks)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
