package health

import (
	"context"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthPostgres "github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/kharidoapp/checkout-engine/internal/config"
	"github.com/kharidoapp/checkout-engine/internal/store"
)

// NewHealthHandler wires a probe for the active record-store backend plus a
// generic slot round-trip check, so /health reflects whether the engine can
// actually persist.
func NewHealthHandler(cfg *config.Config, st store.Store) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "record-store",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				var probe any
				_, err := st.Read(ctx, "health_probe", &probe)

				return err
			},
		},
	}

	switch cfg.Store.Backend {
	case "postgres":
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: healthPostgres.New(healthPostgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	case "redis":
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "checkout-engine",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, err
	}

	return h, nil
}
