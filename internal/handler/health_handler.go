package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-activities-api/internal/config"
	"github.com/noah-isme/gema-activities-api/internal/utils"
)

const healthProbeTimeout = 2 * time.Second

// HealthProbe checks that the storage backend can be read.
type HealthProbe func(ctx context.Context) error

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Storage     string    `json:"storage"`
}

// HealthCheck reports service metadata and answers 503 when the probe fails.
// A nil probe always reports healthy.
func HealthCheck(cfg config.Config, probe HealthProbe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Storage:     cfg.StorageDriver,
		}

		if probe != nil {
			ctx, cancel := context.WithTimeout(requestContext(c), healthProbeTimeout)
			defer cancel()
			if err := probe(ctx); err != nil {
				payload.Status = "degraded"
				return utils.Fail(c, fiber.StatusServiceUnavailable, "storage unavailable", payload)
			}
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
