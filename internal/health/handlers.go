package health

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON GET /health — dependency pings plus runtime info, 503 when degraded.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	report := Collect(c.Context(), h.Rdb, gormPinger(h.DB))
	status := fiber.StatusOK
	if report.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(report)
}

type sqlPinger struct{ db *sql.DB }

func (p sqlPinger) Ping() error { return p.db.Ping() }

func gormPinger(db *gorm.DB) DBPinger {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil
	}
	return sqlPinger{db: sqlDB}
}
