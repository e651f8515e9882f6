package health

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

// DBPinger is optional; a nil pinger reports the database as disconnected.
type DBPinger interface {
	Ping() error
}

type Report struct {
	Service      string               `json:"service"`
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapMB        int    `json:"heapMB"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Collect pings the database and Redis and assembles the health report.
// Status is "ok" only when both dependencies answer.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Report {
	report := Report{
		Service:      "espoir-api",
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	report.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	report.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	report.Runtime = RuntimeInfo{
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		HeapMB:        int(m.HeapInuse / 1024 / 1024),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if dbStatus == "connected" && redisStatus == "connected" {
		report.Status = "ok"
	} else {
		report.Status = "issue"
	}
	return report
}
