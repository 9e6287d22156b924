package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/gastrocost_backend/config"
	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
	"bitbucket.org/mmdatafocus/gastrocost_backend/utils"
	"bitbucket.org/mmdatafocus/gastrocost_backend/workflow"
)

// app holds the single working snapshot. Every mutation clones, recomputes
// and swaps the whole generation under the mutex, so no two recomputes ever
// interleave on shared state.
type app struct {
	mu          sync.Mutex
	data        models.AppData
	day         models.DayState
	diagnostics []models.Diagnostic

	snapshotPath string
	logger       *logrus.Logger
}

// replace installs a new dataset generation: recompute, swap, persist.
func (a *app) replace(data models.AppData) {
	next, diags := workflow.Recalc(data)
	a.data = next
	a.diagnostics = diags
	a.persist()
}

// persist writes the snapshot best-effort; a failed write is logged, the
// in-memory state stays authoritative.
func (a *app) persist() {
	snap := models.Snapshot{Data: a.data, Day: a.day}
	if err := models.SaveSnapshot(a.snapshotPath, snap); err != nil {
		config.LogError(a.logger, "server.go", "persist", "SaveSnapshot", a.snapshotPath, err)
	}
}

// newRouter wires the middleware chain and routes. Kept separate from main
// so handler tests exercise the same chain the server runs.
func newRouter(a *app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(correlationId())
	r.Use(requestLogger(a.logger))

	corsConfig := cors.DefaultConfig()
	if origins := config.CORSOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", "x-correlation-id")
	r.Use(cors.New(corsConfig))

	registerRoutes(r, a)
	return r
}

// correlationId tags every request, reusing the caller's id when one arrives
// on the x-correlation-id header and echoing it back either way.
func correlationId() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Header("x-correlation-id", cid)
		c.Next()
	}
}

// requestLogger writes one access-log line per request, carrying the
// correlation id so log lines can be tied to the response a caller saw.
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		logger.WithFields(logrus.Fields{
			"status":         c.Writer.Status(),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"latency":        latency.String(),
			"correlation_id": cid,
		}).Info("request")
	}
}

func main() {
	config.LoadEnv()
	logger := config.GetLogger()

	snapshotPath := config.SnapshotPath()
	if err := os.MkdirAll(filepath.Dir(snapshotPath), 0o755); err != nil {
		config.LogError(logger, "server.go", "main", "MkdirAll", snapshotPath, err)
	}

	a := &app{
		day:          models.NewDayState(),
		snapshotPath: snapshotPath,
		logger:       logger,
	}

	// Stored derived values are never trusted; restoring always recomputes.
	if snap, ok, err := models.LoadSnapshot(snapshotPath); err != nil {
		config.LogError(logger, "server.go", "main", "LoadSnapshot", snapshotPath, err)
	} else if ok {
		a.day = snap.Day
		a.data, a.diagnostics = workflow.Recalc(snap.Data)
		logger.WithFields(logrus.Fields{
			"snapshot": snapshotPath,
			"savedAt":  snap.SavedAt,
		}).Info("snapshot restored")
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r := newRouter(a)

	port := config.ServerPort()
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()
	logger.WithFields(logrus.Fields{"port": port}).Info("server started")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.LogError(logger, "server.go", "main", "ListenAndServe", nil, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "server.go", "main", "Shutdown", nil, err)
	}

	a.mu.Lock()
	a.persist()
	a.mu.Unlock()
}
