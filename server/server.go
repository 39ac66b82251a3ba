// Package server assembles the coordination core and its HTTP surface.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/RyanAdrianRavikumar/disaster-routing-system/config"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/graph"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/handlers"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/rescue"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/routing"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/sensor"
	"github.com/RyanAdrianRavikumar/disaster-routing-system/shelter"
)

// Core bundles the long-lived component instances.
type Core struct {
	Graph    *graph.Store
	Shelters *shelter.Registry
	Queue    *rescue.Queue
	Ingest   *sensor.Service
	Reports  *sensor.Store
}

// NewCore builds every component from configuration. The sensor report
// store is opened here; callers own the returned Core and should Close it.
func NewCore(cfg *config.Config) (*Core, error) {
	g := graph.NewStore()

	reports, err := sensor.OpenStore(cfg.Storage.SensorDB)
	if err != nil {
		return nil, err
	}
	ingest, err := sensor.NewService(g, reports)
	if err != nil {
		reports.Close()
		return nil, err
	}

	return &Core{
		Graph:    g,
		Shelters: shelter.NewRegistry(),
		Queue:    rescue.NewQueue(cfg.Rescue.QueueCapacity),
		Ingest:   ingest,
		Reports:  reports,
	}, nil
}

// Close releases durable resources.
func (c *Core) Close() error {
	return c.Reports.Close()
}

// NewRouter builds the gin engine with CORS for the browser dashboards and
// every handler registered.
func NewRouter(cfg *config.Config, core *Core) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	resolver := routing.NewResolver(core.Graph)
	resolver.CandidateLimit = cfg.Resolver.CandidateLimit

	handlers.NewGraphHandler(core.Graph).RegisterRoutes(r)
	handlers.NewRoutingHandler(core.Graph, core.Shelters, resolver).RegisterRoutes(r)
	handlers.NewShelterHandler(core.Shelters).RegisterRoutes(r)
	handlers.NewSensorHandler(core.Ingest).RegisterRoutes(r)
	handlers.NewRescueHandler(core.Queue).RegisterRoutes(r)
	handlers.NewAdminHandler(core.Graph, core.Shelters, core.Queue).RegisterRoutes(r)

	return r
}

// Run serves the router until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, router *gin.Engine) error {
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
