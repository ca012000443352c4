package api

import (
	"fmt"
	"log/slog"
	"time"

	"aviacao/internal/cache"
	"aviacao/internal/config"
	"aviacao/internal/database"
	"aviacao/internal/handlers"
	"aviacao/internal/logger"
	"aviacao/internal/messaging"
	"aviacao/internal/middleware"
	"aviacao/internal/repository"
	"aviacao/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP API process: storage, optional cache and
// messaging, and the gin router on top.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	valkey   *cache.ValkeyClient
	nats     *messaging.NATSClient
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	loc, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		logger.Fatal("Invalid APP_TZ", "error", err, "tz", cfg.AppTimezone)
	}

	// Cache and messaging are optional: unset addresses leave them off
	// and the API degrades to storage-only behavior.
	var valkeyClient *cache.ValkeyClient
	if cfg.Cache.Addr != "" {
		valkeyClient, err = cache.NewValkeyClient(cfg.Cache)
		if err != nil {
			slog.Warn("Valkey unavailable, continuing without cache", "error", err)
			valkeyClient = nil
		}
	}

	var natsClient *messaging.NATSClient
	if cfg.NATS.URL != "" {
		natsClient, err = messaging.NewNATSClient(cfg.NATS)
		if err != nil {
			slog.Warn("NATS unavailable, continuing without events", "error", err)
			natsClient = nil
		}
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, natsClient, loc)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	middleware.RegisterDBStats(db)

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		valkey:   valkeyClient,
		nats:     natsClient,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.valkey)

	s.router.GET("/ping", h.Ping)
	s.router.GET("/", h.ListAirports)

	voos := s.router.Group("/voos")
	{
		voos.GET("/:partida/", h.ListDepartures)
		voos.GET("/:partida/:chegada/", h.NextAvailableFlights)
	}

	s.router.POST("/compra/:voo_id/", h.PurchaseTickets)
	s.router.POST("/checkin/:bilhete_id/", h.CheckIn)

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/health", s.healthCheck)
}

// healthCheck reports process and database pool health
func (s *Server) healthCheck(c *gin.Context) {
	health := s.db.HealthCheck(c.Request.Context())
	status := 200
	if health.Status != "healthy" {
		status = 503
	}
	c.JSON(status, health)
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes outbound connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
