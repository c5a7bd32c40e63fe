package di

import (
	"context"
	"fmt"

	"bikeshare-dashboard/api"
	"bikeshare-dashboard/api/dataset"
	"bikeshare-dashboard/config"
	"bikeshare-dashboard/dao/redis"
	"bikeshare-dashboard/db"
	"bikeshare-dashboard/logger"
	"bikeshare-dashboard/server"
	"bikeshare-dashboard/server/handlers"
	services "bikeshare-dashboard/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	Config                  *config.Config
	Logger                  logger.Logger
	RedisClient             db.RedisClient
	RedisDashboardDao       *redis.RedisDashboardDAO
	DatasetAPI              dataset.DatasetAPI
	DashboardService        *services.DashboardService
	DatasetRefresherService *services.DatasetRefresherService
	DashboardHandler        *handlers.DashboardHandler
	Middleware              *server.Middleware
	MuxRouter               *mux.Router
	Router                  *server.Router
	DashboardHttpServer     *server.DashboardHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(cfg *config.Config, log logger.Logger) (*Container, error) {
	log.Infof("initializing container - env: %s", cfg.App.Env)

	// Redis is only needed for the dashboard cache
	var redisClient db.RedisClient
	var dashboardDao *redis.RedisDashboardDAO
	if cfg.Cache.Enabled {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		client, err := db.NewGoRedisClient(context.Background(), redisInternalClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Address, err)
		}
		redisClient = client
		dashboardDao = redis.NewRedisDashboardDAO(redisClient)
		log.Infof("Dashboard cache enabled (ttl %s)", cfg.Cache.TTL)
	} else {
		log.Infof("Dashboard cache disabled")
	}

	// Initialize dataset source
	var datasetAPI dataset.DatasetAPI
	if cfg.Dataset.Source == config.DATASET_SOURCE_HTTP {
		httpClient := api.NewHTTPClient(cfg.Dataset.URL, cfg.Dataset.DownloadTimeout)
		datasetAPI = dataset.NewDatasetApiClient(httpClient)
	} else {
		datasetAPI = dataset.NewDatasetFileClient(cfg.Dataset.Path)
	}
	log.Infof("Using dataset at %s", datasetAPI.Location())

	dashboardService := services.NewDashboardService(dashboardDao, cfg.Cache.TTL, log)
	datasetRefresherService := services.NewDatasetRefresherService(datasetAPI, dashboardService, dashboardDao, log)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	middleware := server.NewMiddleware(cfg.API.RateLimit, cfg.API.RateLimitWindow, log)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(dashboardHandler, muxRouter,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Logging,
		middleware.RateLimit,
	)

	dashboardHttpServer := server.NewDashboardHttpServer(router, muxRouter, cfg.App.Port, cfg.App.ShutdownTimeout, log)
	dashboardHttpServer.OnShutdown(datasetRefresherService.Stop)
	if redisClient != nil {
		dashboardHttpServer.OnShutdown(func() {
			if err := redisClient.Close(); err != nil {
				log.Warnf("Failed to close Redis client: %v", err)
			}
		})
	}

	return &Container{
		Config:                  cfg,
		Logger:                  log,
		RedisClient:             redisClient,
		RedisDashboardDao:       dashboardDao,
		DatasetAPI:              datasetAPI,
		DashboardService:        dashboardService,
		DatasetRefresherService: datasetRefresherService,
		DashboardHandler:        dashboardHandler,
		Middleware:              middleware,
		MuxRouter:               muxRouter,
		Router:                  router,
		DashboardHttpServer:     dashboardHttpServer,
	}, nil
}
