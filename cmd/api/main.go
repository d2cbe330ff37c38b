package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanyourpeach/tan-scheduler/internal/cache"
	"github.com/tanyourpeach/tan-scheduler/internal/config"
	dbpkg "github.com/tanyourpeach/tan-scheduler/internal/db"
	"github.com/tanyourpeach/tan-scheduler/internal/logging"
	"github.com/tanyourpeach/tan-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	if err := logging.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logging.Sync()

	db := dbpkg.NewDB(cfg)

	// The catalog cache is optional: without REDIS_ADDR every read hits
	// the database directly.
	var cacheClient *cache.Client
	if cfg.RedisAddr != "" {
		var err error
		cacheClient, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logging.L().Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer cacheClient.Close()
		}
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cacheClient, cfg)

	logging.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.L().Fatal("failed to start server", zap.Error(err))
	}
}
