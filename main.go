package main

import (
	"flag"
	"net/http"
	"time"

	"ventanilla/config"
	"ventanilla/controllers"
	"ventanilla/db"
	"ventanilla/logger"
	"ventanilla/middleware"
	"ventanilla/router"
	"ventanilla/tools"
	"ventanilla/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.json", "ruta del archivo de configuración")
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Get(*configPath)

	db.SetConfigurations(cfg)
	database, err := db.Connect()
	if err != nil {
		log.Fatal("no se pudo conectar a la base de datos", zap.Error(err))
	}
	defer database.Close()

	controllers.SetConfig(cfg)
	router.SetLogger(log)
	tools.SetBaseDir(cfg.UploadsDir)

	r := gin.New()
	r.Use(db.SetDBtoContext(database))

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ventana := time.Duration(cfg.RateWindowSec) * time.Second
		r.Use(middleware.RateLimit(client, cfg.RateLimitMax, ventana))
		log.Info("rate limit habilitado",
			zap.String("redis", cfg.RedisAddr),
			zap.Int("max", cfg.RateLimitMax),
			zap.Duration("ventana", ventana))
	}

	router.Initialize(r)

	workers.StartSemaforoJob(database, log,
		time.Duration(cfg.SemaforoIntervaloMin)*time.Minute, cfg.EmailAdmin)
	workers.StartTokenCleaner(database, log)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("servidor escuchando", zap.String("puerto", cfg.ApiPort))
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("servidor detenido", zap.Error(err))
	}
}
