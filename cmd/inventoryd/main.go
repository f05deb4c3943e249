package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	inventoryx "github.com/tanpawarit/stockpilot/inventory"
	configx "github.com/tanpawarit/stockpilot/pkg/config"
	_ "github.com/tanpawarit/stockpilot/pkg/logger/autoload"
	metricsx "github.com/tanpawarit/stockpilot/pkg/metrics"
	middlewarex "github.com/tanpawarit/stockpilot/pkg/middleware"
)

const serviceName = "inventoryd"

type AppConfig struct {
	Addr    string `envconfig:"INVENTORY_ADDR" default:":8000"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	gin.SetMode(appCfg.GinMode)

	m := metricsx.New(serviceName)
	store := inventoryx.NewStore(inventoryx.DefaultSeed())

	router := gin.New()
	middlewarex.Setup(router, m)
	router.GET("/health", middlewarex.HealthCheck(serviceName))
	router.GET("/metrics", gin.WrapH(m.Handler()))
	inventoryx.NewHandler(store).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         appCfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("inventory server failed")
		}
	}()
	log.Info().Str("addr", appCfg.Addr).Msg("inventory service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down inventory service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("inventory service stopped")
}
