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

	interpreterx "github.com/tanpawarit/stockpilot/agent/interpreter"
	orchestratorx "github.com/tanpawarit/stockpilot/agent/orchestrator"
	gatewayx "github.com/tanpawarit/stockpilot/gateway"
	inventoryx "github.com/tanpawarit/stockpilot/inventory"
	configx "github.com/tanpawarit/stockpilot/pkg/config"
	_ "github.com/tanpawarit/stockpilot/pkg/logger/autoload"
	metricsx "github.com/tanpawarit/stockpilot/pkg/metrics"
	middlewarex "github.com/tanpawarit/stockpilot/pkg/middleware"
	openrouterx "github.com/tanpawarit/stockpilot/pkg/openrouter"
)

const serviceName = "gatewayd"

type AppConfig struct {
	Addr    string `envconfig:"GATEWAY_ADDR" default:":8100"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	gin.SetMode(appCfg.GinMode)

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	llmClient := openrouterx.NewClient(*openRouterCfg)
	if llmClient == nil {
		log.Warn().Msg("OPENROUTER_API_KEY is not set; /process_query will fail with a configuration error")
	}
	interp := interpreterx.New(llmClient, *openRouterCfg)

	inventoryCfg := configx.MustNew[inventoryx.ClientConfig]("INVENTORY")
	storeClient := inventoryx.MustNewClient(*inventoryCfg)

	svc, err := orchestratorx.New(interp, storeClient)
	if err != nil {
		panic(err)
	}

	m := metricsx.New(serviceName)

	router := gin.New()
	middlewarex.Setup(router, m)
	router.GET("/health", middlewarex.HealthCheck(serviceName))
	router.GET("/metrics", gin.WrapH(m.Handler()))
	gatewayx.NewHandler(svc).RegisterRoutes(router)

	srv := &http.Server{
		Addr:         appCfg.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway server failed")
		}
	}()
	log.Info().Str("addr", appCfg.Addr).Msg("gateway service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down gateway service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("gateway service stopped")
}
