package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"

	"github.com/KantapongChamnankit/Booking/cmd/buildCFG"
	"github.com/KantapongChamnankit/Booking/internal/api/api"
	rabbitReader "github.com/KantapongChamnankit/Booking/internal/consumerWorker"
	"github.com/KantapongChamnankit/Booking/internal/notifier"
	"github.com/KantapongChamnankit/Booking/internal/rabbit"
	"github.com/KantapongChamnankit/Booking/internal/repo"
	"github.com/KantapongChamnankit/Booking/internal/service"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using system environment variables")
	}

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)

	supaCfg, err := buildCFG.BuildSupabaseConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build Supabase config")
	}
	client, err := repo.NewSupabaseClient(supaCfg.URL, supaCfg.Key)
	if err != nil {
		log.Fatal().Msgf("failed to create Supabase client: %v", err)
	}
	repository, err := repo.NewRepository(client, supaCfg.Table, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repository: %v", err)
	}
	log.Info().Msg("Supabase client initialized")

	var sms notifier.Client
	smsCfg := buildCFG.BuildSMSConfig(cfg, &log)
	if smsCfg.Enabled {
		sms = notifier.NewTHSMSClient(smsCfg.Token, smsCfg.Sender, smsCfg.BaseURL, &log)
	}

	rabbitCfg, err := buildCFG.BuildRabbitConfig(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load RabbitMQ config")
	}
	var rmq *rabbit.Client
	if rabbitCfg.Enabled {
		rmq, err = rabbit.NewRabbit(rabbitCfg.Url, rabbitCfg.Exchange, rabbitCfg.Queue)
		if err != nil {
			log.Fatal().Msgf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()
	}

	serviceInstance := service.NewService(repository, &log, rmq, sms, buildCFG.BuildBookingConfig(cfg, &log))

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	var reader *rabbitReader.Reader
	if rmq != nil {
		reader = rabbitReader.NewReader(rmq, serviceInstance)
		reader.Start(workerCtx)
	}

	app := api.NewRouters(&api.Routers{
		Service:        serviceInstance,
		AllowedOrigins: serverCfg.AllowedOrigins,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", serverCfg.Port)
		if err := app.Run(":" + serverCfg.Port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("Received signal %s. Initiating shutdown...", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("Server error: %v", err)
	}

	cancelWorkers()
	if reader != nil {
		reader.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("Error shutting down server: %v", err)
		}
	}

	log.Info().Msg("Shutdown complete")
}
