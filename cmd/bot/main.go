package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"subman-bot-be/internal/bootstrap"
	"subman-bot-be/internal/config"
	"subman-bot-be/internal/gateway"
	"subman-bot-be/internal/server"
	"subman-bot-be/pkg/database"

	"github.com/robfig/cron"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Notifier Service...")
		if err := container.NotifierService.Consume(ctx); err != nil {
			log.Printf("Background Notifier Error: %v", err)
		}
	}()

	c := cron.New()
	if err := c.AddFunc(cfg.Sweep.Schedule, container.ExpirySweepJob.Run); err != nil {
		log.Panicf("Invalid sweep schedule %q: %v", cfg.Sweep.Schedule, err)
	}
	c.Start()
	defer c.Stop()

	// 5. Update intake: long polling by default, webhook server otherwise
	if cfg.Bot.GatewayMode == "webhook" {
		srv := server.New(cfg, container)
		go shutdownOnSignal(cancel, func() {
			if err := srv.Shutdown(); err != nil {
				log.Printf("Server shutdown error: %v", err)
			}
		})
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	}

	poller := gateway.NewPoller(container.Telegram, container.UpdateHandler, container.Logger)
	go shutdownOnSignal(cancel, nil)
	poller.Run(ctx)
}

func shutdownOnSignal(cancel context.CancelFunc, stop func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("Shutdown signal received")
	cancel()
	if stop != nil {
		stop()
	}
}
