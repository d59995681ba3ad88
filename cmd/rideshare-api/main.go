// README: Entry point; loads config and the ledger, wires the dispatch service, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"rideshare/internal/config"
	httptransport "rideshare/internal/http"
	"rideshare/internal/infra"
	"rideshare/internal/modules/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := infra.LoadLedger(ctx, cfg)
	if err != nil {
		log.Fatalf("load ledger: %v", err)
	}

	var locker dispatch.Locker
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal(err)
		}
		defer redisClient.Close()
		locker = dispatch.NewStore(redisClient, cfg.Dispatch.LockTTL)
		log.Printf("[DISPATCH] action=lock_enabled redis=%s ttl=%s", cfg.Redis.Addr, cfg.Dispatch.LockTTL)
	}
	dispatchSvc := dispatch.NewService(repo, locker)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Dispatch:    dispatchSvc,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})
	if err := httptransport.NewServer(cfg.HTTP.Addr, router).Run(ctx); err != nil {
		log.Fatal(err)
	}
}
