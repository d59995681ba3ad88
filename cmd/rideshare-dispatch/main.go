// README: One-shot CLI; loads the ledger, optionally requests a trip, and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"rideshare/internal/config"
	"rideshare/internal/infra"
	"rideshare/internal/modules/dispatch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	flag.StringVar(&cfg.Source.DataDir, "data", cfg.Source.DataDir, "directory holding drivers.csv, passengers.csv and trips.csv")
	passengerID := flag.Int64("passenger", 0, "request a trip for this passenger id; 0 only previews the next driver")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

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
	}
	svc := dispatch.NewService(repo, locker)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *passengerID == 0 {
		next, err := svc.DescribeNextDriver(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		_ = enc.Encode(next)
		return
	}

	trip, err := svc.RequestTrip(ctx, *passengerID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	summary, err := svc.DescribeTrip(trip.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = enc.Encode(summary)
}
