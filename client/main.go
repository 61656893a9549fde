package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/phillip-england/dayflow/internal/config"
	"github.com/phillip-england/dayflow/internal/dayflowcli"
	"github.com/phillip-england/dayflow/internal/envutil"
)

func main() {
	if err := envutil.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := dayflowcli.Serve(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
