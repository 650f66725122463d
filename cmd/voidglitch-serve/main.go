package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lixenwraith/voidglitch/config"
	"github.com/lixenwraith/voidglitch/serve"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	host := flag.String("host", "", "Listen host (default from config, 0.0.0.0)")
	port := flag.Int("port", 0, "Listen port (default PORT env or 4173)")
	root := flag.String("root", "", "Directory with the wasm build; embedded page when missing")
	allowed := flag.String("allowed-hosts", "", "Comma-separated allowed hosts, \"all\" disables the check")
	flag.Parse()

	// Server logs go to stderr; there is no screen to protect
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "voidglitch-serve: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv(os.Getenv)

	if *host != "" {
		cfg.Serve.Host = *host
	}
	if *port != 0 {
		cfg.Serve.Port = *port
	}
	if *root != "" {
		cfg.Serve.Root = *root
	}
	if *allowed != "" {
		cfg.Serve.AllowedHosts = strings.Split(*allowed, ",")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "voidglitch-serve: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve.Run(ctx, cfg.Serve); err != nil {
		fmt.Fprintf(os.Stderr, "voidglitch-serve: %v\n", err)
		os.Exit(1)
	}
}
