package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/werewolfd/internal/server"
)

var CLI struct {
	Config     string `short:"c" long:"config" default:"werewolfd.hcl" help:"Path to HCL configuration file"`
	Addr       string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel   string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	ResultsDir string `long:"results-dir" help:"Directory for game result records (overrides config)"`
	Seed       int64  `long:"seed" help:"Seed for game randomness (0 = time-based)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadServerConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.ResultsDir != "" {
		cfg.Server.ResultsDir = CLI.ResultsDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	// Setup logging
	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	registry, err := cfg.BuildRegistry()
	if err != nil {
		fmt.Printf("Invalid preset configuration: %v\n", err)
		ctx.Exit(1)
	}

	results, err := server.NewResultsWriter(cfg.Server.ResultsDir, logger)
	if err != nil {
		fmt.Printf("Error preparing results directory: %v\n", err)
		ctx.Exit(1)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("Starting Werewolf Server",
		"addr", cfg.GetServerAddress(),
		"presets", len(registry.Names()),
		"resultsDir", cfg.Server.ResultsDir)

	wsServer := server.NewServer(cfg.GetServerAddress(), cfg.Server.AdminToken, registry, results, seed, quartz.NewReal(), logger)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Shutting down server...")
		_ = wsServer.Stop()
		os.Exit(0)
	}()

	// Start server (this blocks)
	if err := wsServer.Start(); err != nil {
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
}
