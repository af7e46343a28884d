package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/hlee/gemini-imagen-mcp/internal/config"
	"github.com/hlee/gemini-imagen-mcp/internal/imagen"
	"github.com/hlee/gemini-imagen-mcp/internal/server"
	"github.com/hlee/gemini-imagen-mcp/internal/storage"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("gemini-imagen-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("gemini-imagen-mcp - MCP server for Imagen image generation")
			fmt.Println()
			fmt.Println("Usage: gemini-imagen-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  GEMINI_API_KEY      API key for the Gemini API (required)")
			fmt.Println("  IMAGEN_MODEL        Imagen model identifier")
			fmt.Println("  IMAGEN_OUTPUT_DIR   Directory for generated images (default: temp dir)")
			fmt.Println("  LOG_LEVEL           Log level (default: info)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logging goes to stderr; stdout carries the MCP protocol.
	logger := newLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("main: configuration failed")
	}
	logger = newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := imagen.New(ctx, cfg.APIKey, cfg.Model, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("main: failed to configure imagen client")
	}

	store, err := storage.NewImageStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("main: failed to configure storage")
	}

	logger.Info().
		Str("version", Version).
		Str("model", client.Model()).
		Str("output_dir", store.Dir()).
		Msg("main: server starting")

	srv := server.New(client, store, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("main: server error")
	}
	logger.Info().Msg("main: server stopped")
}

// newLogger constructs the process logger writing to stderr.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
