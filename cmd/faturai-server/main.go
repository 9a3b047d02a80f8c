package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"google.golang.org/genai"

	"github.com/enersight/faturai"
	"github.com/enersight/faturai/internal/httpapi"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := faturai.LoadConfig()
	if err != nil {
		logger.Error("configuração inválida", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Error("falha ao criar cliente genai", "error", err)
		os.Exit(1)
	}

	analyzer, err := faturai.New(client,
		faturai.WithLogger(logger),
		faturai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		logger.Error("falha ao criar analisador", "error", err)
		os.Exit(1)
	}

	handler := httpapi.NewHandler(analyzer, logger)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"*"},
	})

	logger.Info("servidor iniciado", "addr", cfg.Addr, "model", cfg.Model)
	if err := http.ListenAndServe(cfg.Addr, c.Handler(handler.Routes())); err != nil {
		logger.Error("servidor encerrado", "error", err)
		os.Exit(1)
	}
}
