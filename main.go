package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	inject, err := NewInject(context.Background(), logger)
	if err != nil {
		logger.Fatal("Failed wiring dependencies", zap.Error(err))
	}

	corsConfig := cors.New(
		cors.Options{
			AllowedHeaders: []string{"*"},
		})

	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8081"
	}

	logger.Info("Starting server", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, corsConfig.Handler(inject.Router)); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
