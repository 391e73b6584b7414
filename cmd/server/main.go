package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sleepstars/fakeopenai/internal/completion"
	"github.com/sleepstars/fakeopenai/internal/config"
	"github.com/sleepstars/fakeopenai/internal/logger"
	"github.com/sleepstars/fakeopenai/internal/server"
)

func main() {
	defaults := config.Default()

	configPath := flag.String("config", "", "Path to an optional YAML configuration file")
	host := flag.String("host", defaults.Host, "Host to bind the server to")
	port := flag.Int("port", defaults.Port, "Port to run the server on")
	maxTokens := flag.Int("max-tokens", defaults.MaxTokens, "Default maximum tokens when a request omits max_tokens")
	speed := flag.Int("speed", defaults.Speed, "Number of tokens per second per request (accepted, currently unused)")
	modelName := flag.String("model-name", defaults.ModelName, "Model name to use for the server")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// Explicitly set flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "max-tokens":
			cfg.MaxTokens = *maxTokens
		case "speed":
			cfg.Speed = *speed
		case "model-name":
			cfg.ModelName = *modelName
		}
	})

	level, err := logger.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level, "fakeopenai")
	appLog := logger.GetLogger()

	gin.SetMode(gin.ReleaseMode)

	svc := completion.NewService(cfg.ModelName, cfg.MaxTokens)
	srv := server.New(svc)

	appLog.Info("Serving model %s with default max_tokens=%d", cfg.ModelName, cfg.MaxTokens)
	if err := srv.Run(cfg.Addr()); err != nil {
		appLog.Fatal("Server exited: %v", err)
	}
}
