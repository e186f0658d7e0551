package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"pricecard/internal/bootstrap"
	"pricecard/internal/persist"
	"pricecard/internal/server"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	shareToken  = flag.String("share", "", "Start from a share token, as if opened from a shared link")
)

// Config represents the application configuration
type Config struct {
	ListenPort  int    `yaml:"listen_port"`
	MetricsPort int    `yaml:"metrics_port"`
	ShareBase   string `yaml:"share_base"`
	LogLevel    string `yaml:"log_level"`
	Cache       struct {
		Dialect string `yaml:"dialect"`
		Source  string `yaml:"source"`
	} `yaml:"cache"`
}

func main() {
	flag.Parse()

	log := logrus.New()

	config, err := loadConfig(*configFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if *port != 0 {
		config.ListenPort = *port
	}
	if *metricsPort != 0 {
		config.MetricsPort = *metricsPort
	}
	if level, err := logrus.ParseLevel(config.LogLevel); err == nil {
		log.SetLevel(level)
	}

	cache := openCache(config, log)
	fragment := newFragment(config, log)
	if *shareToken != "" {
		fragment.Seed(*shareToken)
	}

	srv := server.NewServer(server.Options{
		Controller: bootstrap.New(cache, fragment, log),
		Logger:     log,
		ShareBase:  config.ShareBase,
	})

	go startMetricsServer(config.MetricsPort, srv, log)

	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.ListenPort),
		Handler: srv.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("API server shutdown error")
		}
	}()

	log.WithField("port", config.ListenPort).Info("starting API server")
	if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Fatal("API server error")
	}
}

func loadConfig(path string) (*Config, error) {
	// Env files are optional; a missing .env is not an error.
	_ = godotenv.Load()

	config := &Config{
		ListenPort:  8080,
		MetricsPort: 9090,
		ShareBase:   "http://localhost:8080/",
		LogLevel:    "info",
	}
	config.Cache.Dialect = "sqlite3"
	config.Cache.Source = "pricecard.db"

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if dsn := os.Getenv("PRICECARD_CACHE_DSN"); dsn != "" {
		config.Cache.Dialect = "postgres"
		config.Cache.Source = dsn
	}
	return config, nil
}

// openCache opens the configured cache database, falling back to an
// in-process cache when it is unavailable. The cache is best-effort by
// contract, so startup never fails on it.
func openCache(config *Config, log *logrus.Logger) persist.ConfigCache {
	cache, err := persist.OpenCache(config.Cache.Dialect, config.Cache.Source)
	if err != nil {
		log.WithError(err).Warn("cache database unavailable, using in-memory cache")
		return persist.NewMemoryCache()
	}
	return cache
}

// newFragment builds the fragment store. Sharing requires a usable absolute
// share base; without one the sharing surface stays disabled.
func newFragment(config *Config, log *logrus.Logger) *persist.MemoryFragment {
	u, err := url.Parse(config.ShareBase)
	supported := err == nil && u.IsAbs()
	if !supported {
		log.WithField("share_base", config.ShareBase).Warn("share base unusable, sharing disabled")
	}
	return persist.NewMemoryFragment(supported)
}

func startMetricsServer(port int, srv *server.Server, log *logrus.Logger) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(srv.MetricsHandler().Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.WithField("port", port).Info("starting metrics server")
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.WithError(err).Warn("metrics server error")
	}
}
