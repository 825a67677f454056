package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Run modes.
const (
	ModeOneshot = "oneshot"
	ModeServe   = "serve"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	RunMode   string
	DataDir   string
	ReportDir string

	MaskThreshold float64
	TopRegions    int
	ScalesFile    string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka export is enabled when brokers are configured.
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// KafkaEnabled reports whether site rankings should be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	maskThreshold, err := parseFloat("MASK_THRESHOLD", "3")
	if err != nil {
		return nil, err
	}

	topRegions, err := parseInt("TOP_REGIONS", "5")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunMode:   envOrDefault("RUN_MODE", ModeOneshot),
		DataDir:   envOrDefault("DATA_DIR", "./data"),
		ReportDir: envOrDefault("REPORT_DIR", "./reports"),

		MaskThreshold: maskThreshold,
		TopRegions:    topRegions,
		ScalesFile:    os.Getenv("SCALES_FILE"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:   parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "site-rankings"),
	}

	if cfg.RunMode != ModeOneshot && cfg.RunMode != ModeServe {
		return nil, fmt.Errorf("invalid RUN_MODE %q: must be %s or %s", cfg.RunMode, ModeOneshot, ModeServe)
	}
	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.MaskThreshold < 0 {
		return nil, errors.New("MASK_THRESHOLD must not be negative")
	}
	if cfg.TopRegions <= 0 {
		return nil, errors.New("TOP_REGIONS must be positive")
	}
	if cfg.KafkaEnabled() && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseFloat(key, fallback string) (float64, error) {
	v, err := strconv.ParseFloat(envOrDefault(key, fallback), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parseInt(key, fallback string) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
