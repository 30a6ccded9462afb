package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string // All instances for load balancing; falls back to BaseURL
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"user": {
				Name:        "user-service",
				BaseURL:     getEnv("USER_SERVICE_URL", "http://localhost:8080"),
				Instances:   getEnvInstances("USER_SERVICE_INSTANCES", getEnv("USER_SERVICE_URL", "http://localhost:8080")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
			"inventory": {
				Name:        "inventory-service",
				BaseURL:     getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082"),
				Instances:   getEnvInstances("INVENTORY_SERVICE_INSTANCES", getEnv("INVENTORY_SERVICE_URL", "http://localhost:8082")),
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInstances parses a comma-separated list of instance URLs.
func getEnvInstances(key, defaultValue string) []string {
	var instances []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	return instances
}
