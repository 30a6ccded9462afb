package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tansu/stockroom/kafka"
	"github.com/tansu/stockroom/pkg/logger"
	"github.com/tansu/stockroom/pkg/tracing"
)

var eventsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifier_events_processed_total",
		Help: "Total number of borrow lifecycle events processed by the notifier",
	},
	[]string{"event_type"},
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "notifier-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting notifier service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	prometheus.MustRegister(eventsProcessed)

	// Kafka consumer for borrow lifecycle events
	brokers := getEnvList("KAFKA_BROKERS", "localhost:9092")
	groupID := getEnv("KAFKA_GROUP_ID", "notifier-service")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicBorrowLifecycle})
	if err != nil {
		logger.Logger.Fatal().Err(err).Strs("brokers", brokers).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterHandler(kafka.EventTypeBorrowRequested, handleBorrowRequested)
	consumer.RegisterHandler(kafka.EventTypeBorrowTransitioned, handleBorrowTransitioned)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	// Metrics and health endpoints
	httpPort := getEnv("HTTP_PORT", "8084")
	go startHTTPServer(httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down notifier...")
}

func handleBorrowRequested(ctx context.Context, payload []byte) error {
	event, err := kafka.DecodeBorrowRequested(payload)
	if err != nil {
		return err
	}

	eventsProcessed.WithLabelValues(event.EventType).Inc()

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Uint("request_id", event.RequestID).
		Uint("item_id", event.ItemID).
		Uint("user_id", event.UserID).
		Int32("quantity", event.Quantity).
		Msg("Borrow request filed")

	return nil
}

func handleBorrowTransitioned(ctx context.Context, payload []byte) error {
	event, err := kafka.DecodeBorrowTransitioned(payload)
	if err != nil {
		return err
	}

	eventsProcessed.WithLabelValues(event.EventType).Inc()

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Uint("request_id", event.RequestID).
		Uint("item_id", event.ItemID).
		Uint("user_id", event.UserID).
		Str("new_status", event.NewStatus).
		Uint("actor_id", event.ActorID).
		Msg("Borrow request transitioned")

	return nil
}

func startHTTPServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
