package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "GRPC_PORT", "LOG_LEVEL", "LOG_FORMAT", "KAFKA_BROKERS", "KAFKA_TOPIC",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "JWT_SECRET", "JWT_PUBLIC_KEY", "JWT_PUBLIC_KEY_FILE",
		"GRPC_TLS_CERT_FILE", "GRPC_TLS_KEY_FILE", "CORS_ALLOWED_ORIGIN", "GRPC_REFLECTION",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, ":8080", cfg.HTTPAddr())
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "loancalc.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.False(t, cfg.Auth.Enabled())
	assert.False(t, cfg.TLS.Enabled())
	assert.False(t, cfg.GRPCReflection)
	assert.Equal(t, "http://localhost:5173", cfg.CORSAllowedOrigin)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("GRPC_PORT", "9191")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("KAFKA_WRITE_TIMEOUT", "2s")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "0.5")

	cfg := Load()

	assert.Equal(t, 8181, cfg.HTTPPort)
	assert.Equal(t, 9191, cfg.GRPCPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 2*time.Second, cfg.Kafka.WriteTimeout)
	assert.True(t, cfg.GRPCReflection)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, 0.5, cfg.Tracing.SampleRatio)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("GRPC_REFLECTION", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.False(t, cfg.GRPCReflection)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{HTTPPort: 8080, GRPCPort: 9090, Kafka: KafkaConfig{Topic: "t"}, Tracing: TracingConfig{SampleRatio: 1}}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "port out of range", mutate: func(c *Config) { c.HTTPPort = 70000 }, want: "HTTP_PORT out of range"},
		{name: "same ports", mutate: func(c *Config) { c.GRPCPort = 8080 }, want: "must differ"},
		{name: "cert without key", mutate: func(c *Config) { c.TLS.CertFile = "server.pem" }, want: "must be set together"},
		{name: "client ca without tls", mutate: func(c *Config) { c.TLS.ClientCAFile = "ca.pem" }, want: "GRPC_TLS_CLIENT_CA_FILE"},
		{
			name:   "brokers without topic",
			mutate: func(c *Config) { c.Kafka = KafkaConfig{Brokers: []string{"kafka:9092"}} },
			want:   "KAFKA_TOPIC",
		},
		{name: "sample ratio", mutate: func(c *Config) { c.Tracing.SampleRatio = 2 }, want: "OTEL_TRACES_SAMPLER_RATIO"},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
