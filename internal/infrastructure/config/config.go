package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// KafkaConfig configures event publication. Publication is disabled when no
// broker is listed.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	WriteTimeout  time.Duration
	TLS           bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// Enabled reports whether Kafka publication is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// TracingConfig configures OTLP trace export. Export is disabled when
// Endpoint is empty.
type TracingConfig struct {
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// AuthConfig configures JWT validation on both transports. Auth is disabled
// when no key material is configured.
type AuthConfig struct {
	Secret        string
	PublicKey     string
	PublicKeyFile string
	Issuer        string
}

// Enabled reports whether JWT auth is configured.
func (a AuthConfig) Enabled() bool {
	return a.Secret != "" || a.PublicKey != "" || a.PublicKeyFile != ""
}

// TLSConfig configures TLS on the gRPC listener.
type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

// Enabled reports whether TLS is configured.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// Config is the process configuration of calculatord.
type Config struct {
	ServiceName       string
	ServiceVersion    string
	HTTPPort          int
	GRPCPort          int
	GRPCReflection    bool
	CORSAllowedOrigin string
	ShutdownTimeout   time.Duration
	Log               LogConfig
	Kafka             KafkaConfig
	Tracing           TracingConfig
	Auth              AuthConfig
	TLS               TLSConfig
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		ServiceName:       getEnv("SERVICE_NAME", "calculatord"),
		ServiceVersion:    getEnv("SERVICE_VERSION", "dev"),
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		GRPCPort:          getEnvInt("GRPC_PORT", 9090),
		GRPCReflection:    getEnvBool("GRPC_REFLECTION", false),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "loancalc.events"),
			ClientID:      getEnv("KAFKA_CLIENT_ID", "calculatord"),
			WriteTimeout:  getEnvDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLMechanism: os.Getenv("KAFKA_SASL_MECHANISM"),
			SASLUsername:  os.Getenv("KAFKA_SASL_USERNAME"),
			SASLPassword:  os.Getenv("KAFKA_SASL_PASSWORD"),
		},
		Tracing: TracingConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getEnvFloat("OTEL_TRACES_SAMPLER_RATIO", 1),
		},
		Auth: AuthConfig{
			Secret:        os.Getenv("JWT_SECRET"),
			PublicKey:     os.Getenv("JWT_PUBLIC_KEY"),
			PublicKeyFile: os.Getenv("JWT_PUBLIC_KEY_FILE"),
			Issuer:        os.Getenv("JWT_ISSUER"),
		},
		TLS: TLSConfig{
			CertFile:     os.Getenv("GRPC_TLS_CERT_FILE"),
			KeyFile:      os.Getenv("GRPC_TLS_KEY_FILE"),
			ClientCAFile: os.Getenv("GRPC_TLS_CLIENT_CA_FILE"),
		},
	}
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	var errs []error
	if err := validPort("HTTP_PORT", c.HTTPPort); err != nil {
		errs = append(errs, err)
	}
	if err := validPort("GRPC_PORT", c.GRPCPort); err != nil {
		errs = append(errs, err)
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ (both %d)", c.HTTPPort))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}
	if c.TLS.ClientCAFile != "" && !c.TLS.Enabled() {
		errs = append(errs, errors.New("GRPC_TLS_CLIENT_CA_FILE requires GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE"))
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC must not be empty when KAFKA_BROKERS is set"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("OTEL_TRACES_SAMPLER_RATIO must be within [0, 1], got %g", c.Tracing.SampleRatio))
	}
	return errors.Join(errs...)
}

func validPort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s out of range: %d", name, port)
	}
	return nil
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
