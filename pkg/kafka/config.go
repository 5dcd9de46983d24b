package kafka

import "time"

// SASL mechanisms understood by the producer transport.
const (
	SASLPlain       = "PLAIN"
	SASLScramSHA256 = "SCRAM-SHA-256"
	SASLScramSHA512 = "SCRAM-SHA-512"
)

// Config holds Kafka connection parameters.
type Config struct {
	Brokers  []string
	ClientID string

	// WriteTimeout bounds a single batch write. Zero uses the kafka-go default.
	WriteTimeout time.Duration

	// SASL configuration for authentication.
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string

	// TLS enables TLS for Kafka connections.
	TLS bool
}
