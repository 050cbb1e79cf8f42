package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Secrets holds credentials and endpoints read from the environment.
type Secrets struct {
	GoogleAPIKey     string `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL"`
	QdrantURL        string `env:"QDRANT_URL"`
	QdrantHost       string `env:"QDRANT_HOST,default=localhost"`
	QdrantPort       int    `env:"QDRANT_PORT,default=6334"`
	QdrantAPIKey     string `env:"QDRANT_API_KEY"`
	QdrantUseTLS     bool   `env:"QDRANT_USE_TLS,default=false"`
	QdrantCollection string `env:"QDRANT_COLLECTION"`
}

// QdrantEndpoint describes the gRPC endpoint of the vector index.
type QdrantEndpoint struct {
	Host   string
	Port   int
	APIKey string
	UseTLS bool
}

// LoadSecrets reads Secrets using the given lookuper, or the process environment when nil.
func LoadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (Secrets, error) {
	var secrets Secrets
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &secrets,
		Lookuper: lookuper,
	}); err != nil {
		return Secrets{}, fmt.Errorf("process environment: %w", err)
	}
	return secrets, nil
}

// Qdrant resolves the index endpoint, preferring QDRANT_URL when set.
func (s Secrets) Qdrant() (QdrantEndpoint, error) {
	endpoint := QdrantEndpoint{
		Host:   s.QdrantHost,
		Port:   s.QdrantPort,
		APIKey: s.QdrantAPIKey,
		UseTLS: s.QdrantUseTLS,
	}
	raw := strings.TrimSpace(s.QdrantURL)
	if raw == "" {
		return endpoint, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return QdrantEndpoint{}, fmt.Errorf("parse QDRANT_URL %q: invalid url", raw)
	}
	endpoint.Host = parsed.Hostname()
	endpoint.UseTLS = parsed.Scheme == "https"
	// REST ports are mapped to the gRPC port the client speaks.
	if port := parsed.Port(); port != "" && port != "6333" {
		value, err := strconv.Atoi(port)
		if err != nil {
			return QdrantEndpoint{}, fmt.Errorf("parse QDRANT_URL port: %w", err)
		}
		endpoint.Port = value
	} else {
		endpoint.Port = 6334
	}
	return endpoint, nil
}

// Collection returns the index collection, letting the environment override config.
func (s Secrets) Collection(configured string) string {
	if value := strings.TrimSpace(s.QdrantCollection); value != "" {
		return value
	}
	return configured
}
