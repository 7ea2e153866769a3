package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// AuthSource selects which credential authenticates against the database.
type AuthSource string

// Supported auth sources.
const (
	AuthAPIKey   AuthSource = "api_key"  // WEAVIATE_API_KEY
	AuthPassword AuthSource = "password" // PASSWORD
	AuthNone     AuthSource = "none"
)

// WeaviateConfig holds database connection settings.
type WeaviateConfig struct {
	URL                 string `yaml:"url" env:"WEAVIATE_URL"` // host or full URL (default: localhost)
	Port                int    `yaml:"port" env:"WEAVIATE_PORT"`
	GRPCPort            int    `yaml:"grpc_port" env:"WEAVIATE_GRPC_PORT"`
	DisableGRPC         bool   `yaml:"disable_grpc" env:"WEAVIATE_DISABLE_GRPC"`
	AuthSource          string `yaml:"auth_source" env:"WEAVIATE_AUTH_SOURCE"` // api_key, password, none (default: first credential present)
	APIKey              string `yaml:"api_key" env:"WEAVIATE_API_KEY"`
	Password            string `yaml:"password" env:"PASSWORD"`
	ReadinessTimeoutSec int    `yaml:"readiness_timeout_sec" env:"WEAVIATE_READINESS_TIMEOUT_SEC"` // <0 = single check
	RequestTimeoutSec   int    `yaml:"request_timeout_sec" env:"WEAVIATE_REQUEST_TIMEOUT_SEC"`
}

// Endpoint is the resolved database address.
type Endpoint struct {
	Scheme   string
	Host     string // host:port
	GRPCHost string // host:port, empty when gRPC is disabled
}

func (w *WeaviateConfig) applyDefaults() {
	if strings.TrimSpace(w.URL) == "" {
		w.URL = "localhost"
	}
	if w.Port <= 0 {
		w.Port = 8080
	}
	if w.GRPCPort <= 0 {
		w.GRPCPort = 50051
	}
	if w.ReadinessTimeoutSec == 0 {
		w.ReadinessTimeoutSec = 10
	}
	if w.RequestTimeoutSec <= 0 {
		w.RequestTimeoutSec = 30
	}
	w.AuthSource = strings.ToLower(strings.TrimSpace(w.AuthSource))
}

func (w *WeaviateConfig) validate() error {
	if w.Port > 65535 {
		return invalid("weaviate.port must be between 1 and 65535, got %d", w.Port)
	}
	if w.GRPCPort > 65535 {
		return invalid("weaviate.grpc_port must be between 1 and 65535, got %d", w.GRPCPort)
	}
	if _, err := w.Endpoint(); err != nil {
		return err
	}

	switch AuthSource(w.AuthSource) {
	case "", AuthNone:
	case AuthAPIKey:
		if w.APIKey == "" {
			return invalid("weaviate.auth_source is api_key but WEAVIATE_API_KEY is empty")
		}
	case AuthPassword:
		if w.Password == "" {
			return invalid("weaviate.auth_source is password but PASSWORD is empty")
		}
	default:
		return invalid("weaviate.auth_source must be api_key, password or none, got %q", w.AuthSource)
	}
	return nil
}

// Credential returns the resolved auth source and its secret.
// Without an explicit source the API key wins over the password.
func (w WeaviateConfig) Credential() (AuthSource, string) {
	switch AuthSource(w.AuthSource) {
	case AuthAPIKey:
		return AuthAPIKey, w.APIKey
	case AuthPassword:
		return AuthPassword, w.Password
	case AuthNone:
		return AuthNone, ""
	}
	if w.APIKey != "" {
		return AuthAPIKey, w.APIKey
	}
	if w.Password != "" {
		return AuthPassword, w.Password
	}
	return AuthNone, ""
}

// Endpoint resolves URL and ports into REST and gRPC addresses.
// A port embedded in the URL wins over Port. A bare host on port 443 uses https.
func (w WeaviateConfig) Endpoint() (Endpoint, error) {
	scheme := "http"
	raw := strings.TrimSpace(w.URL)
	hostname := raw
	port := strconv.Itoa(w.Port)

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Endpoint{}, invalid("weaviate.url %q: %v", raw, err)
		}
		scheme = strings.ToLower(u.Scheme)
		hostname = u.Hostname()
		if p := u.Port(); p != "" {
			port = p
		}
	} else {
		if h, p, err := net.SplitHostPort(raw); err == nil {
			hostname, port = h, p
		}
		if port == "443" {
			scheme = "https"
		}
	}

	if scheme != "http" && scheme != "https" {
		return Endpoint{}, invalid("weaviate.url scheme must be http or https, got %q", scheme)
	}
	if hostname == "" {
		return Endpoint{}, invalid("weaviate.url %q has no host", raw)
	}

	ep := Endpoint{
		Scheme: scheme,
		Host:   net.JoinHostPort(hostname, port),
	}
	if !w.DisableGRPC {
		ep.GRPCHost = net.JoinHostPort(hostname, strconv.Itoa(w.GRPCPort))
	}
	return ep, nil
}

// ReadinessTimeout returns how long to wait for the database to report ready.
func (w WeaviateConfig) ReadinessTimeout() time.Duration {
	if w.ReadinessTimeoutSec < 0 {
		return 0
	}
	return time.Duration(w.ReadinessTimeoutSec) * time.Second
}

// RequestTimeout returns the per-request timeout.
func (w WeaviateConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSec) * time.Second
}
