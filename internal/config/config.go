package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/willowfeed/matchcentre/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	CORSAllowedOrigins []string
	StaticDir          string

	ClientConfigFile     string
	ClientConfigBundled  string
	ClientConfigCacheTTL time.Duration

	ScorehubBaseURL               string
	ScorehubTimeout               time.Duration
	ScorehubCircuitEnabled        bool
	ScorehubCircuitFailureCount   int
	ScorehubCircuitOpenTimeout    time.Duration
	ScorehubCircuitHalfOpenMaxReq int

	PprofEnabled bool
	PprofAddr    string

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	clientConfigCacheTTL, err := time.ParseDuration(getEnv("CLIENT_CONFIG_CACHE_TTL", "5m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CLIENT_CONFIG_CACHE_TTL: %w", err)
	}
	if clientConfigCacheTTL <= 0 {
		return Config{}, fmt.Errorf("CLIENT_CONFIG_CACHE_TTL must be > 0")
	}

	scorehubTimeout, err := time.ParseDuration(getEnv("SCOREHUB_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_TIMEOUT: %w", err)
	}
	if scorehubTimeout <= 0 {
		return Config{}, fmt.Errorf("SCOREHUB_TIMEOUT must be > 0")
	}
	scorehubCircuitEnabled, err := strconv.ParseBool(getEnv("SCOREHUB_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_CIRCUIT_ENABLED: %w", err)
	}
	scorehubCircuitFailureCount, err := getEnvAsInt("SCOREHUB_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if scorehubCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("SCOREHUB_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	scorehubCircuitOpenTimeout, err := time.ParseDuration(getEnv("SCOREHUB_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if scorehubCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("SCOREHUB_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	scorehubCircuitHalfOpenMaxReq, err := getEnvAsInt("SCOREHUB_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCOREHUB_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if scorehubCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("SCOREHUB_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofAddr == "" {
		pprofAddr = ":6060"
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "matchcentre-api"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),

		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		StaticDir:          strings.TrimSpace(getEnv("STATIC_DIR", "./public")),

		ClientConfigFile:     strings.TrimSpace(getEnv("CLIENT_CONFIG_FILE", "")),
		ClientConfigBundled:  strings.TrimSpace(getEnv("CLIENT_CONFIG_BUNDLED", "./public/client-config.json")),
		ClientConfigCacheTTL: clientConfigCacheTTL,

		ScorehubBaseURL:               strings.TrimSpace(getEnv("SCOREHUB_BASE_URL", "https://api.scorehub.io/v1")),
		ScorehubTimeout:               scorehubTimeout,
		ScorehubCircuitEnabled:        scorehubCircuitEnabled,
		ScorehubCircuitFailureCount:   scorehubCircuitFailureCount,
		ScorehubCircuitOpenTimeout:    scorehubCircuitOpenTimeout,
		ScorehubCircuitHalfOpenMaxReq: scorehubCircuitHalfOpenMaxReq,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
