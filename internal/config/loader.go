package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Load reads configuration from environment variables, applies defaults for
// unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// fieldParsers decode an environment value for each field type the config
// structs declare.
var fieldParsers = map[reflect.Type]func(string) (any, error){
	reflect.TypeFor[string](): func(s string) (any, error) { return s, nil },
	reflect.TypeFor[int](): func(s string) (any, error) {
		n, err := strconv.Atoi(s)
		return n, err
	},
	reflect.TypeFor[int64](): func(s string) (any, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		return n, err
	},
	reflect.TypeFor[bool](): func(s string) (any, error) {
		b, err := strconv.ParseBool(s)
		return b, err
	},
	reflect.TypeFor[time.Duration](): func(s string) (any, error) {
		d, err := time.ParseDuration(s)
		return d, err
	},
	reflect.TypeFor[[]string](): func(s string) (any, error) { return splitList(s), nil },
}

// loadStruct fills the env-tagged fields of v and of its nested sections.
// The env tag may list several names; the first one set wins.
func loadStruct(v reflect.Value) error {
	for i := range v.NumField() {
		field := v.Type().Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		tag, ok := field.Tag.Lookup("env")
		if !ok {
			if field.Type.Kind() == reflect.Struct {
				if err := loadStruct(fv); err != nil {
					return err
				}
			}
			continue
		}

		names := strings.Split(tag, ",")
		value, ok := lookupEnv(names)
		if !ok {
			value = field.Tag.Get("default")
		}
		if value == "" {
			continue
		}

		parse, known := fieldParsers[field.Type]
		if !known {
			return fmt.Errorf("%s: unsupported field type %s", names[0], field.Type)
		}
		parsed, err := parse(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", names[0], value, err)
		}
		fv.Set(reflect.ValueOf(parsed))
	}
	return nil
}

func lookupEnv(names []string) (string, bool) {
	for _, name := range names {
		if v := os.Getenv(strings.TrimSpace(name)); v != "" {
			return v, true
		}
	}
	return "", false
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Database validation (only when loading from PostgreSQL)
	if c.Database.UsesDatabase() {
		if strings.TrimSpace(c.Database.RecordsTable) == "" {
			errs = append(errs, "DB_RECORDS_TABLE must not be empty when DATABASE_URL is set")
		}
		if c.Database.MaxConns < c.Database.MinConns {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)",
				c.Database.MaxConns, c.Database.MinConns))
		}
		if c.Database.MaxConns <= 0 {
			errs = append(errs, "DB_MAX_CONNS must be positive")
		}
		if c.Database.MinConns < 0 {
			errs = append(errs, "DB_MIN_CONNS must be non-negative")
		}
		if c.Database.LoadTimeout <= 0 {
			errs = append(errs, "DB_LOAD_TIMEOUT must be positive")
		}
	}

	// Store validation
	if c.Store.SeedCount < 0 {
		errs = append(errs, "STORE_SEED_COUNT must be non-negative")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}

	// Rate limit validation
	if c.Rate.Enabled && c.Rate.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if c.Rate.Enabled && c.Rate.Burst <= 0 {
		errs = append(errs, "RATE_LIMIT_BURST must be positive when rate limiting is enabled")
	}

	// Export validation
	if strings.TrimSpace(c.Export.Filename) == "" || strings.ContainsAny(c.Export.Filename, "\"/\\\r\n") {
		errs = append(errs, fmt.Sprintf("EXPORT_FILENAME (%q) must be a plain file name", c.Export.Filename))
	}
	if c.Export.MaxConcurrent <= 0 {
		errs = append(errs, "EXPORT_MAX_CONCURRENT must be positive")
	}
	if c.Export.MaxWaitTime <= 0 {
		errs = append(errs, "EXPORT_MAX_WAIT_TIME must be positive")
	}

	// Security validation
	if c.Security.RequireAPIKey && len(c.Security.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Sensitive values like database URLs and API keys are masked.
func (c *Config) String() string {
	dbURL := "none"
	if c.Database.UsesDatabase() {
		dbURL = "[MASKED]"
	}

	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port))
	b.WriteString(fmt.Sprintf("Database: {URL: %s, Table: %q, MaxConns: %d}, ",
		dbURL, c.Database.RecordsTable, c.Database.MaxConns))
	b.WriteString(fmt.Sprintf("Store: {SeedCount: %d, Seed: %d}, ",
		c.Store.SeedCount, c.Store.Seed))
	b.WriteString(fmt.Sprintf("Rate: {Enabled: %v, RequestsPerMinute: %d, Burst: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.Burst))
	b.WriteString(fmt.Sprintf("Security: {RequireAPIKey: %v, APIKeys: %d}, ",
		c.Security.RequireAPIKey, len(c.Security.APIKeys)))
	b.WriteString(fmt.Sprintf("Export: {Filename: %q, MaxConcurrent: %d}, ",
		c.Export.Filename, c.Export.MaxConcurrent))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
