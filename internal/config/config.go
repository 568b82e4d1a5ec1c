package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/giordafrancis/jobdigest/internal/models"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobdigest"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
)

// SMTP is the outbound mail account used for digest delivery.
type SMTP struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// Config holds the digest's search anchor, source parameters and delivery
// settings. These were module-level constants in earlier iterations of the
// pipeline; they live here so the orchestrator receives them explicitly.
type Config struct {
	Keywords      string   `json:"keywords"`
	Postcode      string   `json:"postcode"`
	Latitude      string   `json:"lat"`
	Longitude     string   `json:"lon"`
	DistanceMiles int      `json:"distance_miles"`
	MaxPages      int      `json:"max_pages"`
	GDSTSchools   []string `json:"gdst_schools"`
	Recipients    []string `json:"recipients"`
	FallbackFile  string   `json:"fallback_file"`
	SMTP          SMTP     `json:"smtp"`
}

func DefaultConfig() Config {
	return Config{
		Keywords:      envString("JOBDIGEST_KEYWORDS", "Design and Technology Teacher"),
		Postcode:      envString("JOBDIGEST_POSTCODE", "CR5 1SS"),
		Latitude:      "51.30662208651764",
		Longitude:     "-0.1133822439545745",
		DistanceMiles: envInt("JOBDIGEST_DISTANCE", 10),
		MaxPages:      envInt("JOBDIGEST_MAX_PAGES", 2),
		GDSTSchools:   []string{"Sutton High", "Croydon High"},
		Recipients:    splitCSV(envString("JOBDIGEST_RECIPIENTS", os.Getenv("EMAIL_RECIPIENTS"))),
		FallbackFile:  "digest.html",
		SMTP: SMTP{
			Host:     envString("JOBDIGEST_SMTP_HOST", "smtp.gmail.com"),
			Port:     envInt("JOBDIGEST_SMTP_PORT", 587),
			Username: envString("JOBDIGEST_SMTP_USER", os.Getenv("GMAIL_USER")),
			Password: envString("JOBDIGEST_SMTP_PASS", os.Getenv("GMAIL_PASS")),
		},
	}
}

// SearchParams maps the config into the per-source search inputs.
func (c Config) SearchParams() models.SearchParams {
	return models.SearchParams{
		Keywords:      c.Keywords,
		Postcode:      c.Postcode,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		DistanceMiles: c.DistanceMiles,
		Sort:          "distance",
		MaxPages:      c.MaxPages,
	}
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBDIGEST_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
