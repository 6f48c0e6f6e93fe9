package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	RegistrySQLite   = "sqlite"
	RegistryJSONFile = "jsonfile"
)

type Config struct {
	DataDir    string
	StorageDir string
	WorkDir    string
	Registry   string
	Workers    int

	ExtractorBin    string
	EncoderBin      string
	ProbeBin        string
	CookiesFile     string
	ProxyURL        string
	ProbeTimeout    time.Duration
	DownloadTimeout time.Duration
	EncodeTimeout   time.Duration

	MaxClipDuration   time.Duration
	KeyframeTolerance time.Duration
	DurationTolerance time.Duration

	FallbackCapHeight     int
	FallbackMaxHeightDrop int
	FallbackAllowAny      bool

	HeartbeatInterval time.Duration
	StaleAfter        time.Duration
	QueueTTL          time.Duration

	RetentionMaxAge   time.Duration
	RetentionMaxBytes int64
	SweepInterval     time.Duration
	LookbackDays      int
	DeleteAfterFetch  bool
	VerifyChecksum    bool

	MetricsAddr string
	LogLevel    string
}

// Load reads configuration from the environment. A .env file in the working directory is
// loaded first, and SNIP_CONFIG may point at a YAML file whose keys are the variable names.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("SNIP_CONFIG"))
}

// LoadFile is Load with an explicit YAML file. Environment variables win over file values.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	src := source{}
	if strings.TrimSpace(path) != "" {
		file, err := readYAML(path)
		if err != nil {
			return nil, err
		}
		src.file = file
	}

	p := &parser{src: src}
	dataDir := src.get("DATA_DIR", "/data")

	cfg := &Config{
		DataDir:    dataDir,
		StorageDir: src.get("STORAGE_DIR", filepath.Join(dataDir, "clips")),
		WorkDir:    src.get("WORK_DIR", filepath.Join(dataDir, "work")),
		Registry:   strings.ToLower(src.get("REGISTRY", RegistrySQLite)),
		Workers:    p.int("WORKERS", 2),

		ExtractorBin:    src.get("EXTRACTOR_BIN", "yt-dlp"),
		EncoderBin:      src.get("ENCODER_BIN", "ffmpeg"),
		ProbeBin:        src.get("PROBE_BIN", "ffprobe"),
		CookiesFile:     src.get("COOKIES_FILE", ""),
		ProxyURL:        src.get("PROXY_URL", ""),
		ProbeTimeout:    p.duration("PROBE_TIMEOUT", time.Minute),
		DownloadTimeout: p.duration("DOWNLOAD_TIMEOUT", 10*time.Minute),
		EncodeTimeout:   p.duration("ENCODE_TIMEOUT", 5*time.Minute),

		MaxClipDuration:   p.duration("MAX_CLIP_DURATION", 180*time.Second),
		KeyframeTolerance: p.duration("KEYFRAME_TOLERANCE", 50*time.Millisecond),
		DurationTolerance: p.duration("DURATION_TOLERANCE", 500*time.Millisecond),

		FallbackCapHeight:     p.int("FALLBACK_CAP_HEIGHT", 720),
		FallbackMaxHeightDrop: p.int("FALLBACK_MAX_HEIGHT_DROP", 0),
		FallbackAllowAny:      p.bool("FALLBACK_ALLOW_ANY", true),

		HeartbeatInterval: p.duration("HEARTBEAT_INTERVAL", 10*time.Second),
		StaleAfter:        p.duration("STALE_AFTER", 2*time.Minute),
		QueueTTL:          p.duration("QUEUE_TTL", time.Hour),

		RetentionMaxAge:   p.duration("RETENTION_MAX_AGE", 24*time.Hour),
		RetentionMaxBytes: p.bytes("RETENTION_MAX_SIZE", "10GB"),
		SweepInterval:     p.duration("SWEEP_INTERVAL", 15*time.Minute),
		LookbackDays:      p.int("LOOKBACK_DAYS", 7),
		DeleteAfterFetch:  p.bool("DELETE_AFTER_FETCH", false),
		VerifyChecksum:    p.bool("VERIFY_CHECKSUM", true),

		MetricsAddr: src.get("METRICS_ADDR", ""),
		LogLevel:    src.get("LOG_LEVEL", "info"),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("WORKERS must be positive, got %d", c.Workers))
	}
	if c.Registry != RegistrySQLite && c.Registry != RegistryJSONFile {
		errs = append(errs, fmt.Errorf("REGISTRY must be %q or %q, got %q", RegistrySQLite, RegistryJSONFile, c.Registry))
	}
	positive := map[string]time.Duration{
		"PROBE_TIMEOUT":      c.ProbeTimeout,
		"DOWNLOAD_TIMEOUT":   c.DownloadTimeout,
		"ENCODE_TIMEOUT":     c.EncodeTimeout,
		"MAX_CLIP_DURATION":  c.MaxClipDuration,
		"KEYFRAME_TOLERANCE": c.KeyframeTolerance,
		"DURATION_TOLERANCE": c.DurationTolerance,
		"HEARTBEAT_INTERVAL": c.HeartbeatInterval,
		"STALE_AFTER":        c.StaleAfter,
		"SWEEP_INTERVAL":     c.SweepInterval,
	}
	for name, d := range positive {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.StaleAfter > 0 && c.HeartbeatInterval >= c.StaleAfter {
		errs = append(errs, fmt.Errorf("HEARTBEAT_INTERVAL (%s) must be shorter than STALE_AFTER (%s)", c.HeartbeatInterval, c.StaleAfter))
	}
	if c.LookbackDays < 0 {
		errs = append(errs, fmt.Errorf("LOOKBACK_DAYS must not be negative, got %d", c.LookbackDays))
	}
	if c.FallbackCapHeight <= 0 {
		errs = append(errs, fmt.Errorf("FALLBACK_CAP_HEIGHT must be positive, got %d", c.FallbackCapHeight))
	}
	if c.FallbackMaxHeightDrop < 0 {
		errs = append(errs, fmt.Errorf("FALLBACK_MAX_HEIGHT_DROP must not be negative, got %d", c.FallbackMaxHeightDrop))
	}
	if c.RetentionMaxAge < 0 || c.RetentionMaxBytes < 0 || c.QueueTTL < 0 {
		errs = append(errs, fmt.Errorf("retention bounds must not be negative"))
	}
	return errors.Join(errs...)
}

func readYAML(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		out[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return out, nil
}

type source struct {
	file map[string]string
}

func (s source) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value, ok := s.file[key]; ok && value != "" {
		return value
	}
	return defaultValue
}

// parser keeps the first conversion error so Load can report it once.
type parser struct {
	src source
	err error
}

func (p *parser) int(key string, def int) int {
	raw := p.src.get(key, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) bool(key string, def bool) bool {
	raw := p.src.get(key, strconv.FormatBool(def))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := p.src.get(key, def.String())
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return v
}

func (p *parser) bytes(key, def string) int64 {
	raw := p.src.get(key, def)
	if raw == "0" {
		return 0
	}
	v, err := humanize.ParseBytes(raw)
	if err != nil {
		p.fail(key, err)
		return 0
	}
	return int64(v)
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
