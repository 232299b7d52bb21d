package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that reads and writes the human form
// ("120s", "2m") in YAML.
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config is the immutable configuration value passed into each pipeline
// call. Loading and saving live here, never in the pipeline itself.
type Config struct {
	// InboundDir is the folder scanned for incoming fax PDFs.
	InboundDir string `yaml:"inbound_dir"`

	// OwnIdentity is the configured name/address of the recipient practice,
	// filtered out of misattributed sender/patient fields.
	OwnIdentity string `yaml:"own_identity"`

	ScanInterval  Duration `yaml:"scan_interval"`
	DocumentPause Duration `yaml:"document_pause"`

	Ollama OllamaConfig `yaml:"ollama"`
	Render RenderConfig `yaml:"render"`

	JournalPath       string `yaml:"journal_path"`
	JournalMaxEntries int    `yaml:"journal_max_entries"`

	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

type OllamaConfig struct {
	URL         string   `yaml:"url"`
	Model       string   `yaml:"model"`
	Timeout     Duration `yaml:"timeout"`
	KeepAlive   string   `yaml:"keep_alive"`
	Temperature float64  `yaml:"temperature"`
	NumCtx      int      `yaml:"num_ctx"`
}

type RenderConfig struct {
	Pdftoppm string `yaml:"pdftoppm"`
	Mutool   string `yaml:"mutool"`
}

func Default() Config {
	return Config{
		OwnIdentity:   "Dr. med. Florian Rasche, Huttenstr. 6",
		ScanInterval:  Duration(120 * time.Second),
		DocumentPause: Duration(1 * time.Second),
		Ollama: OllamaConfig{
			URL:         "http://localhost:11434",
			Model:       "llama3.2-vision",
			Timeout:     Duration(180 * time.Second),
			KeepAlive:   "5s",
			Temperature: 0.1,
			NumCtx:      4096,
		},
		JournalPath:       "processing_log.json",
		JournalMaxEntries: 50,
		LogLevel:          "info",
		MetricsAddr:       ":9090",
	}
}

// Load reads the YAML config file (missing file -> defaults) and applies
// environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes the configuration back as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.InboundDir = envString("FAXSORT_INBOUND_DIR", c.InboundDir)
	c.OwnIdentity = envString("FAXSORT_OWN_IDENTITY", c.OwnIdentity)
	c.Ollama.URL = envString("FAXSORT_OLLAMA_URL", c.Ollama.URL)
	c.Ollama.Model = envString("FAXSORT_OLLAMA_MODEL", c.Ollama.Model)
	c.JournalPath = envString("FAXSORT_JOURNAL_PATH", c.JournalPath)
	c.LogLevel = envString("FAXSORT_LOG_LEVEL", c.LogLevel)
	c.MetricsAddr = envString("FAXSORT_METRICS_ADDR", c.MetricsAddr)
	c.ScanInterval = envSeconds("FAXSORT_SCAN_INTERVAL_SECONDS", c.ScanInterval)
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envSeconds(key string, fallback Duration) Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return Duration(time.Duration(n) * time.Second)
}
