package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultModels is the built-in model rotation sequence used when neither
// the config file nor STT_MODELS provides one.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-1.5-flash",
}

// Config holds all application configuration.
type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Typing        TypingConfig        `yaml:"typing"`
	Audio         AudioConfig         `yaml:"audio"`
	Logging       LoggingConfig       `yaml:"logging"`
	Paths         PathsConfig         `yaml:"paths"`
}

// TranscriptionConfig controls the remote transcription request.
type TranscriptionConfig struct {
	// Models is the ordered rotation sequence. Overridden by the
	// comma-separated STT_MODELS environment variable.
	Models []string `yaml:"models"`
	// Language is an optional hint for the spoken language.
	Language string `yaml:"language"`
	// Translate asks the service to translate non-English speech.
	Translate *bool `yaml:"translate"`
}

// TypingConfig controls the injection backends.
type TypingConfig struct {
	// DevicePath is the virtual keyboard device file.
	DevicePath string `yaml:"device_path"`
	// KeyDelayMs is the pause between emitted keystrokes.
	KeyDelayMs int `yaml:"key_delay_ms"`
}

// AudioConfig contains audio recording settings.
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	TempDir   string `yaml:"temp_dir"`
	StateFile string `yaml:"state_file"`
	PIDFile   string `yaml:"pid_file"`
}

// Dir returns the configuration directory (~/.config/stt-typer).
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "stt-typer")
}

// LoadEnv loads .env files so API keys can live next to the config.
// Missing files are not an error.
func LoadEnv() {
	godotenv.Load(filepath.Join(Dir(), ".env"))
	godotenv.Load()
}

// Load reads configuration from ~/.config/stt-typer/config.yaml.
// If the file doesn't exist, returns a Config with empty values.
// Callers should use ApplyDefaults() after Load().
func Load() (*Config, error) {
	return LoadFile(filepath.Join(Dir(), "config.yaml"))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// ExpandPaths replaces ~ with $HOME in all path fields.
func (c *Config) ExpandPaths() {
	home := os.Getenv("HOME")

	c.Paths.TempDir = expandPath(c.Paths.TempDir, home)
	c.Paths.StateFile = expandPath(c.Paths.StateFile, home)
	c.Paths.PIDFile = expandPath(c.Paths.PIDFile, home)
}

func expandPath(path, home string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ApplyDefaults sets default values for empty configuration fields and
// applies environment overrides.
func (c *Config) ApplyDefaults() {
	if env := os.Getenv("STT_MODELS"); env != "" {
		c.Transcription.Models = splitModels(env)
	}
	if len(c.Transcription.Models) == 0 {
		c.Transcription.Models = append([]string(nil), DefaultModels...)
	}
	if c.Transcription.Translate == nil {
		t := true
		c.Transcription.Translate = &t
	}

	if c.Typing.DevicePath == "" {
		c.Typing.DevicePath = "/dev/uinput"
	}
	if c.Typing.KeyDelayMs <= 0 {
		c.Typing.KeyDelayMs = 10
	}

	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	if c.Paths.TempDir == "" {
		c.Paths.TempDir = filepath.Join(Dir(), "temp")
	}
	if c.Paths.StateFile == "" {
		c.Paths.StateFile = filepath.Join(Dir(), "state.yaml")
	}
	if c.Paths.PIDFile == "" {
		runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
		if runtimeDir == "" {
			runtimeDir = os.TempDir()
		}
		c.Paths.PIDFile = filepath.Join(runtimeDir, "stt-typer.pid")
	}
}

func splitModels(s string) []string {
	var models []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			models = append(models, part)
		}
	}
	return models
}
