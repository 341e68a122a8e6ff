package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ftahirops/rebootcheck/pkgdb"
	"github.com/ftahirops/rebootcheck/session"
)

// EnvPrefix prefixes environment overrides, e.g. REBOOTCHECK_PACMAN_DB.
const EnvPrefix = "REBOOTCHECK"

// Keys shared by flags, environment and config file.
const (
	KeyRebootPackages  = "reboot_packages"
	KeySessionPackages = "session_packages"
	KeyPacmanDB        = "pacman_db"
	KeyUtmpPath        = "utmp_path"
	KeyKernel          = "kernel"
	KeyOutput          = "output"
	KeyExitCode        = "exit_code"
	KeyNotifyEnabled   = "notify.enabled"
	KeyNotifyTimeout   = "notify.timeout"
	KeyNotifyCommand   = "notify.command"
	KeyWatchInterval   = "watch.interval"
)

// Output formats.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputMarkdown = "markdown"
	OutputCron     = "cron"
)

var validOutputs = []string{OutputText, OutputJSON, OutputYAML, OutputMarkdown, OutputCron}

// Config holds everything a run needs.
type Config struct {
	RebootPackages  []string `mapstructure:"reboot_packages"`
	SessionPackages []string `mapstructure:"session_packages"`
	PacmanDB        string   `mapstructure:"pacman_db"`
	UtmpPath        string   `mapstructure:"utmp_path"`
	Kernel          string   `mapstructure:"kernel"`
	Output          string   `mapstructure:"output"`
	ExitCode        bool     `mapstructure:"exit_code"`
	Notify          Notify   `mapstructure:"notify"`
	Watch           Watch    `mapstructure:"watch"`
}

// Notify configures desktop notifications and the hook command.
type Notify struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
	Command string        `mapstructure:"command"`
}

// Watch configures the live view.
type Watch struct {
	Interval time.Duration `mapstructure:"interval"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		RebootPackages:  []string{"systemd", "linux-firmware", "amd-ucode", "intel-ucode"},
		SessionPackages: []string{"xorg-server", "xorg-xwayland"},
		PacmanDB:        pkgdb.DefaultDir,
		UtmpPath:        session.DefaultUtmpPath,
		Output:          OutputText,
		Notify: Notify{
			Timeout: 6 * time.Second,
		},
		Watch: Watch{
			Interval: time.Minute,
		},
	}
}

// Path returns ~/.config/rebootcheck/config.yaml (or under XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "rebootcheck", "config.yaml")
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyRebootPackages, d.RebootPackages)
	v.SetDefault(KeySessionPackages, d.SessionPackages)
	v.SetDefault(KeyPacmanDB, d.PacmanDB)
	v.SetDefault(KeyUtmpPath, d.UtmpPath)
	v.SetDefault(KeyKernel, d.Kernel)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyExitCode, d.ExitCode)
	v.SetDefault(KeyNotifyEnabled, d.Notify.Enabled)
	v.SetDefault(KeyNotifyTimeout, d.Notify.Timeout)
	v.SetDefault(KeyNotifyCommand, d.Notify.Command)
	v.SetDefault(KeyWatchInterval, d.Watch.Interval)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads the config file (explicit path, or the default path when it
// exists) into v and decodes the merged settings. A missing default file is
// not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	if file == "" {
		if p := Path(); p != "" {
			if _, err := os.Stat(p); err == nil {
				file = p
			}
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.RebootPackages = splitList(cfg.RebootPackages)
	cfg.SessionPackages = splitList(cfg.SessionPackages)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	valid := false
	for _, o := range validOutputs {
		if c.Output == o {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown output %q (valid: %s)", c.Output, strings.Join(validOutputs, ", "))
	}
	if c.PacmanDB == "" {
		return errors.New("pacman_db must not be empty")
	}
	if c.UtmpPath == "" {
		return errors.New("utmp_path must not be empty")
	}
	if c.Notify.Timeout <= 0 {
		return fmt.Errorf("notify.timeout must be positive, got %s", c.Notify.Timeout)
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval)
	}
	return nil
}

// Save writes cfg as YAML. It refuses to overwrite an existing file unless
// force is set.
func Save(path string, cfg Config, force bool) error {
	if path == "" {
		return errors.New("cannot determine config directory")
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(toFile(cfg))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// splitList accepts both proper lists and single comma-separated entries,
// which is what environment variables produce.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// fileConfig is the on-disk form; durations are written as "6s" rather than
// nanosecond counts.
type fileConfig struct {
	RebootPackages  []string `yaml:"reboot_packages"`
	SessionPackages []string `yaml:"session_packages"`
	PacmanDB        string   `yaml:"pacman_db"`
	UtmpPath        string   `yaml:"utmp_path"`
	Output          string   `yaml:"output"`
	ExitCode        bool     `yaml:"exit_code"`
	Notify          struct {
		Enabled bool   `yaml:"enabled"`
		Timeout string `yaml:"timeout"`
		Command string `yaml:"command"`
	} `yaml:"notify"`
	Watch struct {
		Interval string `yaml:"interval"`
	} `yaml:"watch"`
}

func toFile(cfg Config) fileConfig {
	var f fileConfig
	f.RebootPackages = cfg.RebootPackages
	f.SessionPackages = cfg.SessionPackages
	f.PacmanDB = cfg.PacmanDB
	f.UtmpPath = cfg.UtmpPath
	f.Output = cfg.Output
	f.ExitCode = cfg.ExitCode
	f.Notify.Enabled = cfg.Notify.Enabled
	f.Notify.Timeout = cfg.Notify.Timeout.String()
	f.Notify.Command = cfg.Notify.Command
	f.Watch.Interval = cfg.Watch.Interval.String()
	return f
}
