package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/fzft/go-hashset/set"
)

var (
	HashsetHisFileEnv     = "HASHSET_HISTFILE"
	HashsetHisFileDefault = ".hashset_history"
	HashsetRCFileEnv      = "HASHSET_RCFILE"
	HashsetRCFileDefault  = ".hashsetrc"
	HashsetEnvPrefix      = "HASHSET_"
)

type KeyMode string

const (
	KeysInt    KeyMode = "int"
	KeysString KeyMode = "string"
)

// Config is the shell configuration. Sources apply in the order defaults,
// rc file, environment, flags; later sources win.
type Config struct {
	Capacity int
	MaxLoad  int
	Keys     KeyMode
	LogLevel string
	File     string
	HistFile string
}

func DefaultConfig() Config {
	return Config{
		Capacity: set.DefaultCapacity,
		MaxLoad:  set.DefaultMaxLoadFactor,
		Keys:     KeysInt,
		LogLevel: "warn",
	}
}

func (c Config) validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.MaxLoad < 1 {
		return fmt.Errorf("max load must be at least 1, got %d", c.MaxLoad)
	}
	if c.Keys != KeysInt && c.Keys != KeysString {
		return fmt.Errorf("keys must be %q or %q, got %q", KeysInt, KeysString, c.Keys)
	}
	return nil
}

// apply sets the fields named in values, e.g. CAPACITY=16.
func (c *Config) apply(values map[string]string, source string) error {
	for name, value := range values {
		var err error
		switch name {
		case "CAPACITY":
			c.Capacity, err = strconv.Atoi(value)
		case "MAX_LOAD":
			c.MaxLoad, err = strconv.Atoi(value)
		case "KEYS":
			c.Keys = KeyMode(value)
		case "LOG_LEVEL":
			c.LogLevel = value
		}
		if err != nil {
			return fmt.Errorf("%s: %s: %w", source, name, err)
		}
	}
	return nil
}

// loadPreferences reads the rc file in dotenv format. A missing file yields
// no preferences.
func loadPreferences(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}
	return values, nil
}

func environment() map[string]string {
	values := map[string]string{}
	for _, name := range []string{"CAPACITY", "MAX_LOAD", "KEYS", "LOG_LEVEL"} {
		if v, ok := os.LookupEnv(HashsetEnvPrefix + name); ok {
			values[name] = v
		}
	}
	return values
}

// loadConfig resolves the configuration. Only flags the user set override
// the other sources.
func loadConfig(flags *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	prefs, err := loadPreferences(getDotfilePath(HashsetRCFileEnv, HashsetRCFileDefault))
	if err != nil {
		return cfg, err
	}
	if err := cfg.apply(prefs, "preferences"); err != nil {
		return cfg, err
	}
	if err := cfg.apply(environment(), "environment"); err != nil {
		return cfg, err
	}

	if flags.Changed("capacity") {
		cfg.Capacity, _ = flags.GetInt("capacity")
	}
	if flags.Changed("max-load") {
		cfg.MaxLoad, _ = flags.GetInt("max-load")
	}
	if flags.Changed("keys") {
		keys, _ := flags.GetString("keys")
		cfg.Keys = KeyMode(keys)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	cfg.File, _ = flags.GetString("file")
	cfg.HistFile = getDotfilePath(HashsetHisFileEnv, HashsetHisFileDefault)

	return cfg, cfg.validate()
}

// getDotfilePath returns the path in envOverride if set, otherwise
// dotFilename under $HOME. "/dev/null" disables the file.
func getDotfilePath(envOverride, dotFilename string) string {
	var dotPath string

	path := os.Getenv(envOverride)
	if path != "" {
		if path == "/dev/null" {
			return ""
		}
		dotPath = path
	} else {
		home := os.Getenv("HOME")
		if home != "" {
			dotPath = fmt.Sprintf("%s/%s", home, dotFilename)
		}
	}
	return dotPath
}
