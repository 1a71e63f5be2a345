package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CAPACITY", "MAX_LOAD", "KEYS", "LOG_LEVEL"} {
		t.Setenv(HashsetEnvPrefix+name, "")
		os.Unsetenv(HashsetEnvPrefix + name)
	}
	t.Setenv(HashsetHisFileEnv, "/dev/null")
}

func TestGetDotfilePath(t *testing.T) {
	t.Setenv("HOME", "/home/gopher")
	t.Setenv(HashsetRCFileEnv, "")
	assert.Equal(t, "/home/gopher/.hashsetrc", getDotfilePath(HashsetRCFileEnv, HashsetRCFileDefault))

	t.Setenv(HashsetRCFileEnv, "/etc/hashsetrc")
	assert.Equal(t, "/etc/hashsetrc", getDotfilePath(HashsetRCFileEnv, HashsetRCFileDefault))

	t.Setenv(HashsetRCFileEnv, "/dev/null")
	assert.Equal(t, "", getDotfilePath(HashsetRCFileEnv, HashsetRCFileDefault))
}

func TestLoadPreferencesMissingFile(t *testing.T) {
	prefs, err := loadPreferences(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(HashsetRCFileEnv, "/dev/null")

	cfg, err := loadConfig(NewRootCommand("test").Flags())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capacity)
	assert.Equal(t, 70, cfg.MaxLoad)
	assert.Equal(t, KeysInt, cfg.Keys)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "", cfg.HistFile)
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearEnv(t)
	rc := writeFile(t, "hashsetrc", "CAPACITY=16\nMAX_LOAD=50\nKEYS=string\n# comment\nLOG_LEVEL=info\n")
	t.Setenv(HashsetRCFileEnv, rc)
	t.Setenv(HashsetEnvPrefix+"MAX_LOAD", "60")

	root := NewRootCommand("test")
	require.NoError(t, root.Flags().Parse([]string{"--log-level", "debug"}))

	cfg, err := loadConfig(root.Flags())
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Capacity, "from rc file")
	assert.Equal(t, 60, cfg.MaxLoad, "environment beats rc file")
	assert.Equal(t, KeysString, cfg.Keys)
	assert.Equal(t, "debug", cfg.LogLevel, "flag beats everything")
}

func TestLoadConfigInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(HashsetRCFileEnv, writeFile(t, "hashsetrc", "CAPACITY=lots\n"))

	_, err := loadConfig(NewRootCommand("test").Flags())
	assert.Error(t, err)

	t.Setenv(HashsetRCFileEnv, "/dev/null")
	root := NewRootCommand("test")
	require.NoError(t, root.Flags().Parse([]string{"--keys", "float"}))
	_, err = loadConfig(root.Flags())
	assert.Error(t, err)
}
