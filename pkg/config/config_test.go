package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nirav-vruttitech/taskreminder/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	cfg := config.MustLoad(filepath.Join(t.TempDir(), "does-not-exist.yml"))

	assert.Equal("tasks.sqlite", cfg.DBFile)
	assert.Equal("taskreminder.log", cfg.LogFile)
	assert.Equal("info", cfg.LogLevel)
	assert.Equal("1", cfg.ChannelID)
	assert.Equal("Default Channel", cfg.ChannelName)
}

func TestMustLoadYamlOverrides(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := "db_file: /tmp/other.sqlite\nlog_level: debug\n"

	err := os.WriteFile(path, []byte(yaml), 0o600)
	assert.Nil(err)

	cfg := config.MustLoad(path)

	assert.Equal("/tmp/other.sqlite", cfg.DBFile)
	assert.Equal("debug", cfg.LogLevel)
	assert.Equal("1", cfg.ChannelID)
}
