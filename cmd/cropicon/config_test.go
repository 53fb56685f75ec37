package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, defaultIcon, cfg.Source)
	assert.Equal(t, defaultIcon, cfg.Destination)
	assert.Equal(t, 1.1, cfg.Padding)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Quiet)
	assert.NoError(t, cfg.validate())
}

func TestConfig_EnvAndFlags(t *testing.T) {
	t.Setenv("CROPICON_IN", "in.png")
	t.Setenv("CROPICON_OUT", "out.png")
	t.Setenv("CROPICON_PADDING", "1.25")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "in.png", cfg.Source)
	assert.Equal(t, "out.png", cfg.Destination)
	assert.Equal(t, 1.25, cfg.Padding)

	flags := flag.NewFlagSet("cropicon", flag.ContinueOnError)
	bindFlags(flags, &cfg)
	require.NoError(t, flags.Parse([]string{"-out", "-", "-padding", "1.5"}))

	assert.Equal(t, "in.png", cfg.Source)
	assert.Equal(t, "-", cfg.Destination)
	assert.Equal(t, 1.5, cfg.Padding)
}

func TestConfig_Invalid(t *testing.T) {
	t.Setenv("CROPICON_PADDING", "not-a-number")
	_, err := loadConfig()
	assert.Error(t, err)

	cases := map[string]Config{
		"small padding": {Source: "a.png", Destination: "b.png", Padding: 0.5, LogLevel: "info"},
		"no source":     {Destination: "b.png", Padding: 1.1, LogLevel: "info"},
		"bad log level": {Source: "a.png", Destination: "b.png", Padding: 1.1, LogLevel: "loud"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.validate())
		})
	}
}
