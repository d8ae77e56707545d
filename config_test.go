package epicycles

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 5000, c.NumSamples)
	assert.Equal(t, 0.999, c.EnergyThreshold)
	assert.Equal(t, 100, c.MinEpicycles)
	assert.Equal(t, 2000, c.MaxEpicycles)
	assert.Equal(t, 8.0, c.ScaleFactor)
}

func TestConfigValidation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tests := []struct {
		name   string
		modify func(*Config)
		key    string
	}{
		{"zero threshold", func(c *Config) { c.EnergyThreshold = 0 }, KeyEnergyThreshold},
		{"threshold above 1", func(c *Config) { c.EnergyThreshold = 1.01 }, KeyEnergyThreshold},
		{"NaN threshold", func(c *Config) { c.EnergyThreshold = math.NaN() }, KeyEnergyThreshold},
		{"min above max", func(c *Config) { c.MinEpicycles, c.MaxEpicycles = 10, 5 }, KeyMinEpicycles},
		{"max below 1", func(c *Config) { c.MinEpicycles, c.MaxEpicycles = 0, 0 }, KeyMaxEpicycles},
		{"min below 1", func(c *Config) { c.MinEpicycles = 0 }, KeyMinEpicycles},
		{"one sample", func(c *Config) { c.NumSamples = 1 }, KeyNumSamples},
		{"zero scale", func(c *Config) { c.ScaleFactor = 0 }, KeyScaleFactor},
		{"infinite scale", func(c *Config) { c.ScaleFactor = math.Inf(1) }, KeyScaleFactor},
		{"unknown order", func(c *Config) { c.Order = Order(7) }, KeyOrder},
		{"unknown policy", func(c *Config) { c.OpenPaths = OpenPathPolicy(-1) }, KeyOpenPaths},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
			assert.False(t, errors.Is(err, ErrInvalidPath))
			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.key, cerr.Key)
		})
	}
}

func TestThresholdOneIsValid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := DefaultConfig()
	c.EnergyThreshold = 1
	assert.NoError(t, c.Validate())
}

func TestConfigFromSettings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf := testconfig.Conf{
		KeyNumSamples:      "256",
		KeyEnergyThreshold: "0.95",
		KeyMinEpicycles:    "5",
		KeyMaxEpicycles:    "40",
		KeyScaleFactor:     "2.5",
		KeyNormalize:       "false",
		KeyOrder:           "magnitude",
		KeyOpenPaths:       "close",
	}
	c, err := ConfigFrom(conf)
	require.NoError(t, err)
	assert.Equal(t, 256, c.NumSamples)
	assert.Equal(t, 0.95, c.EnergyThreshold)
	assert.Equal(t, 5, c.MinEpicycles)
	assert.Equal(t, 40, c.MaxEpicycles)
	assert.Equal(t, 2.5, c.ScaleFactor)
	assert.False(t, c.Normalize)
	assert.Equal(t, ByMagnitude, c.Order)
	assert.Equal(t, OpenClose, c.OpenPaths)
}

func TestConfigFromKeepsDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c, err := ConfigFrom(testconfig.Conf{KeyMinEpicycles: "3"})
	require.NoError(t, err)
	d := DefaultConfig()
	d.MinEpicycles = 3
	assert.Equal(t, d, c)
}

func TestConfigFromRejectsBadValues(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := ConfigFrom(testconfig.Conf{KeyEnergyThreshold: "lots"})
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = ConfigFrom(testconfig.Conf{KeyOrder: "random"})
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = ConfigFrom(testconfig.Conf{KeyMinEpicycles: "50", KeyMaxEpicycles: "10"})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestInvalidPathError(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	err := InvalidPath("total length %g", 0.0)
	assert.True(t, errors.Is(err, ErrInvalidPath))
	assert.False(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, "invalid path: total length 0", err.Error())
}
