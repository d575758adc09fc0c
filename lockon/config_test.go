package lockon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		ok     bool
	}{
		{"nearest needs no weights", func(c *Config) { c.Selection = SelectNearest; c.DistanceWeight = 0 }, true},
		{"fail fast ignores timeout", func(c *Config) { c.SearchPolicy = SearchFailFast; c.SearchTimeout = 0 }, true},
		{"gradual restore", func(c *Config) { c.Restore = RestoreGradual }, true},
		{"recenter disabled", func(c *Config) { c.IdleRecenterThreshold = 0 }, true},
		{"zero radius", func(c *Config) { c.LockOnRadius = 0 }, false},
		{"angle over 180", func(c *Config) { c.LockOnAngle = 181 }, false},
		{"negative angle", func(c *Config) { c.LockOnAngle = -1 }, false},
		{"NaN bias", func(c *Config) { c.CenterBias = math.NaN() }, false},
		{"bias over 1", func(c *Config) { c.CenterBias = 1.5 }, false},
		{"break inside radius", func(c *Config) { c.BreakDistance = c.LockOnRadius - 1 }, false},
		{"zero scan interval", func(c *Config) { c.SearchInterval = 0 }, false},
		{"pitch min above zero", func(c *Config) { c.CameraPitchMin = 10 }, false},
		{"pitch max over 90", func(c *Config) { c.CameraPitchMax = 95 }, false},
		{"camera distances swapped", func(c *Config) { c.MaxCameraDistance = c.MinCameraDistance - 1 }, false},
		{"lock-on distances equal", func(c *Config) { c.MaxLockOnDistance = c.MinLockOnDistance }, false},
		{"probe factor over 1", func(c *Config) { c.ProbeShortenFactor = 1.2 }, false},
		{"weights do not sum to 1", func(c *Config) { c.DistanceWeight = 0.5 }, false},
		{"negative weight", func(c *Config) { c.DistanceWeight = -0.4; c.AngleWeight = 1.4 }, false},
		{"timeout policy without timeout", func(c *Config) { c.SearchTimeout = 0 }, false},
		{"timeout shorter than a scan", func(c *Config) { c.SearchTimeout = c.SearchInterval / 2 }, false},
		{"timeout equal to a scan", func(c *Config) { c.SearchTimeout = c.SearchInterval }, true},
		{"script without source", func(c *Config) { c.Selection = SelectScript }, false},
		{"unknown policy", func(c *Config) { c.SearchPolicy = "forever" }, false},
		{"unknown selection", func(c *Config) { c.Selection = "random" }, false},
		{"unknown correction", func(c *Config) { c.ScreenCorrection = "shake" }, false},
		{"unknown restore", func(c *Config) { c.Restore = "" }, false},
		{"boom probe", func(c *Config) { c.ProbeDirection = ProbeBoom }, true},
		{"unknown probe direction", func(c *Config) { c.ProbeDirection = "down" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
