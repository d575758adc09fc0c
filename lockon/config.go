package lockon

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidConfig = errors.New("lockon: invalid config")

type SearchPolicyKind string

const (
	// SearchFailFast gives up on the first scan that finds nothing.
	SearchFailFast SearchPolicyKind = "fail_fast"
	// SearchTimeout keeps scanning until SearchTimeout seconds have passed.
	SearchTimeout SearchPolicyKind = "timeout"
	// SearchPersistent keeps scanning until toggled off or cleared.
	SearchPersistent SearchPolicyKind = "persistent"
)

type SelectionKind string

const (
	SelectNearest  SelectionKind = "nearest"
	SelectWeighted SelectionKind = "weighted"
	SelectScript   SelectionKind = "script"
)

type CorrectionKind string

const (
	CorrectNone          CorrectionKind = "none"
	CorrectRotationBoost CorrectionKind = "rotation_boost"
	CorrectRebias        CorrectionKind = "rebias"
)

// ProbeKind picks which way the framing collision probe is cast from the
// focus point.
type ProbeKind string

const (
	// ProbeLook casts toward the target, shortening the arm when something
	// stands between the focus and what the camera looks at.
	ProbeLook ProbeKind = "look"
	// ProbeBoom casts back along the boom toward where the camera sits.
	ProbeBoom ProbeKind = "boom"
)

type RestoreKind string

const (
	RestoreInstant RestoreKind = "instant"
	RestoreGradual RestoreKind = "gradual"
)

// Config is the full set of lock-on tuning values. Distances are world units,
// angles degrees, times seconds and speeds 1/seconds.
type Config struct {
	LockOnRadius     float64          `yaml:"lock_on_radius"`
	LockOnAngle      float64          `yaml:"lock_on_angle"`
	BreakDistance    float64          `yaml:"break_distance"`
	SearchInterval   float64          `yaml:"search_interval"`
	SearchPolicy     SearchPolicyKind `yaml:"search_policy"`
	SearchTimeout    float64          `yaml:"search_timeout"`
	MaxTimeOutOfView float64          `yaml:"max_time_out_of_view"`

	Selection       SelectionKind `yaml:"selection"`
	DistanceWeight  float64       `yaml:"distance_weight"`
	AngleWeight     float64       `yaml:"angle_weight"`
	SelectionScript string        `yaml:"selection_script"`

	SwitchDeadzone       float64 `yaml:"switch_deadzone"`
	SwitchMinAlignment   float64 `yaml:"switch_min_alignment"`
	SwitchDistanceWeight float64 `yaml:"switch_distance_weight"`

	CenterBias                float64 `yaml:"center_bias"`
	HeightOffset              float64 `yaml:"height_offset"`
	ArmLengthInterpSpeed      float64 `yaml:"arm_length_interp_speed"`
	CameraRotationInterpSpeed float64 `yaml:"camera_rotation_interp_speed"`
	CameraPitchMin            float64 `yaml:"camera_pitch_min"`
	CameraPitchMax            float64 `yaml:"camera_pitch_max"`
	MinCameraDistance         float64 `yaml:"min_camera_distance"`
	MaxCameraDistance         float64 `yaml:"max_camera_distance"`
	MinLockOnDistance         float64 `yaml:"min_lock_on_distance"`
	MaxLockOnDistance         float64 `yaml:"max_lock_on_distance"`

	ProbeDirection     ProbeKind `yaml:"probe_direction"`
	ProbeShortenFactor float64   `yaml:"probe_shorten_factor"`

	ScreenCorrection          CorrectionKind `yaml:"screen_correction"`
	ScreenCorrectionThreshold float64        `yaml:"screen_correction_threshold"`
	IdleRecenterThreshold     float64        `yaml:"idle_recenter_threshold"`

	Restore            RestoreKind `yaml:"restore"`
	RestoreSnapEpsilon float64     `yaml:"restore_snap_epsilon"`
}

// DefaultConfig mirrors the shipped "default" preset.
func DefaultConfig() Config {
	return Config{
		LockOnRadius:     1000,
		LockOnAngle:      45,
		BreakDistance:    1500,
		SearchInterval:   0.1,
		SearchPolicy:     SearchTimeout,
		SearchTimeout:    0.2,
		MaxTimeOutOfView: 1,

		Selection:      SelectWeighted,
		DistanceWeight: 0.4,
		AngleWeight:    0.6,

		SwitchDeadzone:       0.5,
		SwitchMinAlignment:   0.3,
		SwitchDistanceWeight: 0.25,

		CenterBias:                0.35,
		HeightOffset:              100,
		ArmLengthInterpSpeed:      5,
		CameraRotationInterpSpeed: 10,
		CameraPitchMin:            -45,
		CameraPitchMax:            45,
		MinCameraDistance:         200,
		MaxCameraDistance:         500,
		MinLockOnDistance:         100,
		MaxLockOnDistance:         1000,
		ProbeDirection:            ProbeLook,
		ProbeShortenFactor:        0.8,

		ScreenCorrection:          CorrectRotationBoost,
		ScreenCorrectionThreshold: 0.3,
		IdleRecenterThreshold:     0.2,

		Restore:            RestoreInstant,
		RestoreSnapEpsilon: 0.5,
	}
}

// Validate checks the ranges the tuning values are meaningful in.
func (c Config) Validate() error {
	checks := []struct {
		name   string
		value  float64
		lo, hi float64
	}{
		{"lock_on_radius", c.LockOnRadius, 1, math.Inf(1)},
		{"lock_on_angle", c.LockOnAngle, 0, 180},
		{"break_distance", c.BreakDistance, 0, math.Inf(1)},
		{"search_interval", c.SearchInterval, 1e-3, math.Inf(1)},
		{"max_time_out_of_view", c.MaxTimeOutOfView, 0, math.Inf(1)},
		{"center_bias", c.CenterBias, 0, 1},
		{"camera_pitch_min", c.CameraPitchMin, -90, 0},
		{"camera_pitch_max", c.CameraPitchMax, 0, 90},
		{"min_camera_distance", c.MinCameraDistance, 0, math.Inf(1)},
		{"probe_shorten_factor", c.ProbeShortenFactor, 0, 1},
		{"screen_correction_threshold", c.ScreenCorrectionThreshold, 0, 1},
		{"idle_recenter_threshold", c.IdleRecenterThreshold, 0, 1},
		{"switch_min_alignment", c.SwitchMinAlignment, -1, 1},
	}
	for _, ck := range checks {
		if math.IsNaN(ck.value) || ck.value < ck.lo || ck.value > ck.hi {
			return fmt.Errorf("%w: %s=%v outside [%v, %v]", ErrInvalidConfig, ck.name, ck.value, ck.lo, ck.hi)
		}
	}

	if c.BreakDistance < c.LockOnRadius {
		return fmt.Errorf("%w: break_distance %v below lock_on_radius %v", ErrInvalidConfig, c.BreakDistance, c.LockOnRadius)
	}
	if c.MaxCameraDistance < c.MinCameraDistance {
		return fmt.Errorf("%w: max_camera_distance below min_camera_distance", ErrInvalidConfig)
	}
	if c.MaxLockOnDistance <= c.MinLockOnDistance {
		return fmt.Errorf("%w: max_lock_on_distance must exceed min_lock_on_distance", ErrInvalidConfig)
	}

	switch c.SearchPolicy {
	case SearchFailFast, SearchPersistent:
	case SearchTimeout:
		if c.SearchTimeout <= 0 {
			return fmt.Errorf("%w: search_timeout must be positive for the timeout policy", ErrInvalidConfig)
		}
		// A shorter timeout gives up before the first scan runs.
		if c.SearchTimeout < c.SearchInterval {
			return fmt.Errorf("%w: search_timeout %v below search_interval %v", ErrInvalidConfig, c.SearchTimeout, c.SearchInterval)
		}
	default:
		return fmt.Errorf("%w: unknown search_policy %q", ErrInvalidConfig, c.SearchPolicy)
	}

	switch c.Selection {
	case SelectNearest:
	case SelectWeighted:
		if c.DistanceWeight < 0 || c.AngleWeight < 0 || math.Abs(c.DistanceWeight+c.AngleWeight-1) > 1e-6 {
			return fmt.Errorf("%w: distance_weight + angle_weight must be 1", ErrInvalidConfig)
		}
	case SelectScript:
		if c.SelectionScript == "" {
			return fmt.Errorf("%w: selection_script required for script selection", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown selection %q", ErrInvalidConfig, c.Selection)
	}

	switch c.ProbeDirection {
	case ProbeLook, ProbeBoom:
	default:
		return fmt.Errorf("%w: unknown probe_direction %q", ErrInvalidConfig, c.ProbeDirection)
	}

	switch c.ScreenCorrection {
	case CorrectNone, CorrectRotationBoost, CorrectRebias:
	default:
		return fmt.Errorf("%w: unknown screen_correction %q", ErrInvalidConfig, c.ScreenCorrection)
	}

	switch c.Restore {
	case RestoreInstant, RestoreGradual:
	default:
		return fmt.Errorf("%w: unknown restore %q", ErrInvalidConfig, c.Restore)
	}

	return nil
}
