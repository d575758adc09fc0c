package lockon

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lockon/common"
)

// Framer computes where a locked camera should sit for one tick.
type Framer struct {
	Config Config
}

type FrameInput struct {
	OwnerPos  mgl64.Vec3
	TargetPos mgl64.Vec3
	ArmLength float64
	Rotation  Rotator
	DT        float64
}

type FrameResult struct {
	Focus     mgl64.Vec3
	ArmLength float64
	Rotation  Rotator
	Desired   Rotator
	Blocked   bool
	// Strength is the screen correction applied this tick, in [0, 1].
	Strength float64
}

// Frame runs the framing steps: focus point, distance-driven arm length,
// eased look rotation with clamped pitch, collision probe and screen
// correction. The projection it corrects against is the camera view of the
// previous tick, so the correction strength is measured before anything moves.
func (f Framer) Frame(in FrameInput, geo Geometry, ignore ...EntityID) FrameResult {
	cfg := f.Config
	strength := f.correctionStrength(in.TargetPos, geo)

	bias := cfg.CenterBias
	if cfg.ScreenCorrection == CorrectRebias && strength > 0 {
		bias = common.Lerp(bias, 0.5, strength)
	}
	focus := mgl64.Vec3{
		common.Lerp(in.OwnerPos.X(), in.TargetPos.X(), bias),
		common.Lerp(in.OwnerPos.Y(), in.TargetPos.Y(), bias),
		common.Lerp(in.OwnerPos.Z(), in.TargetPos.Z(), bias) + cfg.HeightOffset,
	}

	dist := in.TargetPos.Sub(in.OwnerPos).Len()
	desiredArm := common.Lerp(cfg.MinCameraDistance, cfg.MaxCameraDistance,
		common.InverseLerp(cfg.MinLockOnDistance, cfg.MaxLockOnDistance, dist))
	arm := InterpTo(in.ArmLength, desiredArm, in.DT, cfg.ArmLengthInterpSpeed)

	desired := RotationOf(safeNormal(in.TargetPos.Sub(focus)))
	rot := f.clampPitch(RInterpTo(in.Rotation, desired, in.DT, cfg.CameraRotationInterpSpeed))
	if cfg.ScreenCorrection == CorrectRotationBoost && strength > 0 {
		rot = f.clampPitch(RInterpTo(rot, desired, in.DT, cfg.CameraRotationInterpSpeed*(1+strength)))
	}

	blocked := false
	if geo != nil && arm > 0 {
		if hit, ok := geo.Raycast(focus, f.probeEnd(focus, rot, arm), ignore...); ok {
			blocked = true
			if safe := hit.Distance * cfg.ProbeShortenFactor; safe < arm {
				arm = safe
			}
		}
	}

	return FrameResult{
		Focus:     focus,
		ArmLength: arm,
		Rotation:  rot,
		Desired:   desired,
		Blocked:   blocked,
		Strength:  strength,
	}
}

// probeEnd is where the collision probe stops: an arm length along the look
// direction, or back along the boom for ProbeBoom.
func (f Framer) probeEnd(focus mgl64.Vec3, rot Rotator, arm float64) mgl64.Vec3 {
	step := rot.Vector().Mul(arm)
	if f.Config.ProbeDirection == ProbeBoom {
		return focus.Sub(step)
	}
	return focus.Add(step)
}

func (f Framer) clampPitch(r Rotator) Rotator {
	r.Pitch = mgl64.Clamp(r.Pitch, f.Config.CameraPitchMin, f.Config.CameraPitchMax)
	return r
}

// correctionStrength grows with how far the target has drifted from screen
// centre once past the threshold, and saturates at half a viewport width.
func (f Framer) correctionStrength(target mgl64.Vec3, geo Geometry) float64 {
	if geo == nil || f.Config.ScreenCorrection == CorrectNone || f.Config.ScreenCorrection == "" {
		return 0
	}
	screen, ok := geo.ProjectToScreen(target)
	if !ok {
		return 0
	}
	w, h := geo.ViewportSize()
	if w <= 0 || h <= 0 {
		return 0
	}
	offset := screen.Sub(mgl64.Vec2{w * 0.5, h * 0.5}).Len()
	if offset <= w*f.Config.ScreenCorrectionThreshold {
		return 0
	}
	return common.Clamp01(offset / (w * 0.5))
}
