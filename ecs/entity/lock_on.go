package entity

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/lockon/ecs"
	"github.com/milk9111/lockon/ecs/component"
	"github.com/milk9111/lockon/lockon"
	"github.com/milk9111/lockon/lockon/script"
	"github.com/milk9111/lockon/prefabs"
)

// scriptBudget caps a single score call. A scan calls it once per candidate
// inside one frame.
const scriptBudget = 2 * time.Millisecond

func addLockOn(w *ecs.World, e ecs.Entity, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LockOnComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lock_on spec: %w", err)
	}
	if ctx.Presets == nil {
		presets, err := prefabs.LoadLockOnPresets()
		if err != nil {
			return err
		}
		ctx.Presets = presets
	}

	preset := spec.Preset
	if ctx.Preset != "" {
		preset = ctx.Preset
	}
	if preset == "" {
		preset = ctx.Presets.Default
	}
	cfg, err := ctx.Presets.Preset(preset)
	if err != nil {
		return err
	}

	logger := ctx.logger().WithPrefix("lockon")
	ctrl := lockon.NewController(cfg, lockon.Bindings{}, lockon.WithLogger(logger))
	if err := applySelector(ctrl, cfg, logger); err != nil {
		return err
	}
	return ecs.Add(w, e, component.LockOnComponent.Kind(), &component.LockOn{Controller: ctrl, Preset: preset})
}

// ApplyPreset switches a live controller to the named preset. The controller
// keeps its state and session; an invalid preset leaves it untouched.
func ApplyPreset(lo *component.LockOn, presets *prefabs.LockOnPresets, name string, logger *log.Logger) error {
	if lo == nil || lo.Controller == nil {
		return fmt.Errorf("apply preset: no controller")
	}
	cfg, err := presets.Preset(name)
	if err != nil {
		return err
	}
	if name == "" {
		name = presets.Default
	}

	if logger == nil {
		logger = log.Default()
	}
	selector, err := selectorFor(cfg, logger)
	if err != nil {
		return err
	}
	if err := lo.Controller.SetConfig(cfg); err != nil {
		return err
	}
	lo.Controller.SetSelector(selector)
	lo.Preset = name
	return nil
}

func applySelector(ctrl *lockon.Controller, cfg lockon.Config, logger *log.Logger) error {
	selector, err := selectorFor(cfg, logger)
	if err != nil {
		return err
	}
	ctrl.SetSelector(selector)
	return nil
}

// selectorFor compiles the selection script a config names. Built-in
// selections return nil so the controller picks its own.
func selectorFor(cfg lockon.Config, logger *log.Logger) (lockon.Selector, error) {
	if cfg.Selection != lockon.SelectScript {
		return nil, nil
	}
	src, err := prefabs.LoadScript(cfg.SelectionScript)
	if err != nil {
		return nil, fmt.Errorf("load selection script %q: %w", cfg.SelectionScript, err)
	}
	s, err := script.New(cfg.SelectionScript, src, script.WithLogger(logger), script.WithBudget(scriptBudget))
	if err != nil {
		return nil, err
	}
	logger.Debug("selection script compiled", "script", s.Name())
	return s, nil
}
