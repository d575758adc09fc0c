package lockon

import (
	"cmp"
	"slices"
)

// InRange reports whether t is within the lock-on radius and inside the
// lock-on cone around the owner's forward vector.
func (c *Controller) InRange(t Target) bool {
	if t == nil || c.owner == nil {
		return false
	}
	toTarget := t.Position().Sub(c.owner.Position())
	if toTarget.Len() > c.cfg.LockOnRadius {
		return false
	}
	return angleBetween(c.owner.Forward(), toTarget) <= c.cfg.LockOnAngle
}

// InView reports whether t is inside the camera's lock-on cone with a clear
// line of sight from the camera. The owner and t never block the ray.
func (c *Controller) InView(t Target) bool {
	if t == nil || c.rig == nil || c.geometry == nil {
		return false
	}
	camera := c.rig.Location()
	if angleBetween(c.rig.Forward(), t.Position().Sub(camera)) > c.cfg.LockOnAngle {
		return false
	}
	_, blocked := c.geometry.Raycast(camera, t.Position(), c.ignoreSet(t.ID())...)
	return !blocked
}

func (c *Controller) ignoreSet(target EntityID) []EntityID {
	if c.owner == nil {
		return []EntityID{target}
	}
	return []EntityID{c.owner.ID(), target}
}

func (c *Controller) valid(t Target) bool {
	return t != nil && t.Alive()
}

// resolveTarget re-validates the current handle against the registry.
func (c *Controller) resolveTarget() (Target, bool) {
	if c.session.Target == NoTarget || c.registry == nil {
		return nil, false
	}
	t, ok := c.registry.Lookup(c.session.Target)
	if !ok || !c.valid(t) {
		return nil, false
	}
	return t, true
}

// FindCandidates scans the registry for targets that are alive, in range and
// in view, ordered by ascending distance from the owner. Equal distances keep
// registry order.
func (c *Controller) FindCandidates() []Candidate {
	if c.registry == nil || c.owner == nil || c.rig == nil || c.geometry == nil {
		return nil
	}

	ownerID := c.owner.ID()
	ownerPos := c.owner.Position()
	cameraPos := c.rig.Location()
	cameraFwd := safeNormal(c.rig.Forward())

	var out []Candidate
	for _, t := range c.registry.Targets() {
		if t == nil || t.ID() == ownerID || !c.valid(t) {
			continue
		}
		if !c.InRange(t) || !c.InView(t) {
			continue
		}
		pos := t.Position()
		toTarget := pos.Sub(ownerPos)
		dir := safeNormal(toTarget)
		out = append(out, Candidate{
			ID:        t.ID(),
			Position:  pos,
			Distance:  toTarget.Len(),
			Direction: dir,
			Dot:       cameraFwd.Dot(dir),
			Angle:     angleBetween(cameraFwd, pos.Sub(cameraPos)),
		})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	c.candidates = out
	return out
}

// SelectBest scans and hands the candidates to the active selector.
func (c *Controller) SelectBest() (Candidate, bool) {
	return c.selector.Select(c.FindCandidates(), c.cfg.LockOnRadius)
}
