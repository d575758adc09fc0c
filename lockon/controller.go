// Package lockon implements camera lock-on: scanning for targets, a small
// Idle/Searching/Locked state machine and per-tick camera framing while
// locked. It knows nothing about the engine driving it; everything it needs
// comes in through Bindings and an explicit Update(dt).
package lockon

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/looplab/fsm"
)

const (
	eventToggleOn = "toggle_on"
	eventAcquire  = "acquire"
	eventAbandon  = "abandon"
	eventRelease  = "release"
)

// Session is the mutable per-lock bookkeeping.
type Session struct {
	Target        EntityID
	TimeOutOfView float64
	SearchElapsed float64
	ScanTimer     float64
	Scans         int
}

type Option func(c *Controller)

// WithSelector overrides the selector the config names.
func WithSelector(s Selector) Option {
	return func(c *Controller) {
		if s != nil {
			c.selector = s
			c.customSelector = true
		}
	}
}

// WithSearchPolicy overrides the search policy the config names.
func WithSearchPolicy(p SearchPolicy) Option {
	return func(c *Controller) {
		if p != nil {
			c.search = p
			c.customSearch = true
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the lock-on component of one owner. It is not safe for
// concurrent use; drive it from a single update loop.
type Controller struct {
	cfg Config

	registry Registry
	geometry Geometry
	owner    Owner
	rig      Rig

	selector       Selector
	customSelector bool
	search         SearchPolicy
	customSearch   bool
	logger         *log.Logger

	machine    *fsm.FSM
	session    Session
	candidates []Candidate

	original       *RigSettings
	restorePending bool
	lastFrame      FrameResult
	framed         bool

	// transitions counts accepted transitions so a notification round can
	// tell that a listener already moved the machine on.
	transitions uint64

	targetChanged listeners[EntityID]
	stateChanged  listeners[State]
}

func NewController(cfg Config, b Bindings, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	c.Bind(b)
	for _, opt := range opts {
		opt(c)
	}
	if c.selector == nil {
		c.selector = selectorFor(cfg)
	}
	if c.search == nil {
		c.search = searchPolicyFor(cfg)
	}

	idle, searching, locked := StateIdle.String(), StateSearching.String(), StateLocked.String()
	c.machine = fsm.NewFSM(idle,
		fsm.Events{
			{Name: eventToggleOn, Src: []string{idle}, Dst: searching},
			{Name: eventAcquire, Src: []string{searching}, Dst: locked},
			{Name: eventAbandon, Src: []string{searching}, Dst: idle},
			{Name: eventRelease, Src: []string{searching, locked}, Dst: idle},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("lock-on transition", "event", e.Event, "from", e.Src, "to", e.Dst, "reason", e.Args)
			},
		},
	)
	return c
}

// Bind replaces the collaborators. Call it whenever a reference appears or
// goes away; nil entries turn the operations that need them into no-ops.
func (c *Controller) Bind(b Bindings) {
	c.registry = b.Registry
	c.geometry = b.Geometry
	c.owner = b.Owner
	c.rig = b.Rig
}

func (c *Controller) Config() Config {
	return c.cfg
}

// SetConfig swaps the tuning values. Selector and search policy follow the
// new config unless they were injected.
func (c *Controller) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	if !c.customSelector {
		c.selector = selectorFor(cfg)
	}
	if !c.customSearch {
		c.search = searchPolicyFor(cfg)
	}
	return nil
}

// SetSelector injects a selector, e.g. after a selection script reloads.
func (c *Controller) SetSelector(s Selector) {
	if s == nil {
		c.customSelector = false
		c.selector = selectorFor(c.cfg)
		return
	}
	c.selector = s
	c.customSelector = true
}

// OnTargetChanged registers fn for target changes; NoTarget means the lock
// was released. The returned func unsubscribes.
func (c *Controller) OnTargetChanged(fn func(EntityID)) func() {
	return c.targetChanged.add(fn)
}

// OnStateChanged registers fn for state transitions.
func (c *Controller) OnStateChanged(fn func(State)) func() {
	return c.stateChanged.add(fn)
}

func (c *Controller) CurrentState() State {
	return parseState(c.machine.Current())
}

func (c *Controller) IsLockedOn() bool {
	return c.CurrentState() == StateLocked
}

// CurrentTarget returns the locked target's handle. It only reports true
// while Locked.
func (c *Controller) CurrentTarget() (EntityID, bool) {
	if !c.IsLockedOn() || c.session.Target == NoTarget {
		return NoTarget, false
	}
	return c.session.Target, true
}

func (c *Controller) Session() Session {
	return c.session
}

// Candidates returns the result of the most recent scan.
func (c *Controller) Candidates() []Candidate {
	return c.candidates
}

// Toggle starts a search when not locked and releases the lock when locked.
// Toggling while already searching restarts the search.
func (c *Controller) Toggle() {
	switch c.CurrentState() {
	case StateLocked:
		c.transition(eventRelease, NoTarget, "toggle")
	case StateSearching:
		c.resetTimers()
	default:
		if c.owner == nil || c.rig == nil {
			return
		}
		c.transition(eventToggleOn, NoTarget, "toggle")
	}
}

// Clear releases any lock or search. It does nothing when already Idle.
func (c *Controller) Clear() {
	if c.CurrentState() == StateIdle {
		return
	}
	c.transition(eventRelease, NoTarget, "clear")
}

// SwitchTarget moves the lock to the candidate lying furthest in dir from
// the current target, as seen from the camera. dir.X is screen right and
// dir.Y screen up. Nothing happens unless a better-aligned candidate exists.
func (c *Controller) SwitchTarget(dir mgl64.Vec2) {
	if !c.IsLockedOn() || c.owner == nil || c.rig == nil || c.geometry == nil {
		return
	}
	if dir.Len() < c.cfg.SwitchDeadzone {
		return
	}
	current, ok := c.resolveTarget()
	if !ok {
		return
	}

	camFwd := c.rig.Forward()
	flatFwd := safeNormal(mgl64.Vec3{camFwd.X(), camFwd.Y(), 0})
	right := flatFwd.Cross(worldUp)
	want := safeNormal(right.Mul(dir.X()).Add(flatFwd.Mul(dir.Y())))
	if want.LenSqr() == 0 {
		return
	}

	ownerPos := c.owner.Position()
	currentDir := safeNormal(current.Position().Sub(ownerPos))

	var best Candidate
	bestScore := 0.0
	found := false
	for _, cand := range c.FindCandidates() {
		if cand.ID == current.ID() {
			continue
		}
		align := want.Dot(safeNormal(cand.Direction.Sub(currentDir)))
		if align < c.cfg.SwitchMinAlignment {
			continue
		}
		score := align
		if c.cfg.LockOnRadius > 0 {
			score -= c.cfg.SwitchDistanceWeight * cand.Distance / c.cfg.LockOnRadius
		}
		if !found || score > bestScore {
			best, bestScore, found = cand, score, true
		}
	}
	if !found {
		return
	}

	c.logger.Debug("lock-on switch", "from", current.ID(), "to", best.ID)
	c.session.Target = best.ID
	c.session.TimeOutOfView = 0
	c.targetChanged.emit(best.ID)
}

// Update advances the controller by dt seconds.
func (c *Controller) Update(dt float64) {
	if dt < 0 {
		return
	}
	switch c.CurrentState() {
	case StateLocked:
		c.updateLocked(dt)
	case StateSearching:
		c.updateSearching(dt)
	default:
		c.updateIdle(dt)
	}
}

func (c *Controller) updateSearching(dt float64) {
	s := &c.session
	s.SearchElapsed += dt
	s.ScanTimer += dt

	if s.ScanTimer+1e-9 < c.cfg.SearchInterval {
		if c.search.Abandon(SearchStatus{Elapsed: s.SearchElapsed, Scans: s.Scans}) {
			c.transition(eventAbandon, NoTarget, "search timeout")
		}
		return
	}

	s.ScanTimer = 0
	s.Scans++
	if best, ok := c.SelectBest(); ok {
		c.transition(eventAcquire, best.ID, "acquired")
		return
	}
	if c.search.Abandon(SearchStatus{Elapsed: s.SearchElapsed, Scans: s.Scans, LastScanEmpty: true}) {
		c.transition(eventAbandon, NoTarget, "no candidates")
	}
}

func (c *Controller) updateLocked(dt float64) {
	if c.registry == nil {
		return
	}
	target, ok := c.resolveTarget()
	if !ok {
		c.transition(eventRelease, NoTarget, "target invalid")
		return
	}
	if c.owner == nil {
		return
	}
	if target.Position().Sub(c.owner.Position()).Len() > c.cfg.BreakDistance {
		c.transition(eventRelease, NoTarget, "break distance")
		return
	}
	if c.rig == nil || c.geometry == nil {
		return
	}

	if c.InView(target) {
		c.session.TimeOutOfView = 0
	} else {
		c.session.TimeOutOfView += dt
		if c.session.TimeOutOfView > c.cfg.MaxTimeOutOfView {
			c.transition(eventRelease, NoTarget, "out of view")
			return
		}
	}

	c.frame(target, dt)
}

func (c *Controller) frame(target Target, dt float64) {
	c.captureOriginal()
	settings := c.rig.Settings()
	res := Framer{Config: c.cfg}.Frame(FrameInput{
		OwnerPos:  c.owner.Position(),
		TargetPos: target.Position(),
		ArmLength: settings.ArmLength,
		Rotation:  c.owner.ControlRotation(),
		DT:        dt,
	}, c.geometry, c.ignoreSet(target.ID())...)

	settings.ArmLength = res.ArmLength
	c.rig.Apply(settings)
	c.rig.SetFocus(res.Focus)
	c.owner.SetControlRotation(res.Rotation)
	c.lastFrame = res
	c.framed = true
}

func (c *Controller) updateIdle(dt float64) {
	if c.restorePending {
		c.restore(dt)
		return
	}
	c.recenter(dt)
}

// captureOriginal snapshots the rig the first time it is about to be
// modified. Later locks restore to this same snapshot.
func (c *Controller) captureOriginal() {
	if c.original != nil || c.rig == nil {
		return
	}
	s := c.rig.Settings()
	c.original = &s
}

// OriginalSettings returns the snapshot taken on first lock.
func (c *Controller) OriginalSettings() (RigSettings, bool) {
	if c.original == nil {
		return RigSettings{}, false
	}
	return *c.original, true
}

func (c *Controller) restore(dt float64) {
	if c.original == nil {
		c.restorePending = false
		return
	}
	if c.rig == nil {
		return
	}
	c.rig.ClearFocus()

	if c.cfg.Restore != RestoreGradual {
		c.rig.Apply(*c.original)
		if c.owner != nil {
			r := c.owner.ControlRotation()
			c.owner.SetControlRotation(Rotator{Yaw: r.Yaw})
		}
		c.restorePending = false
		return
	}

	cur := c.rig.Settings()
	next := RigSettings{
		ArmLength:    InterpTo(cur.ArmLength, c.original.ArmLength, dt, c.cfg.ArmLengthInterpSpeed),
		SocketOffset: VInterpTo(cur.SocketOffset, c.original.SocketOffset, dt, c.cfg.ArmLengthInterpSpeed),
	}
	done := abs(next.ArmLength-c.original.ArmLength) <= c.cfg.RestoreSnapEpsilon &&
		next.SocketOffset.Sub(c.original.SocketOffset).Len() <= c.cfg.RestoreSnapEpsilon
	if done {
		next = *c.original
	}
	c.rig.Apply(next)

	if c.owner != nil {
		r := c.owner.ControlRotation()
		level := Rotator{Yaw: r.Yaw}
		if done {
			c.owner.SetControlRotation(level)
		} else {
			c.owner.SetControlRotation(RInterpTo(r, level, dt, c.cfg.CameraRotationInterpSpeed))
		}
	}
	c.restorePending = !done
}

// recenter eases the free camera back toward the owner once the owner drifts
// too far from screen centre.
func (c *Controller) recenter(dt float64) {
	if c.cfg.IdleRecenterThreshold <= 0 || c.owner == nil || c.rig == nil || c.geometry == nil {
		return
	}
	ownerPos := c.owner.Position()
	screen, ok := c.geometry.ProjectToScreen(ownerPos)
	if !ok {
		return
	}
	w, h := c.geometry.ViewportSize()
	if w <= 0 || h <= 0 {
		return
	}
	if screen.Sub(mgl64.Vec2{w * 0.5, h * 0.5}).Len() <= w*c.cfg.IdleRecenterThreshold {
		return
	}
	look := RotationOf(safeNormal(ownerPos.Sub(c.rig.Location())))
	c.owner.SetControlRotation(RInterpTo(c.owner.ControlRotation(), look, dt, c.cfg.CameraRotationInterpSpeed))
}

func (c *Controller) resetTimers() {
	c.session.TimeOutOfView = 0
	c.session.SearchElapsed = 0
	c.session.ScanTimer = 0
	c.session.Scans = 0
}

// transition fires event on the state machine and, when it is accepted,
// updates the session, hands the rig back if the lock ended and notifies
// listeners. Listeners run after the state is committed; when one of them
// triggers another transition, the newer round's notifications stand and the
// rest of this round is dropped.
func (c *Controller) transition(event string, target EntityID, reason string) bool {
	from := c.CurrentState()
	if err := c.machine.Event(context.Background(), event, reason); err != nil {
		c.logger.Debug("lock-on transition rejected", "event", event, "err", err)
		return false
	}
	to := c.CurrentState()
	c.transitions++
	seq := c.transitions

	c.resetTimers()
	c.session.Target = target
	c.framed = false

	switch {
	case from == StateLocked && to != StateLocked:
		c.restorePending = true
		c.restore(0)
	case to == StateLocked:
		c.restorePending = false
		c.captureOriginal()
	}

	c.targetChanged.emit(target)
	if c.transitions != seq {
		return true
	}
	c.stateChanged.emit(to)
	return true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
