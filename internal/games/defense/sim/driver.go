package sim

// Driver turns absolute frame timestamps into simulation steps. The first
// tick after construction or Reprime only records the timestamp.
type Driver struct {
	engine *Engine
	lastMs float64
	primed bool
}

// NewDriver wraps an engine.
func NewDriver(e *Engine) *Driver {
	return &Driver{engine: e}
}

// Engine returns the driven engine.
func (d *Driver) Engine() *Engine {
	return d.engine
}

// FrameTick advances the engine to timestampMs and returns the resulting
// snapshot together with the events raised since the previous tick.
// Repeated or backwards timestamps only deliver pending events.
func (d *Driver) FrameTick(timestampMs float64) (Snapshot, []Event) {
	if !d.primed {
		d.primed = true
		d.lastMs = timestampMs
		return d.engine.Snapshot(), d.engine.DrainEvents()
	}

	dt := timestampMs - d.lastMs
	if dt < 0 {
		dt = 0
	}
	d.lastMs = timestampMs
	events := d.engine.Step(dt)
	return d.engine.Snapshot(), events
}

// Reprime makes the next tick a priming call, so time spent paused is not
// simulated.
func (d *Driver) Reprime() {
	d.primed = false
}
