package sim

import (
	"errors"
	"fmt"
)

// CheckInvariants verifies the structural rules of the world. A violation
// means a bug in the simulation, never a gameplay outcome.
func (e *Engine) CheckInvariants() error {
	w := &e.world
	var errs []error

	if w.State.Score < 0 {
		errs = append(errs, fmt.Errorf("negative score %d", w.State.Score))
	}
	for _, b := range w.Batteries {
		if b.Missiles < 0 || b.Missiles > b.MaxMissiles {
			errs = append(errs, fmt.Errorf("battery %d ammo %d outside [0,%d]", b.ID, b.Missiles, b.MaxMissiles))
		}
	}

	checkMovers := func(name string, list []Entity) {
		for _, m := range list {
			if !m.Active {
				errs = append(errs, fmt.Errorf("inactive %s %d survived prune", name, m.ID))
			}
			if !m.HasTarget {
				errs = append(errs, fmt.Errorf("%s %d has no target", name, m.ID))
			}
		}
	}
	checkMovers("missile", w.Missiles)
	checkMovers("threat", w.Threats)

	for _, ex := range w.Explosions {
		if !ex.Active {
			errs = append(errs, fmt.Errorf("inactive explosion %d survived prune", ex.ID))
		}
		if ex.HasTarget {
			errs = append(errs, fmt.Errorf("explosion %d has a target", ex.ID))
		}
		if ex.Radius < 0 {
			errs = append(errs, fmt.Errorf("explosion %d radius %g is negative", ex.ID, ex.Radius))
		}
		if ex.Radius > ex.MaxRadius+ex.GrowthRate {
			errs = append(errs, fmt.Errorf("explosion %d radius %g overshoots max %g", ex.ID, ex.Radius, ex.MaxRadius))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("sim: invariant violated: %w", errors.Join(errs...))
	}
	return nil
}
