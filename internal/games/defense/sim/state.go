package sim

// prune compacts the dynamic collections in place, keeping active entities.
func prune(w *World) {
	w.Missiles = compact(w.Missiles)
	w.Threats = compact(w.Threats)
	w.Explosions = compact(w.Explosions)
}

func compact(entities []Entity) []Entity {
	kept := entities[:0]
	for _, e := range entities {
		if e.Active {
			kept = append(kept, e)
		}
	}
	return kept
}

// evaluateStatus applies the win and loss rules once per frame. Winning is
// checked first, so a frame satisfying both ends as a win.
func evaluateStatus(w *World, ctx *stepContext) {
	if w.State.Status != StatusPlaying {
		return
	}

	if w.State.Score >= ctx.cfg.Scoring.WinScore {
		w.State.Status = StatusWon
		ctx.emit(Event{Kind: EventGameWon})
		return
	}

	if w.allBatteriesDestroyed() && len(w.Threats) == 0 && len(w.Explosions) == 0 {
		w.State.Status = StatusLost
		ctx.emit(Event{Kind: EventGameLost})
	}
}
