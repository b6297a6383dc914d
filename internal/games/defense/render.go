package defense

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/tui-defense/internal/config"
	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/games/defense/sim"
)

// Visual characters for rendering
const (
	ThreatChar     = '*'
	MissileChar    = '^'
	TrailChar      = '.'
	CrosshairChar  = '+'
	TargetChar     = 'x'
	PlayerBlastCh  = '#'
	ThreatBlastCh  = '%'
	GroundChar     = '▀'
	SeparatorChar  = '─'
	DestroyedGlyph = "..."
)

// Minimum terminal size for a playable layout
const (
	minScreenW = 40
	minScreenH = 16
)

// viewport maps playfield units to screen cells. Row 0 holds the HUD, row 1 a
// separator and the last row the battery panel.
type viewport struct {
	field    core.Rect
	width    float64
	height   float64
	tooSmall bool
}

func newViewport(screenW, screenH int, pf config.PlayfieldConfig) viewport {
	return viewport{
		field:    core.NewRect(0, 2, core.Max(screenW, 1), core.Max(screenH-3, 1)),
		width:    pf.Width,
		height:   pf.Height,
		tooSmall: screenW < minScreenW || screenH < minScreenH,
	}
}

// cellSize returns the playfield extent of one cell.
func (v viewport) cellSize() (float64, float64) {
	return v.width / float64(v.field.W), v.height / float64(v.field.H)
}

// toCell maps a playfield point to the cell containing it.
func (v viewport) toCell(p core.Vec2) (int, int) {
	cw, ch := v.cellSize()
	return v.field.X + int(math.Floor(p.X/cw)), v.field.Y + int(math.Floor(p.Y/ch))
}

// toField maps a cell to the playfield point at its center.
func (v viewport) toField(x, y int) (core.Vec2, bool) {
	if !v.field.Contains(x, y) {
		return core.Vec2{}, false
	}
	cw, ch := v.cellSize()
	return core.V((float64(x-v.field.X)+0.5)*cw, (float64(y-v.field.Y)+0.5)*ch), true
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.view.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderHUD(dst)
	g.renderGround(dst)
	for _, ex := range g.snap.Explosions {
		g.renderExplosion(dst, ex)
	}
	for _, t := range g.snap.Threats {
		g.renderMover(dst, t, ThreatChar, core.ColorBrightRed, core.ColorRed)
	}
	for _, m := range g.snap.Missiles {
		x, y := g.view.toCell(m.Target)
		dst.SetWithColor(x, y, TargetChar, core.ColorWhite)
		g.renderMover(dst, m, MissileChar, core.ColorBrightCyan, core.ColorCyan)
	}
	g.renderInstallations(dst)

	if g.snap.State.Status == sim.StatusPlaying && !g.paused {
		x, y := g.view.toCell(g.crosshair)
		dst.SetWithColor(x, y, CrosshairChar, core.ColorBrightWhite)
	}

	g.renderPanel(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the score, profile and goal.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColor(1, 0, fmt.Sprintf("Score: %d", g.snap.State.Score), core.ColorBrightWhite)
	drawCentered(dst, 0, "MISSILE DEFENSE · "+strings.ToUpper(g.profile.Title()), core.ColorBrightYellow)

	goal := fmt.Sprintf("Goal: %d", g.cfg.Scoring.WinScore)
	dst.DrawText(dst.Width()-utf8.RuneCountInString(goal)-1, 0, goal)

	dst.DrawHLine(0, 1, dst.Width(), SeparatorChar, core.ColorGray)
}

// renderGround draws the ground strip under the installations.
func (g *Game) renderGround(dst *core.Screen) {
	dst.DrawHLine(0, g.view.field.Bottom()-1, dst.Width(), GroundChar, core.ColorGreen)
}

// renderExplosion fills every cell whose center lies inside the blast.
func (g *Game) renderExplosion(dst *core.Screen, ex sim.Entity) {
	glyph, color := PlayerBlastCh, core.ColorBrightYellow
	if ex.Class == sim.BlastThreat {
		glyph, color = ThreatBlastCh, core.ColorOrange
	}

	cx, cy := g.view.toCell(ex.Pos)
	dst.SetWithColor(cx, cy, glyph, color)

	x0, y0 := g.view.toCell(ex.Pos.Sub(core.V(ex.Radius, ex.Radius)))
	x1, y1 := g.view.toCell(ex.Pos.Add(core.V(ex.Radius, ex.Radius)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			center, ok := g.view.toField(x, y)
			if ok && core.Dist(center, ex.Pos) <= ex.Radius {
				dst.SetWithColor(x, y, glyph, color)
			}
		}
	}
}

// renderMover draws a trail from the launch point and the head on top.
func (g *Game) renderMover(dst *core.Screen, e sim.Entity, head rune, headColor, trailColor core.Color) {
	cw, ch := g.view.cellSize()
	step := math.Min(cw, ch) / 2
	dir, dist := core.Direction(e.StartPos, e.Pos)
	for d := 0.0; d < dist; d += step {
		x, y := g.view.toCell(e.StartPos.Add(dir.Scale(d)))
		if y >= g.view.field.Y && y < g.view.field.Bottom() {
			dst.SetWithColor(x, y, TrailChar, trailColor)
		}
	}

	x, y := g.view.toCell(e.Pos)
	if y >= g.view.field.Y {
		dst.SetWithColor(x, y, head, headColor)
	}
}

// renderInstallations draws cities and batteries, three cells wide.
func (g *Game) renderInstallations(dst *core.Screen) {
	for _, s := range g.snap.Structures {
		x, y := g.view.toCell(s.Pos)
		if s.Destroyed {
			dst.DrawTextColor(x-1, y, DestroyedGlyph, core.ColorGray)
			continue
		}
		dst.DrawTextColor(x-1, y, "▟█▙", core.ColorGreen)
	}

	for _, b := range g.snap.Batteries {
		x, y := g.view.toCell(b.Pos)
		if b.Destroyed {
			dst.DrawTextColor(x-1, y, "xxx", core.ColorRed)
			continue
		}
		color := core.ColorCyan
		if b.Missiles == 0 {
			color = core.ColorGray
		}
		dst.DrawTextColor(x-1, y, "/"+string(batteryLabel(b.ID))+"\\", color)
	}
}

// renderPanel draws per-battery ammo on the bottom row.
func (g *Game) renderPanel(dst *core.Screen) {
	y := dst.Height() - 1
	x := 1
	for _, b := range g.snap.Batteries {
		var text string
		color := core.ColorCyan
		switch {
		case b.Destroyed:
			text = fmt.Sprintf("%c: --", batteryLabel(b.ID))
			color = core.ColorRed
		case b.Missiles == 0:
			text = fmt.Sprintf("%c: empty", batteryLabel(b.ID))
			color = core.ColorGray
		default:
			text = fmt.Sprintf("%c: %2d", batteryLabel(b.ID), b.Missiles)
		}
		dst.DrawTextColor(x, y, text, color)
		x += utf8.RuneCountInString(text) + 3
	}

	cities := fmt.Sprintf("Cities: %d/%d", standing(g.snap.Structures), len(g.snap.Structures))
	dst.DrawText(dst.Width()-utf8.RuneCountInString(cities)-1, y, cities)
}

// renderOverlay draws pause, end-of-game and banner messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	mid := g.view.field.Y + g.view.field.H/2

	switch {
	case g.snap.State.Status == sim.StatusWon:
		g.renderEndPanel(dst, mid, "DEFENSE HOLDS", core.ColorBrightGreen)
	case g.snap.State.Status == sim.StatusLost:
		g.renderEndPanel(dst, mid, "ALL BATTERIES LOST", core.ColorBrightRed)
	case g.paused:
		drawCentered(dst, mid, "PAUSED - P to resume", core.ColorBrightYellow)
	}

	if g.bannerLeft > 0 && g.banner != "" {
		drawCentered(dst, g.view.field.Y+1, g.banner, g.bannerColor)
	}
}

// renderEndPanel frames the result and the follow-up keys in a box.
func (g *Game) renderEndPanel(dst *core.Screen, mid int, headline string, c core.Color) {
	lines := []string{
		fmt.Sprintf("Final score %d", g.snap.State.Score),
		"R again  B menu  Q quit",
	}
	w := utf8.RuneCountInString(headline)
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	box := core.NewRect(0, mid-2, min(w+4, dst.Width()), len(lines)+4)
	box.X = (dst.Width() - box.W) / 2

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	drawCentered(dst, mid-1, headline, c)
	for i, l := range lines {
		drawCentered(dst, mid+i+1, l, core.ColorWhite)
	}
}

func drawCentered(dst *core.Screen, y int, text string, c core.Color) {
	x := (dst.Width() - utf8.RuneCountInString(text)) / 2
	dst.DrawTextColor(x, y, text, c)
}

func standing(structures []sim.Structure) int {
	n := 0
	for _, s := range structures {
		if !s.Destroyed {
			n++
		}
	}
	return n
}
