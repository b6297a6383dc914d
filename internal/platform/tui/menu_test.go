package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-defense/internal/core"
	"github.com/vovakirdan/tui-defense/internal/storage"
)

func TestProfileRank(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"defense_easy", 0},
		{"defense_normal", 1},
		{"defense_insane", 4},
		{"stub_hard", 2},
		{"plain", 5},
		{"defense_bogus", 5},
	}

	for _, tt := range tests {
		if got := profileRank(tt.id); got != tt.want {
			t.Errorf("profileRank(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestMenuItemsCarryRecords(t *testing.T) {
	store := openTestStore(t)
	for _, rec := range []storage.RunRecord{
		{GameID: stubID, Score: 300, Outcome: storage.OutcomeWon},
		{GameID: stubID, Score: 120, Outcome: storage.OutcomeLost},
	} {
		if _, err := store.SaveRun(rec); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	var found *MenuItem
	items := menuItems(store)
	for i := range items {
		if items[i].GameID == stubID {
			found = &items[i]
		}
	}
	if found == nil {
		t.Fatal("stub game missing from menu")
	}
	if found.Best != 300 || found.Wins != 1 || found.Losses != 1 {
		t.Errorf("record = best %d W%d/L%d, want best 300 W1/L1", found.Best, found.Wins, found.Losses)
	}
	if got := found.record(); !strings.Contains(got, "best 300") {
		t.Errorf("record() = %q", got)
	}
	if got := (MenuItem{}).record(); !strings.Contains(got, "best -") {
		t.Errorf("empty record() = %q", got)
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil {
		t.Fatal("enter should select the highlighted game")
	}

	m = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuViewListsGames(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	view := m.View()
	if !strings.Contains(view, "Stub (Hard)") {
		t.Errorf("menu view missing game title:\n%s", view)
	}
}

func TestScoreboardHelpers(t *testing.T) {
	if got := shortTitle("Missile Defense (Hard)"); got != "Hard" {
		t.Errorf("shortTitle = %q, want Hard", got)
	}
	if got := shortTitle("Plain"); got != "Plain" {
		t.Errorf("shortTitle = %q, want Plain", got)
	}
	if got := formatDuration(95 * time.Second); got != "1:35" {
		t.Errorf("formatDuration = %q, want 1:35", got)
	}
}

func TestScoreboardShowsRuns(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(storage.RunRecord{GameID: stubID, Score: 4321, Outcome: storage.OutcomeWon}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	sb := NewScoreboardModel(store, 120, 30)
	for i, g := range sb.games {
		if g.GameID == stubID {
			sb.gameCursor = i
			sb.loadScores(stubID)
		}
	}

	if len(sb.scores) != 1 {
		t.Fatalf("expected 1 run loaded, got %d", len(sb.scores))
	}
	view := sb.View()
	if !strings.Contains(view, "4321") || !strings.Contains(view, "won") {
		t.Errorf("scoreboard view missing run:\n%s", view)
	}
}

func TestSessionFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	s := NewSessionModel(nil, cfg, "tester")

	send := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	if len(s.menu.items) != 1 || s.menu.items[0].GameID != stubID {
		t.Fatalf("menu items = %v, want only the stub game", s.menu.items)
	}
	send(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatal("enter should start a game")
	}

	g := s.gameModel.game.(*stubGame)
	g.state = core.GameState{GameOver: true}
	send(TickMsg{ID: s.gameModel.tickID})
	send(runeKey('b'))
	if s.screen != screenMenu {
		t.Fatal("back should return to the menu")
	}

	send(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	send(runeKey('b'))
	if s.screen != screenMenu {
		t.Fatal("back should close the scoreboard")
	}
	if s.quitting {
		t.Error("session should still be running")
	}

	send(runeKey('q'))
	if !s.quitting || s.View() != "" {
		t.Error("q should end the session")
	}
}
