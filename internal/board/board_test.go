package board

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/arcanaland/matcher/internal/card"
	"github.com/arcanaland/matcher/internal/game"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func fourCards() []card.Card {
	return []card.Card{
		{MatchID: "a", CardID: "card1", Title: "Sleepy cat", URL: "u/a"},
		{MatchID: "b", CardID: "card2", Title: "Lake", URL: "u/b"},
		{MatchID: "a", CardID: "card3", Title: "Sleepy cat", URL: "u/a"},
		{MatchID: "b", CardID: "card4", Title: "Lake", URL: "u/b"},
	}
}

var layout = Layout{CardWidth: 8, CardHeight: 3, Width: 80}

func TestRenderFaceDown(t *testing.T) {
	out := Render(game.New(fourCards()).Snapshot(), nil, layout)

	for _, label := range []string{"#1", "#2", "#3", "#4"} {
		if !strings.Contains(out, label) {
			t.Errorf("Expected label %s in output:\n%s", label, out)
		}
	}
	if strings.Contains(out, "Sleepy cat") {
		t.Errorf("Face-down cards should not show titles:\n%s", out)
	}
	if !strings.Contains(out, "0 matched, 2 pairs left") {
		t.Errorf("Expected status line, got:\n%s", out)
	}
}

func TestRenderSelectedShowsFace(t *testing.T) {
	s, _, _ := game.New(fourCards()).Select("card1", "a")
	faces := map[string]string{"u/a": "AAAAAAAA\nAAAAAAAA\nAAAAAAAA"}

	out := Render(s.Snapshot(), faces, layout)

	if !strings.Contains(out, "AAAAAAAA") {
		t.Errorf("Expected the face of the selected card:\n%s", out)
	}
	if strings.Contains(out, "#1") {
		t.Errorf("Selected card should not show its back label:\n%s", out)
	}
	if !strings.Contains(out, "Pick a second card") {
		t.Errorf("Expected the one-selected status:\n%s", out)
	}
}

func TestRenderSelectedWithoutFaceShowsTitle(t *testing.T) {
	s, _, _ := game.New(fourCards()).Select("card2", "b")

	out := Render(s.Snapshot(), nil, layout)
	if !strings.Contains(out, "Lake") {
		t.Errorf("Expected the title of the selected card:\n%s", out)
	}
}

func TestRenderWrapsToWidth(t *testing.T) {
	narrow := Layout{CardWidth: 8, CardHeight: 2, Width: 20}
	out := Render(game.New(fourCards()).Snapshot(), nil, narrow)

	// Two cards per row; the status line is last
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, line := range lines[:len(lines)-1] {
		if n := len([]rune(line)); n > 20 {
			t.Errorf("Line wider than terminal (%d): %q", n, line)
		}
	}
	if !strings.Contains(out, "#1") || !strings.Contains(out, "#4") {
		t.Errorf("Expected every card to be drawn:\n%s", out)
	}
}

func TestRenderEndStates(t *testing.T) {
	if out := Render(game.New(nil).Snapshot(), nil, layout); !strings.Contains(out, "we do not have images!") {
		t.Errorf("Expected no data message, got %q", out)
	}

	s := game.New([]card.Card{
		{MatchID: "a", CardID: "x1"},
		{MatchID: "a", CardID: "x2"},
	})
	s, _, _ = s.Select("x1", "a")
	s, task, _ := s.Select("x2", "a")
	s = s.Resolve(task)

	if out := Render(s.Snapshot(), nil, layout); !strings.Contains(out, "You won! 1 pairs matched.") {
		t.Errorf("Expected win message, got %q", out)
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("a very long title indeed", 10)
	want := []string{"a very", "long title", "indeed"}
	if len(got) != len(want) {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate = %q", got)
	}
}
