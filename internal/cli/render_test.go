package cli

import (
	"os"
	"strings"
	"testing"

	"github.com/theirongolddev/moneytree/internal/stage"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "[░░░░░░░░░░] 0.0%"},
		{50, "[█████░░░░░] 50.0%"},
		{100, "[██████████] 100.0%"},
		{140, "[██████████] 140.0%"},
		{-5, "[░░░░░░░░░░] -5.0%"},
	}
	for _, tt := range tests {
		if got := RenderProgressBar(tt.pct, 10); got != tt.want {
			t.Errorf("RenderProgressBar(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
	if got := RenderProgressBar(50, 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestRenderStageDots(t *testing.T) {
	tests := map[float64]string{
		0:   "●○○○○○○",
		4.9: "●○○○○○○",
		5:   "●●○○○○○",
		32:  "●●●●○○○",
		95:  "●●●●●●●",
		200: "●●●●●●●",
	}
	for pct, want := range tests {
		if got := RenderStageDots(pct); got != want {
			t.Errorf("RenderStageDots(%v) = %q, want %q", pct, got, want)
		}
	}
}

func TestRenderStageLine(t *testing.T) {
	got := RenderStageLine(10)
	if !strings.HasPrefix(got, "Sprout") || !strings.Contains(got, "5.0% to Seedling") {
		t.Errorf("RenderStageLine(10) = %q", got)
	}
	if got := RenderStageLine(100); strings.Contains(got, " to ") {
		t.Errorf("final stage should have no hint: %q", got)
	}
}

func TestRenderDelta(t *testing.T) {
	yen := Currency{Symbol: "¥"}
	if got := RenderDelta(yen, 500); got != "+¥500" {
		t.Errorf("got %q", got)
	}
	if got := RenderDelta(yen, -70000); got != "-¥70,000" {
		t.Errorf("got %q", got)
	}
	if got := RenderDelta(yen, 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestStageArtUniformHeight(t *testing.T) {
	for _, info := range stage.All() {
		art := StageArt(info.Stage)
		if n := strings.Count(art, "\n") + 1; n != ArtHeight {
			t.Errorf("%s art has %d lines, want %d", info.Stage, n, ArtHeight)
		}
	}
	if StageArt("unknown") != StageArt(stage.Seed) {
		t.Error("unknown stage should fall back to seed art")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Goal", "Saved"},
		Rows: [][]string{
			{"Retirement", "¥50,000"},
			{"---"},
			{"Total", "¥50,000"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table has %d lines, want 7:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Goal") || !strings.Contains(lines[3], "Retirement") {
		t.Errorf("unexpected table:\n%s", out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}
