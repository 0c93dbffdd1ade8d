// Package render draws a solved MAPF instance as a sequence of lipgloss-styled
// terminal frames, one per time step (see DESIGN.md for background on this
// package). The palette and per-cell styling follow the adaptive-color,
// styles.go token pattern used throughout vanderheijden86/beadwork's pkg/ui.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

var (
	colorObstacle = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#1E1F29"}
	colorFree     = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#282A36"}
	colorGoal     = lipgloss.AdaptiveColor{Light: "#D4EDDA", Dark: "#1A3D2A"}

	styleObstacle = lipgloss.NewStyle().Background(colorObstacle).Width(3)
	styleFree     = lipgloss.NewStyle().Background(colorFree).Width(3)
	styleGoal     = lipgloss.NewStyle().Background(colorGoal).Width(3)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"})
)

// agentPalette cycles a fixed set of adaptive colors across agent indices, so
// a frame stays readable regardless of how many agents share the grid.
var agentPalette = []lipgloss.AdaptiveColor{
	{Light: "#CC0000", Dark: "#FF5555"},
	{Light: "#006080", Dark: "#8BE9FD"},
	{Light: "#B06800", Dark: "#FFB86C"},
	{Light: "#007700", Dark: "#50FA7B"},
	{Light: "#6B47D9", Dark: "#BD93F9"},
	{Light: "#0066CC", Dark: "#6699FF"},
	{Light: "#808000", Dark: "#F1FA8C"},
	{Light: "#008080", Dark: "#00CED1"},
}

func agentStyle(agent int) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Width(3).Align(lipgloss.Center).
		Foreground(lipgloss.Color("#000000")).
		Background(agentPalette[agent%len(agentPalette)])
}

// Frames renders one frame per time step of the longest path in paths,
// stacking a "t = N" header above the grid. Frames carry no per-agent
// legend; each agent is labelled in its cell.
func Frames(grid *gridmap.Grid, goals []gridmap.Coord, paths []instance.AgentPath) []string {
	horizon := 0
	for _, p := range paths {
		if len(p) > horizon {
			horizon = len(p)
		}
	}
	frames := make([]string, 0, horizon)
	for t := 0; t < horizon; t++ {
		frames = append(frames, frame(grid, goals, paths, t))
	}
	return frames
}

func frame(grid *gridmap.Grid, goals []gridmap.Coord, paths []instance.AgentPath, t int) string {
	occupied := make(map[gridmap.Coord]int, len(paths))
	for agent, p := range paths {
		c, ok := p.At(t)
		if !ok {
			continue
		}
		occupied[c] = agent
	}
	goalSet := make(map[gridmap.Coord]bool, len(goals))
	for _, g := range goals {
		goalSet[g] = true
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("t = %d", t)))
	b.WriteString("\n")
	for y := 0; y < grid.H(); y++ {
		for x := 0; x < grid.W(); x++ {
			c := gridmap.Coord{X: x, Y: y}
			agent, isAgent := occupied[c]
			switch {
			case grid.IsObstacle(x, y):
				b.WriteString(styleObstacle.Render("##"))
			case isAgent:
				b.WriteString(agentStyle(agent).Render(fmt.Sprintf("A%d", agent)))
			case goalSet[c]:
				b.WriteString(styleGoal.Render(" . "))
			default:
				b.WriteString(styleFree.Render(" . "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
