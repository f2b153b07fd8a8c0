package internal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"

	"boxbreath/internal/breath"
	"boxbreath/internal/session"
	"boxbreath/internal/settings"
	"boxbreath/internal/timer"
)

const (
	boxWidth   = 26
	boxHeight  = 11
	labelWidth = 10
	// trailBackground is what the gradient fades toward.
	trailBackground = "#303030"
	historyRows     = 12
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	edgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	labelBeforeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	labelAfterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	labelActiveStyle = lipgloss.NewStyle().
				Bold(true)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inputInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type labelState int

const (
	labelNone labelState = iota
	labelBefore
	labelActive
	labelAfter
)

// labelFor decides how a phase label is emphasized while current is the
// running phase: the running phase is active, the one just finished is
// "after" and the rest are "before". PhaseStart emphasizes nothing.
func labelFor(label, current breath.Phase) labelState {
	ci, ok := current.Index()
	if !ok {
		return labelNone
	}
	li, ok := label.Index()
	if !ok {
		return labelNone
	}
	switch {
	case ci == li:
		return labelActive
	case ci == (li+1)%breath.NumPhases:
		return labelAfter
	default:
		return labelBefore
	}
}

type point struct{ x, y int }

// edge lists the cells the dot crosses during p, in travel order.
func edge(p breath.Phase) []point {
	var cells []point
	switch p {
	case breath.PhaseBreatheIn:
		for x := 0; x < boxWidth; x++ {
			cells = append(cells, point{x, 0})
		}
	case breath.PhaseHoldIn:
		for y := 0; y < boxHeight; y++ {
			cells = append(cells, point{boxWidth - 1, y})
		}
	case breath.PhaseBreatheOut:
		for x := boxWidth - 1; x >= 0; x-- {
			cells = append(cells, point{x, boxHeight - 1})
		}
	case breath.PhaseHoldOut:
		for y := boxHeight - 1; y >= 0; y-- {
			cells = append(cells, point{0, y})
		}
	}
	return cells
}

// dotIndex returns the dot's position along edge(p).
func dotIndex(cells []point, progress float64) int {
	if len(cells) == 0 {
		return 0
	}
	return int(math.Round(progress * float64(len(cells)-1)))
}

func dotPosition(p breath.Phase, progress float64) point {
	cells := edge(p)
	if len(cells) == 0 {
		return point{0, 0}
	}
	return cells[dotIndex(cells, progress)]
}

// gradient returns n shades fading from the background up to base.
func gradient(base colorful.Color, n int) []string {
	if n <= 0 {
		return nil
	}
	bg, _ := colorful.Hex(trailBackground)
	faded := base.BlendLuv(bg, 0.8)
	shades := make([]string, n)
	for i := 0; i < n-1; i++ {
		t := float64(i) / float64(n-1)
		shades[i] = faded.BlendLuv(base, t).Clamped().Hex()
	}
	// The head of the trail is always the exact base color.
	shades[n-1] = base.Clamped().Hex()
	return shades
}

func baseColor(value string) colorful.Color {
	c, err := settings.ParseColor(value)
	if err != nil {
		c, _ = settings.ParseColor(breath.DefaultColor)
	}
	return c
}

func boxRune(x, y int) rune {
	top, bottom := y == 0, y == boxHeight-1
	left, right := x == 0, x == boxWidth-1
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	case left || right:
		return '│'
	}
	return ' '
}

func trailRune(r rune) rune {
	switch r {
	case '─':
		return '━'
	case '│':
		return '┃'
	case '┌':
		return '┏'
	case '┐':
		return '┓'
	case '└':
		return '┗'
	case '┘':
		return '┛'
	}
	return r
}

// renderBox draws the square, the trail already covered in the current
// phase and the dot.
func renderBox(s breath.State, now time.Time) string {
	base := baseColor(s.Config.Color)
	dotStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(base.Hex())).Bold(true)

	trail := map[point]string{}
	dot := point{0, 0}
	if s.Phase.IsActive() {
		cells := edge(s.Phase)
		i := dotIndex(cells, s.Progress(now))
		shades := gradient(base, i+1)
		for j := 0; j <= i; j++ {
			trail[cells[j]] = shades[j]
		}
		dot = cells[i]
	}

	var sb strings.Builder
	for y := 0; y < boxHeight; y++ {
		for x := 0; x < boxWidth; x++ {
			p := point{x, y}
			r := boxRune(x, y)
			switch {
			case p == dot && s.StartTriggered:
				sb.WriteString(dotStyle.Render("●"))
			case trail[p] != "":
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(trail[p]))
				sb.WriteString(style.Render(string(trailRune(r))))
			case r == ' ':
				sb.WriteByte(' ')
			default:
				sb.WriteString(edgeStyle.Render(string(r)))
			}
		}
		if y < boxHeight-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderLabel(label, current breath.Phase, color colorful.Color) string {
	text := label.String()
	switch labelFor(label, current) {
	case labelActive:
		return labelActiveStyle.Foreground(lipgloss.Color(color.Hex())).Render(text)
	case labelAfter:
		return labelAfterStyle.Render(text)
	default:
		return labelBeforeStyle.Render(text)
	}
}

func (m *Model) place(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) helpLine() string {
	return m.help.View(m.keys.forPanel(m.Panel))
}

func (m *Model) statusLine() string {
	if m.Status == "" {
		return ""
	}
	if m.Err != nil {
		return errorStyle.Render(m.Status)
	}
	return statusStyle.Render(m.Status)
}

func (m *Model) animationView() string {
	s := m.ctrl.Snapshot()
	color := baseColor(s.Config.Color)
	fullWidth := boxWidth + 2*(labelWidth+1)

	top := lipgloss.PlaceHorizontal(fullWidth, lipgloss.Center,
		renderLabel(breath.PhaseBreatheIn, s.Phase, color))
	bottom := lipgloss.PlaceHorizontal(fullWidth, lipgloss.Center,
		renderLabel(breath.PhaseBreatheOut, s.Phase, color))
	left := lipgloss.NewStyle().Width(labelWidth).Align(lipgloss.Right).
		Render(renderLabel(breath.PhaseHoldOut, s.Phase, color))
	right := lipgloss.NewStyle().Width(labelWidth).Align(lipgloss.Left).
		Render(renderLabel(breath.PhaseHoldIn, s.Phase, color))
	middle := lipgloss.JoinHorizontal(lipgloss.Center,
		left, " ", renderBox(s, m.clock.Now()), " ", right)

	var hint string
	switch {
	case !s.StartTriggered:
		hint = hintStyle.Render("Press space to start")
	case !s.Active:
		hint = hintStyle.Render("Get ready…")
	default:
		hint = statusStyle.Render(fmt.Sprintf("Cycle %d", s.Cycles+1))
	}

	timerLine := ""
	if !s.TimerHidden {
		timerLine = timerDisplayStyle.Render(s.Elapsed)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Width(fullWidth).Render("Box Breathing"),
		"",
		top,
		middle,
		bottom,
		"",
		hint,
		timerLine,
		m.statusLine(),
		"",
		m.helpLine(),
	)
	return m.place(content)
}

func (m *Model) settingsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(60).Render("Settings"))
	sb.WriteString("\n\n")

	hidden := m.ctrl.TimerHidden()
	for i := formField(0); i < numFields; i++ {
		marker := "  "
		labelStyle := inputInactiveStyle
		if m.form.focus == i {
			marker = "→ "
			labelStyle = inputStyle
		}
		label := labelStyle.Render(fmt.Sprintf("%s%-36s", marker, fieldDescriptions[i]))

		var value string
		if i == fieldHideTimer {
			box := "[ ]"
			if hidden {
				box = "[x]"
			}
			value = labelStyle.Render(box)
		} else {
			value = m.form.inputs[i].View()
		}

		sb.WriteString(label)
		sb.WriteString(value)
		sb.WriteString("\n")

		switch {
		case m.form.notes[i] != "" && m.form.errs[i]:
			sb.WriteString("    " + errorStyle.Render(m.form.notes[i]))
		case m.form.notes[i] != "":
			sb.WriteString("    " + statusStyle.Render(m.form.notes[i]))
		case fieldHints[i] != "" && m.form.focus == i:
			sb.WriteString("    " + statusStyle.Render(fieldHints[i]))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpLine())

	return m.place(boxStyle.Render(sb.String()))
}

const aboutText = `The box breathing technique is a tool for reducing stress and anxiety. ` +
	`By guiding your breath in a controlled rhythm, it helps calm your body's ` +
	`natural stress response. The classic approach involves inhaling, holding, ` +
	`exhaling, and pausing for four seconds each, but the timing can be adjusted ` +
	`to suit your personal preference in the settings panel.`

func (m *Model) aboutView() string {
	body := lipgloss.NewStyle().Width(60).Render(aboutText)
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Width(60).Render("About"),
		"",
		body,
		"",
		m.helpLine(),
	)
	return m.place(boxStyle.Render(content))
}

func (m *Model) historyView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(60).Render("Session History"))
	sb.WriteString("\n\n")

	switch {
	case m.repo == nil:
		sb.WriteString(statusStyle.Render("History is disabled."))
		sb.WriteString("\n")
	case len(m.History) == 0:
		sb.WriteString(statusStyle.Render("No sessions yet. Reset a running cycle to record one."))
		sb.WriteString("\n")
	default:
		sb.WriteString(logHeaderStyle.Render(fmt.Sprintf(
			"%d sessions · %d cycles · %s total",
			m.Totals.Sessions, m.Totals.Cycles, timer.Format(m.Totals.Duration),
		)))
		sb.WriteString("\n\n")

		end := min(m.HistoryScroll+historyRows, len(m.History))
		for _, s := range m.History[m.HistoryScroll:end] {
			sb.WriteString(formatSessionEntry(s))
			sb.WriteString("\n")
		}
		if end < len(m.History) {
			sb.WriteString(statusStyle.Render(fmt.Sprintf("… %d more", len(m.History)-end)))
			sb.WriteString("\n")
		}
	}

	if line := m.statusLine(); line != "" {
		sb.WriteString("\n" + line + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.helpLine())

	return m.place(boxStyle.Render(sb.String()))
}

func formatSessionEntry(s session.Session) string {
	when := logTimeStyle.Render(fmt.Sprintf("%-14s", humanize.Time(s.EndedAt)))
	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(settings.Hex(s.Color, breath.DefaultColor))).
		Render("■")
	return fmt.Sprintf("  %s  %s  %3d cycles  %s %s",
		when, timer.Format(s.Duration), s.Cycles, swatch, s.Pattern())
}
