package internal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"boxbreath/internal/breath"
	"boxbreath/internal/clock"
	"boxbreath/internal/log"
	"boxbreath/internal/session"
	"boxbreath/internal/settings"
)

// frameInterval paces the dot animation between controller events.
const frameInterval = 100 * time.Millisecond

// historyPageSize is how many sessions the history panel loads.
const historyPageSize = 50

// MsgChanged is sent when the controller changes state on its own, i.e.
// when the pre-roll ends, a phase advances or the elapsed timer ticks.
type MsgChanged struct{}

// MsgFrame drives redraws of the moving dot.
type MsgFrame time.Time

// Panel is the page currently on screen.
type Panel int

const (
	PanelAnimation Panel = iota
	PanelSettings
	PanelAbout
	PanelHistory
)

// Handle is the command surface the UI drives. *breath.Controller
// implements it.
type Handle interface {
	Start()
	Reset()
	Close()
	SetInDuration(seconds float64) error
	SetHoldInDuration(seconds float64) error
	SetOutDuration(seconds float64) error
	SetHoldOutDuration(seconds float64) error
	SetGradientColor(value string)
	SetTimerHidden(hidden bool)
	TimerHidden() bool
	Config() breath.Config
	Snapshot() breath.State
}

// Options configures NewModel.
type Options struct {
	Settings settings.Settings
	// HistoryPath is the session database; empty disables history.
	HistoryPath string
	Clock       clock.Clock
}

type Model struct {
	Panel  Panel
	Status string
	Err    error

	// History panel state
	History       []session.Session
	Totals        session.Totals
	HistoryScroll int

	ctrl   Handle
	clock  clock.Clock
	repo   *session.Repository
	form   settingsForm
	keys   keyMap
	help   help.Model
	logger *slog.Logger
	send   func(tea.Msg)

	width  int
	height int
}

func NewModel(opts Options) (*Model, error) {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}

	var repo *session.Repository
	if opts.HistoryPath != "" {
		r, err := session.Open(opts.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		repo = r
	}

	m := &Model{
		Panel:  PanelAnimation,
		clock:  opts.Clock,
		repo:   repo,
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: log.WithComponent("tui"),
	}

	ctrl := breath.New(opts.Settings.Breath, breath.Options{
		Clock:    opts.Clock,
		PreRoll:  opts.Settings.PreRoll,
		OnChange: m.notify,
		Logger:   log.WithComponent("breath"),
	})
	ctrl.SetTimerHidden(opts.Settings.HideTimer)
	m.ctrl = ctrl
	m.form = newSettingsForm(ctrl.Config())

	return m, nil
}

// SetSender routes controller notifications into a running program. It
// must be called before the program starts.
func (m *Model) SetSender(send func(tea.Msg)) {
	m.send = send
}

func (m *Model) notify() {
	if m.send != nil {
		m.send(MsgChanged{})
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return MsgFrame(t)
	})
}

func (m *Model) Init() tea.Cmd {
	return frameTick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgFrame:
		return m, frameTick()
	case MsgChanged:
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.Panel {
	case PanelSettings:
		return m.settingsView()
	case PanelAbout:
		return m.aboutView()
	case PanelHistory:
		return m.historyView()
	}
	return m.animationView()
}

// Snapshot exposes the controller state the views render.
func (m *Model) Snapshot() breath.State {
	return m.ctrl.Snapshot()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.Panel {
	case PanelSettings:
		return m.handleSettingsInput(msg)
	case PanelHistory:
		return m.handleHistoryInput(msg)
	case PanelAbout:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.About) {
			m.Panel = PanelAnimation
		} else if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.ctrl.Start()
		m.setStatus("")
	case key.Matches(msg, m.keys.Reset):
		m.resetCycle()
	case key.Matches(msg, m.keys.Timer):
		m.ctrl.SetTimerHidden(!m.ctrl.TimerHidden())
	case key.Matches(msg, m.keys.Settings):
		m.Panel = PanelSettings
		m.form.setPlaceholders(m.ctrl.Config())
		return m, m.form.setFocus(m.form.focus)
	case key.Matches(msg, m.keys.About):
		m.Panel = PanelAbout
	case key.Matches(msg, m.keys.History):
		m.openHistory()
	}
	return m, nil
}

func (m *Model) handleSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.Panel = PanelAnimation
		return m, nil
	}
	return m, m.form.update(msg, m.ctrl)
}

func (m *Model) handleHistoryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History):
		m.Panel = PanelAnimation
		m.History = nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.HistoryScroll > 0 {
			m.HistoryScroll--
		}
	case key.Matches(msg, m.keys.Down):
		maxScroll := max(len(m.History)-1, 0)
		if m.HistoryScroll < maxScroll {
			m.HistoryScroll++
		}
	}
	return m, nil
}

func (m *Model) openHistory() {
	m.Panel = PanelHistory
	m.HistoryScroll = 0
	m.History = nil
	m.Totals = session.Totals{}
	if m.repo == nil {
		return
	}

	sessions, err := m.repo.Recent(historyPageSize)
	if err != nil {
		m.setError("load history", err)
		return
	}
	totals, err := m.repo.Totals()
	if err != nil {
		m.setError("load history totals", err)
		return
	}
	m.History = sessions
	m.Totals = totals
}

// resetCycle records the run that is ending, then resets the controller.
func (m *Model) resetCycle() {
	m.recordSession()
	m.ctrl.Reset()
}

func (m *Model) recordSession() {
	if m.repo == nil {
		return
	}
	s, ok := session.FromState(m.ctrl.Snapshot(), m.clock.Now())
	if !ok {
		return
	}
	if err := m.repo.Create(s); err != nil {
		m.setError("save session", err)
		return
	}
	log.WithSession(s.ID).Info("session recorded",
		"cycles", s.Cycles,
		"duration", s.Duration.String(),
		"pattern", s.Pattern(),
	)
	m.setStatus(fmt.Sprintf("Session saved: %d cycles", s.Cycles))
}

// setStatus shows a non-error message and clears any earlier error.
func (m *Model) setStatus(text string) {
	m.Err = nil
	m.Status = text
}

func (m *Model) setError(action string, err error) {
	m.Err = fmt.Errorf("%s: %w", action, err)
	m.Status = m.Err.Error()
	m.logger.Error(action, "error", err)
}

// Close records a live session, stops every pending timer and closes the
// history database.
func (m *Model) Close() error {
	m.recordSession()
	m.ctrl.Close()
	if m.repo != nil {
		return m.repo.Close()
	}
	return nil
}
