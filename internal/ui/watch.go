package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/cgdisplay/internal/display"
)

// Loader produces a fresh display snapshot
type Loader func(ctx context.Context) (*display.Display, error)

type snapshotMsg struct {
	snapshot *display.Display
	err      error
	at       time.Time
}

type refreshMsg struct{}

// WatchModel is a bubbletea model that redraws the display table on an
// interval.
type WatchModel struct {
	ctx      context.Context
	load     Loader
	interval time.Duration
	now      func() time.Time

	spinner  spinner.Model
	snapshot *display.Display
	err      error
	updated  time.Time
	loading  bool
	changes  int
	width    int
}

// NewWatchModel creates a watch model refreshing every interval
func NewWatchModel(ctx context.Context, interval time.Duration, load Loader) *WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &WatchModel{
		ctx:      ctx,
		load:     load,
		interval: interval,
		now:      time.Now,
		spinner:  s,
		loading:  true,
	}
}

func (m *WatchModel) fetch() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.load(m.ctx)
		return snapshotMsg{snapshot: snap, err: err, at: m.now()}
	}
}

func (m *WatchModel) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return refreshMsg{} })
}

func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.fetch()
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case snapshotMsg:
		m.loading = false
		m.updated = msg.at
		m.err = msg.err
		if msg.err == nil {
			if m.snapshot != nil && !sameLayout(m.snapshot, msg.snapshot) {
				m.changes++
			}
			m.snapshot = msg.snapshot
		}
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		return m, m.schedule()

	case refreshMsg:
		if m.ctx.Err() != nil {
			return m, tea.Quit
		}
		m.loading = true
		return m, m.fetch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *WatchModel) View() string {
	var b strings.Builder

	status := ""
	if m.loading {
		status = m.spinner.View() + " "
	}
	if !m.updated.IsZero() {
		status += "updated " + m.updated.Format("15:04:05")
	}
	b.WriteString(FormatHeader("cgdisplay watch", status))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(FormatError(m.err))
		b.WriteString("\n")
	case m.snapshot == nil:
		b.WriteString(SubtleStyle.Render("Reading displays..."))
		b.WriteString("\n")
	case len(m.snapshot.Monitors()) == 0:
		b.WriteString(SubtleStyle.Render("No active displays"))
		b.WriteString("\n")
	}

	if m.snapshot != nil && len(m.snapshot.Monitors()) > 0 {
		b.WriteString(DisplayTable(m.snapshot.Monitors()))
		b.WriteString("\n")
		v := m.snapshot.VirtualBounds()
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("Virtual screen: %gx%g at (%g, %g)",
			v.Size.Width, v.Size.Height, v.Origin.X, v.Origin.Y)))
		b.WriteString("\n")
	}
	if m.changes > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Layout changed %d time(s)", m.changes)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatControl("r", "refresh") + "  " + FormatControl("q", "quit"))
	return b.String()
}

// Snapshot returns the most recent successful snapshot
func (m *WatchModel) Snapshot() *display.Display {
	return m.snapshot
}

func sameLayout(a, b *display.Display) bool {
	am, bm := a.Monitors(), b.Monitors()
	if len(am) != len(bm) {
		return false
	}
	for i := range am {
		if am[i].ID != bm[i].ID || am[i].Bounds() != bm[i].Bounds() || am[i].Main != bm[i].Main {
			return false
		}
	}
	return true
}
