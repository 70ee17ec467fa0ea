// Package watch polls a record source and redraws the computed charts in an
// interactive terminal view.
package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"k8s.io/klog/v2"

	"github.com/llmonitor/barlist/internal/source"
	"github.com/llmonitor/barlist/pkg/barlist"
	"github.com/llmonitor/barlist/pkg/pattern"
	"github.com/llmonitor/barlist/pkg/render"
)

// DefaultInterval is the polling period when Options.Interval is unset.
const DefaultInterval = 5 * time.Second

// Options configures a watch session.
type Options struct {
	Source   source.Source
	Interval time.Duration
	// Compute turns one batch of records into patterns.
	Compute func(records []barlist.Record) []pattern.Pattern
	// Renderer builds a renderer for the given content width.
	Renderer func(width int) render.Renderer
	Title    string
}

// Run starts the interactive program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newModel(ctx, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

type keyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Refresh, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var defaultKeys = keyMap{
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type loadedMsg struct {
	batch source.Batch
	err   error
	at    time.Time
}

type tickMsg struct{ seq int }

type model struct {
	ctx      context.Context
	opts     Options
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	loading  bool
	seq      int // invalidates pending ticks after a manual refresh
	patterns []pattern.Pattern
	loaded   bool
	err      error
	updated  time.Time
	skipped  int
	width    int
}

func newModel(ctx context.Context, opts Options) model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return model{
		ctx:      ctx,
		opts:     opts,
		keys:     defaultKeys,
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(80, 20),
		loading:  true,
		width:    80,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

func (m model) load() tea.Cmd {
	src, ctx := m.opts.Source, m.ctx
	return func() tea.Msg {
		b, err := src.Load(ctx)
		return loadedMsg{batch: b, err: err, at: time.Now()}
	}
}

func (m model) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.opts.Interval, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.seq++
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.help.Width = msg.Width
		m.refresh()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tickMsg:
		if msg.seq != m.seq || m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.load(), m.spinner.Tick)
	case loadedMsg:
		m.loading = false
		m.seq++
		if msg.err != nil {
			klog.V(1).InfoS("watch load failed", "source", m.opts.Source.Name(), "err", msg.err)
			m.err = msg.err
			return m, m.tick()
		}
		m.err = nil
		m.updated = msg.at
		m.skipped = msg.batch.Skipped
		m.patterns = m.opts.Compute(msg.batch.Records)
		m.loaded = true
		m.refresh()
		return m, m.tick()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refresh re-renders the last good patterns at the current width.
func (m *model) refresh() {
	if !m.loaded {
		return
	}
	m.viewport.SetContent(m.opts.Renderer(m.width).Render(m.patterns))
}

func (m model) View() string {
	header := titleStyle.Render(m.title())
	if m.loading {
		header += " " + m.spinner.View()
	}
	if !m.updated.IsZero() {
		header += dimStyle.Render(" updated " + m.updated.Format("15:04:05"))
	}
	if m.skipped > 0 {
		header += dimStyle.Render(fmt.Sprintf(" (%d malformed skipped)", m.skipped))
	}
	status := ""
	if m.err != nil {
		status = errStyle.Render("error: "+m.err.Error()) + "\n"
	}
	body := m.viewport.View()
	if !m.loaded {
		body = dimStyle.Render("Loading " + m.opts.Source.Name() + "...")
	}
	return header + "\n" + status + body + "\n" + m.help.View(m.keys)
}

func (m model) title() string {
	if m.opts.Title != "" {
		return m.opts.Title
	}
	return "barlist: " + m.opts.Source.Name()
}
