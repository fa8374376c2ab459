// Package tui provides a Bubble Tea terminal user interface for browsing
// beatmap sets.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/beatmap-browser/internal/collection"
	"github.com/handiism/beatmap-browser/internal/config"
	"github.com/handiism/beatmap-browser/internal/difficulty"
	"github.com/handiism/beatmap-browser/internal/download"
	"github.com/handiism/beatmap-browser/internal/http"
	"github.com/handiism/beatmap-browser/internal/model"
	"github.com/handiism/beatmap-browser/internal/route"
	"github.com/handiism/beatmap-browser/internal/selection"
)

// Backend is the mirror as seen by the browser. *mirror.Client implements it.
type Backend interface {
	collection.Searcher
	selection.SetFetcher
	DownloadURL(id int64, noVideo bool) string
}

// Focus is the widget receiving key presses on the index page.
type Focus int

const (
	FocusSearch Focus = iota
	FocusList
	FocusJump
)

// LogEntry represents a download log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the browser.
type Model struct {
	settings   *config.Settings
	backend    Backend
	httpClient *http.Client
	logger     *slog.Logger

	router   *route.Router
	fetcher  *collection.Fetcher
	resolver *selection.Resolver

	focus   Focus
	search  textinput.Model
	jump    textinput.Model
	spinner spinner.Model

	cursor int
	// diffIndex is the difficulty picked in the overlay of diffFor.
	diffIndex int
	diffFor   int64

	// Download state
	progress    progress.Model
	events      chan download.ProgressEvent
	manager     *download.Manager
	downloading bool
	logs        []LogEntry

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// Options configure New.
type Options struct {
	Settings   *config.Settings
	Backend    Backend
	HTTPClient *http.Client
	Logger     *slog.Logger
	// InitialPath is the route to start at, e.g. "/beatmapsets/39804".
	InitialPath string
	// Query is the first search. Empty shows the default listing.
	Query string
}

// New creates a new browser model.
func New(opts Options) Model {
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.NewClient()
	}

	search := textinput.New()
	search.Placeholder = "artist, title, mapper or tags"
	search.Prompt = "🔎 "
	search.CharLimit = 200
	search.Width = 50
	search.SetValue(opts.Query)
	search.Focus()

	jump := textinput.New()
	jump.Placeholder = "beatmap set id"
	jump.Prompt = "# "
	jump.CharLimit = 12
	jump.Width = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF66AA"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	router := route.NewRouter(opts.InitialPath)
	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		settings:   opts.Settings,
		backend:    opts.Backend,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		router:     router,
		fetcher:    collection.NewFetcher(opts.Backend, opts.Logger),
		resolver:   selection.NewResolver(router, opts.Backend, opts.Logger),
		focus:      FocusSearch,
		search:     search,
		jump:       jump,
		spinner:    sp,
		progress:   prog,
		events:     make(chan download.ProgressEvent, 64),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Message types
type (
	// ProgressMsg is sent when the download manager reports an event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// DownloadDoneMsg is sent when a download batch finished.
	DownloadDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Init starts the first search and resolves the initial route.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.fetcher.Search(m.ctx, m.search.Value()),
		m.resolver.Sync(m.ctx, m.fetcher.Snapshot()),
		m.waitForEvent(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case collection.ResultMsg:
		if m.fetcher.Apply(msg) {
			m.clampCursor()
			cmds = append(cmds, m.sync())
		}

	case selection.LookupMsg:
		if m.resolver.ApplyLookup(msg) {
			cmds = append(cmds, m.sync())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level != download.LevelVerbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			// Keep only last 5 logs
			if len(m.logs) > 5 {
				m.logs = m.logs[len(m.logs)-5:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case DownloadDoneMsg:
		m.downloading = false
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.logs = append(m.logs, LogEntry{Message: msg.Err.Error(), Level: download.LevelError})
		}
		cmds = append(cmds, m.progress.SetPercent(1))

	case TickMsg:
		if m.manager != nil && m.downloading {
			_, files, total := m.manager.GetProgress()
			var percent float64
			if total > 0 {
				percent = float64(files) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)

	default:
		// cursor blink and similar widget messages
		var cmd tea.Cmd
		switch m.focus {
		case FocusSearch:
			m.search, cmd = m.search.Update(msg)
		case FocusJump:
			m.jump, cmd = m.jump.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.router.Current().Kind != route.KindIndex && m.router.Current().Kind != route.KindBeatmapset {
		return m.handlePageKey(msg)
	}

	switch m.resolver.State().Phase {
	case selection.Open, selection.Resolving:
		return m.handleOverlayKey(msg)
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusJump:
		return m.handleJumpKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handlePageKey handles the about, DMCA and not-found pages.
func (m Model) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.cancel()
		return m, tea.Quit
	case "esc", "backspace":
		if !m.router.Back() {
			m.router.Navigate(route.IndexPath, false)
		}
		return m, m.sync()
	case "m":
		m.router.Navigate(route.DMCAPath, false)
	case "a":
		m.router.Navigate(route.AboutPath, false)
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.resolver.State()

	switch msg.String() {
	case "esc", "backspace":
		m.resolver.Close()
		return m, m.sync()
	case "left", "h":
		if m.diffIndex > 0 {
			m.diffIndex--
		}
	case "right", "l":
		if state.Item != nil && m.diffIndex < len(state.Item.Beatmaps)-1 {
			m.diffIndex++
		}
	case "d":
		if state.Item != nil {
			return m.startDownload(state.Item)
		}
	case "q":
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.focus = FocusList
		m.search.Blur()
		m.cursor = 0
		cmd := m.fetcher.Search(m.ctx, m.search.Value())
		return m, tea.Batch(cmd, m.spinner.Tick)
	case "esc", "tab", "down":
		m.focus = FocusList
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id, err := strconv.ParseInt(strings.TrimSpace(m.jump.Value()), 10, 64)
		m.focus = FocusList
		m.jump.Blur()
		m.jump.SetValue("")
		if err != nil || id <= 0 {
			return m, nil
		}
		m.resolver.Open(id)
		return m, tea.Batch(m.sync(), m.spinner.Tick)
	case "esc":
		m.focus = FocusList
		m.jump.Blur()
		m.jump.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.fetcher.Snapshot().Items

	switch msg.String() {
	case "q":
		m.cancel()
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(items) {
			m.resolver.Open(items[m.cursor].ID)
			return m, m.sync()
		}
	case "/", "tab":
		m.focus = FocusSearch
		return m, m.search.Focus()
	case "g":
		m.focus = FocusJump
		return m, m.jump.Focus()
	case "d":
		if m.cursor < len(items) {
			return m.startDownload(items[m.cursor])
		}
	case "r":
		if m.fetcher.Snapshot().Err != nil {
			return m, tea.Batch(m.fetcher.Retry(m.ctx), m.spinner.Tick)
		}
	case "a":
		m.router.Navigate(route.AboutPath, false)
	case "m":
		m.router.Navigate(route.DMCAPath, false)
	}
	return m, nil
}

// sync re-evaluates the selection after the router or the list changed.
func (m *Model) sync() tea.Cmd {
	cmd := m.resolver.Sync(m.ctx, m.fetcher.Snapshot())

	if st := m.resolver.State(); st.Phase == selection.Open && st.ID != m.diffFor {
		m.diffFor = st.ID
		m.diffIndex = 0
	}
	return cmd
}

func (m *Model) clampCursor() {
	n := len(m.fetcher.Snapshot().Items)
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// startDownload downloads set in the background. Only one batch runs at a
// time.
func (m Model) startDownload(set *model.BeatmapSet) (tea.Model, tea.Cmd) {
	if m.downloading {
		m.logs = append(m.logs, LogEntry{Message: "A download is already running", Level: download.LevelWarning})
		return m, nil
	}

	events := m.events
	m.manager = download.NewManager(m.settings, m.httpClient, m.backend, func(event download.ProgressEvent) {
		select {
		case events <- event:
		default:
			// dropped while the UI is behind
		}
	})
	m.downloading = true
	m.logs = append(m.logs, LogEntry{Message: fmt.Sprintf("Downloading %s - %s", set.Artist, set.Title), Level: download.LevelInfo})

	manager, ctx := m.manager, m.ctx
	return m, tea.Batch(
		m.progress.SetPercent(0),
		m.tickProgress(),
		func() tea.Msg {
			return DownloadDoneMsg{Err: manager.Download(ctx, set)}
		},
	)
}

// waitForEvent returns a command that waits for the next download event.
func (m Model) waitForEvent() tea.Cmd {
	events, ctx := m.events, m.ctx
	return func() tea.Msg {
		select {
		case event := <-events:
			return ProgressMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// selectedBeatmap returns the difficulty picked in the overlay.
func (m Model) selectedBeatmap(set *model.BeatmapSet) (model.Beatmap, bool) {
	sorted := difficulty.SortVariants(set.Beatmaps)
	if len(sorted) == 0 {
		return model.Beatmap{}, false
	}
	return sorted[min(m.diffIndex, len(sorted)-1)], true
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
