package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/todo/internal/prefs"
	"github.com/five82/todo/internal/state"
	"github.com/five82/todo/internal/todoapi"
)

// inputMode says where key presses go.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeEdit
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   todoapi.Service
	Logger    *log.Logger
	BaseURL   string
	LogFile   string
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	service   todoapi.Service
	logger    *log.Logger
	baseURL   string
	logFile   string
	prefs     prefs.Prefs
	prefsPath string
	noticeTTL time.Duration
	location  *time.Location

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	input    textinput.Model
	mode     inputMode
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	view     state.View
	selected int
	inflight int
	loaded   bool

	// Diagnostics overlay
	logs logState
}

// New creates a new Bubble Tea model. The first load is issued by Init.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	p := opts.Prefs
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = prefs.Default().Theme
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500

	m := Model{
		ctx:       ctx,
		service:   opts.Service,
		logger:    logger,
		baseURL:   opts.BaseURL,
		logFile:   opts.LogFile,
		prefs:     p,
		prefsPath: prefsPath,
		noticeTTL: state.NotificationTTL,
		location:  time.Local,
		theme:     GetTheme(p.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:     input,
		inflight:  1,
		view:      state.View{Items: []todoapi.TodoItem{}},
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listCmd(m.ctx, m.service),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		m.resizeLogViewport()
		return m, nil

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsLoadedMsg:
		return m.handleLoaded(msg)

	case itemCreatedMsg:
		return m.handleCreated(msg)

	case itemUpdatedMsg:
		return m.handleUpdated(msg)

	case itemRemovedMsg:
		return m.handleRemoved(msg)

	case noticeExpiredMsg:
		m.view.Dismiss(msg.seq)
		return m, nil

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.logs.visible {
		return m.renderLogs()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to the active overlay or mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.logs.visible {
		return m.handleLogsKey(msg)
	}

	if m.mode != modeBrowse {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.view.DismissCurrent()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.applyTheme()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Timestamps):
		m.prefs.HideTimestamps = !m.prefs.HideTimestamps
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.logs.visible = true
		m.resizeLogViewport()
		return m, refreshLogsCmd(m.logFile)

	case key.Matches(msg, m.keys.Reload):
		return m, m.startRequest(listCmd(m.ctx, m.service))

	case key.Matches(msg, m.keys.Add):
		return m.beginAdd()

	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, m.startRequest(removeCmd(m.ctx, m.service, item.ID))

	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		return m, m.startRequest(toggleCmd(m.ctx, m.service, item))

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.view.Items)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.view.Items)-1, 0)
	}

	return m, nil
}

// handleInputKey processes keys while the draft or edit input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		if m.mode == modeEdit {
			m.view.CancelEdit()
		}
		m.leaveInput()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.mode == modeEdit {
			return m.submitEdit()
		}
		return m.submitAdd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.mode == modeEdit {
		m.view.EditDraft = m.input.Value()
	} else {
		m.view.Draft = m.input.Value()
	}
	return m, cmd
}

func (m Model) beginAdd() (tea.Model, tea.Cmd) {
	m.mode = modeAdd
	m.input.Placeholder = "What needs to be done?"
	m.input.SetValue(m.view.Draft)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok || !m.view.BeginEdit(item.ID) {
		return m, nil
	}
	m.mode = modeEdit
	m.input.Placeholder = ""
	m.input.SetValue(m.view.EditDraft)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	m.view.Draft = m.input.Value()
	if !m.view.CanAdd() {
		return m, nil
	}
	m.leaveInput()
	return m, m.startRequest(createCmd(m.ctx, m.service, m.view.Draft))
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	if !m.view.Editing() {
		m.leaveInput()
		return m, nil
	}
	m.view.EditDraft = m.input.Value()
	id, text := m.view.EditingID, m.view.EditDraft
	m.leaveInput()
	return m, m.startRequest(editCmd(m.ctx, m.service, id, text))
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.Reset()
}

// startRequest counts an in-flight call and starts the spinner when it is the
// only one.
func (m *Model) startRequest(cmd tea.Cmd) tea.Cmd {
	m.inflight++
	if m.inflight == 1 {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) finishRequest() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m Model) selectedItem() (todoapi.TodoItem, bool) {
	if m.selected < 0 || m.selected >= len(m.view.Items) {
		return todoapi.TodoItem{}, false
	}
	return m.view.Items[m.selected], true
}

// selectID moves the cursor to the item with id, falling back to clamping.
func (m *Model) selectID(id string) {
	for i, item := range m.view.Items {
		if item.ID == id {
			m.selected = i
			return
		}
	}
	m.clampSelection()
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.view.Items) {
		m.selected = len(m.view.Items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs", "path", m.prefsPath, "err", err)
	}
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
	m.input.Cursor.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}
