package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/chat"
	"github.com/csheth/fc100v/internal/keypad"
	"github.com/csheth/fc100v/internal/llm"
	"github.com/csheth/fc100v/internal/logging"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Interpreter calc.Interpreter
	LLM         llm.Client
	// BuildLLM rebuilds the client once the manual text is available. When
	// nil the manual is loaded but not used.
	BuildLLM       func(manualText string) (llm.Client, error)
	ManualSource   string
	TranscriptPath string
	RequestTimeout time.Duration
	Logger         *logrus.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}
	if config.Clipboard == nil {
		config.Clipboard = clipboard.WriteAll
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaultRequestTimeout
	}
	if config.Interpreter == (calc.Interpreter{}) {
		config.Interpreter = calc.New()
	}

	input := textinput.New()
	input.Placeholder = overlayPlaceholder
	input.CharLimit = 500
	input.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(40, 10)
	vp.MouseWheelEnabled = true

	resolver := keypad.NewResolver(keypad.DefaultBindings())
	m := &model{
		config:   config,
		interp:   config.Interpreter,
		state:    config.Interpreter.Start(),
		resolver: resolver,
		keys:     newKeyMap(resolver),
		help:     help.New(),
		chat:     chat.New(),
		input:    input,
		spinner:  spin,
		viewport: vp,
		jobs:     newJobBus(config.Logger),
		layout:   newPageLayout(),
		llm:      config.LLM,
		log:      config.Logger,
		running:  map[string]jobSnapshot{},
	}
	m.applyLayout()
	return m
}

type model struct {
	config Config
	interp calc.Interpreter
	state  calc.DisplayState
	// lastKey is highlighted on the keypad.
	lastKey calc.KeyID

	resolver *keypad.Resolver
	keys     keyMap
	help     help.Model

	chat     *chat.Controller
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	jobs    *jobBus
	running map[string]jobSnapshot
	layout  pageLayout

	llm          llm.Client
	manual       manualState
	manualChars  int
	infoMessage  string
	errorMessage string
	log          *logrus.Logger
}

func (m *model) Init() tea.Cmd {
	if m.config.ManualSource == "" {
		return nil
	}
	m.manual = manualLoading
	m.infoMessage = "Loading manual…"
	return m.jobs.Start(jobKindManual, manualLoadTimeout, loadManualJob(m.config.ManualSource))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.applyLayout()
		return m, nil
	case spinner.TickMsg:
		if m.chat.Pending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if m.chat.Open {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		if m.chat.Open {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.running[msg.Snapshot.ID] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		delete(m.running, msg.Snapshot.ID)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case askResultMsg:
		return m.handleAskResult(msg)
	case manualLoadedMsg:
		return m.handleManualLoaded(msg)
	case archiveResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Transcript not saved: %v", msg.err)
			return m, nil
		}
		m.infoMessage = fmt.Sprintf("Archived %d messages.", msg.count)
		return m, nil
	case clipboardMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", msg.err)
			return m, nil
		}
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Copied %q to clipboard.", msg.text)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Assistant):
		return m, m.openOverlay()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, copyReadoutCmd(m.config.Clipboard, calc.Project(m.state).Line3)
	}
	if id, ok := m.resolver.Resolve(msg); ok {
		m.press(id)
		return m, nil
	}
	m.log.WithField("key", msg.String()).Debug("Key pressed")
	return m, nil
}

// press applies one calculator key.
func (m *model) press(id calc.KeyID) {
	fields := logging.KeyFields(id, m.state)
	m.state = m.interp.Apply(m.state, id)
	m.lastKey = id
	m.log.WithFields(fields).Debug("key event")
}

func (m *model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m, m.closeOverlay()
	case tea.KeyEnter:
		return m, m.submitQuestion()
	}
	if key.Matches(msg, m.keys.Scroll) {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	if m.chat.Pending {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.chat.SetQuery(m.input.Value())
	return m, cmd
}

func (m *model) openOverlay() tea.Cmd {
	m.chat.Toggle()
	m.keys.overlay = true
	m.help.ShowAll = false
	m.input.SetValue("")
	m.refreshConversation()
	m.log.Debug("assistant opened")
	return m.input.Focus()
}

func (m *model) closeOverlay() tea.Cmd {
	startedAt := m.chat.OpenedAt()
	closed := m.chat.Toggle()
	m.keys.overlay = false
	m.input.SetValue("")
	m.input.Blur()
	m.refreshConversation()
	m.log.WithField("messages", len(closed)).Debug("assistant closed")
	if m.config.TranscriptPath == "" || len(closed) == 0 {
		return nil
	}
	return m.jobs.Start(jobKindArchive, 0, archiveSessionJob(m.config.TranscriptPath, m.providerName(), closed, startedAt))
}

func (m *model) submitQuestion() tea.Cmd {
	m.chat.SetQuery(m.input.Value())
	req, ok := m.chat.Submit()
	if !ok {
		return nil
	}
	m.input.SetValue("")
	m.input.Blur()
	m.refreshConversation()
	if m.llm == nil {
		m.chat.Fail(req, "assistant is not configured")
		m.input.Focus()
		return nil
	}
	m.log.WithFields(logrus.Fields{"provider": m.llm.Name(), "chars": len(req.Question)}).Info("question submitted")
	return tea.Batch(m.spinner.Tick, m.jobs.Start(jobKindAsk, m.config.RequestTimeout, askJob(m.llm, req)))
}

func (m *model) handleAskResult(msg askResultMsg) (tea.Model, tea.Cmd) {
	var accepted bool
	if msg.err != nil {
		accepted = m.chat.Fail(msg.req, msg.err.Error())
	} else {
		accepted = m.chat.Resolve(msg.req, msg.answer)
	}
	if !accepted {
		m.log.WithField("generation", msg.req.Generation).Debug("dropped answer for closed session")
		return m, nil
	}
	m.refreshConversation()
	if m.chat.Open {
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *model) handleManualLoaded(msg manualLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.manual = manualFailed
		m.errorMessage = fmt.Sprintf("Manual unavailable: %v", msg.err)
		m.log.WithError(msg.err).WithField("source", msg.source).Warn("manual load failed")
		return m, nil
	}
	m.manual = manualReady
	m.manualChars = len(msg.text)
	m.infoMessage = fmt.Sprintf("Manual loaded (%d chars).", m.manualChars)
	if m.config.BuildLLM != nil {
		client, err := m.config.BuildLLM(msg.text)
		if err != nil {
			m.errorMessage = fmt.Sprintf("Assistant unchanged: %v", err)
			return m, nil
		}
		m.llm = client
	}
	return m, nil
}

func (m *model) providerName() string {
	if m.llm == nil {
		return ""
	}
	return m.llm.Name()
}

func (m *model) applyLayout() {
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.input.Width = m.layout.viewportWidth - 4
	m.refreshConversation()
}
