package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/haldis/devcard/internal/device"
	"github.com/haldis/devcard/internal/logging"
	"github.com/haldis/devcard/internal/publicip"
)

// statusMessageTTL is how long transient status messages stay visible
const statusMessageTTL = 3 * time.Second

// loadState tracks the three phases of the card load
type loadState int

const (
	stateLoading loadState = iota
	stateReady
	stateFailed
)

// profileLoadedMsg carries both halves of the card. It is delivered once
// per load, only after the snapshot build and the IP resolve have both
// finished; the view never renders with only one of the two results.
type profileLoadedMsg struct {
	id          int
	snapshot    *device.Snapshot
	snapshotErr error
	publicIP    string
	panicErr    error
}

// statusClearMsg expires a transient status message
type statusClearMsg struct {
	id int
}

// profileKeyMap defines key bindings for the loaded card
type profileKeyMap struct {
	Search key.Binding
	Scroll key.Binding
	Reload key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k profileKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Reload, k.Copy, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k profileKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Scroll, k.Reload},
		{k.Copy, k.Help, k.Quit},
	}
}

// loadingKeyMap defines key bindings while the card is loading
type loadingKeyMap struct {
	Quit key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k loadingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k loadingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit},
	}
}

// Model is the interactive device card: one load of snapshot plus public
// IP, rendered as searchable sections in a scrollable viewport
type Model struct {
	builder  *device.Builder
	resolver *publicip.Resolver

	// Load state
	state       loadState
	snapshot    *device.Snapshot
	snapshotErr error
	panicErr    error
	publicIP    string

	// Load lifetime: the context is created at construction and canceled
	// on quit, so a completion after teardown is a no-op. The id guards
	// against a stale load delivering after a reload.
	loadCtx    context.Context
	loadCancel context.CancelFunc
	loadID     int
	loadStart  time.Time

	// Components
	search   SearchBar
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     profileKeyMap
	loadKeys loadingKeyMap

	// Transient status line (clipboard feedback)
	statusMessage string
	statusID      int

	// UI state
	width  int
	height int
}

// NewModel creates the profile view backed by the given builder and
// resolver
func NewModel(builder *device.Builder, resolver *publicip.Resolver) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	search := NewSearchBar("filter rows")
	search.OnChange = func(value string) {
		logging.Debug("card filter changed", zap.String("query", value))
	}

	keys := profileKeyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Scroll: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "scroll"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	loadKeys := loadingKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		builder:    builder,
		resolver:   resolver,
		state:      stateLoading,
		loadCtx:    ctx,
		loadCancel: cancel,
		loadID:     1,
		loadStart:  time.Now(),
		search:     search,
		viewport:   viewport.New(0, 0),
		spinner:    s,
		help:       help.New(),
		keys:       keys,
		loadKeys:   loadKeys,
	}
}

// Init starts the spinner and kicks off the card load
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// load builds the snapshot and resolves the public IP concurrently under
// the current load context. Both goroutines recover panics; the message
// is delivered only after both have finished, and not at all when the
// context was canceled in the meantime.
func (m Model) load() tea.Cmd {
	ctx := m.loadCtx
	id := m.loadID
	builder := m.builder
	resolver := m.resolver

	return func() tea.Msg {
		msg := profileLoadedMsg{id: id}

		var mu sync.Mutex
		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					msg.panicErr = fmt.Errorf("snapshot build panicked: %v", r)
					mu.Unlock()
				}
			}()
			msg.snapshot, msg.snapshotErr = builder.Build(ctx)
		}()

		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					msg.panicErr = fmt.Errorf("public IP resolve panicked: %v", r)
					mu.Unlock()
				}
			}()
			msg.publicIP = resolver.Resolve(ctx)
		}()

		wg.Wait()

		// Torn-down views drop late completions
		if ctx.Err() != nil {
			return nil
		}
		return msg
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = msg.Height - 10 // Leave room for header/search/footer
		if m.state != stateLoading {
			m.viewport.SetContent(m.renderCard())
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case profileLoadedMsg:
		if msg.id != m.loadID {
			// Stale result from before a reload
			return m, nil
		}
		m.snapshot = msg.snapshot
		m.snapshotErr = msg.snapshotErr
		m.panicErr = msg.panicErr
		m.publicIP = msg.publicIP
		if msg.snapshotErr != nil || msg.panicErr != nil {
			m.state = stateFailed
		} else {
			m.state = stateReady
		}
		m.viewport.SetContent(m.renderCard())
		m.viewport.GotoTop()
		return m, nil

	case statusClearMsg:
		if msg.id == m.statusID {
			m.statusMessage = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateKeys handles keyboard input for the current state
func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search field owns keys while focused
	if m.search.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.search.Blur()
			return m, nil
		case "enter":
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.search.Blur()
			return m, cmd
		}

		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.viewport.SetContent(m.renderCard())
		return m, cmd
	}

	if m.state == stateLoading {
		if key.Matches(msg, m.loadKeys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		return m.reload()

	case key.Matches(msg, m.keys.Copy):
		return m.copyCard()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if msg.String() == "esc" && m.search.Value() != "" {
		// Clear the filter
		m.search.SetValue("")
		m.viewport.SetContent(m.renderCard())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// quit cancels the in-flight load so a late completion is a no-op, then
// exits the program
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	return m, tea.Quit
}

// reload abandons the current load context and starts a fresh load
func (m Model) reload() (tea.Model, tea.Cmd) {
	if m.loadCancel != nil {
		m.loadCancel()
	}
	m.loadCtx, m.loadCancel = context.WithCancel(context.Background())
	m.loadID++
	m.state = stateLoading
	m.loadStart = time.Now()
	m.statusMessage = ""
	return m, tea.Batch(m.spinner.Tick, m.load())
}

// copyCard puts the plain-text card on the clipboard
func (m Model) copyCard() (tea.Model, tea.Cmd) {
	text := PlainText(m.sections())
	if err := clipboard.WriteAll(text); err != nil {
		return m.setStatus("Copy failed: " + err.Error())
	}
	return m.setStatus("Card copied to clipboard")
}

// setStatus shows a transient status message next to the search bar
func (m Model) setStatus(message string) (tea.Model, tea.Cmd) {
	m.statusMessage = message
	m.statusID++
	id := m.statusID
	return m, tea.Tick(statusMessageTTL, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// sections assembles the unfiltered card sections from the loaded data
func (m Model) sections() []Section {
	return BuildSections(m.snapshot, m.publicIP)
}

// View renders the current state inside the application frame
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = MinTerminalWidth
	}
	height := m.height
	if height == 0 {
		height = 24
	}

	var content, helpText string
	if m.state == stateLoading {
		content = m.renderLoading(width)
		helpText = m.help.View(m.loadKeys)
	} else {
		content = m.renderBody()
		helpText = m.help.View(m.keys)
	}

	return RenderApplicationContainer(content, helpText, width, height)
}

// renderLoading renders a centered spinner with elapsed time
func (m Model) renderLoading(width int) string {
	elapsed := int(time.Since(m.loadStart).Seconds())

	title := fmt.Sprintf("%s READING DEVICE CARD", m.spinner.View())
	subtitle := "Collecting device details and public IP..."
	elapsedText := fmt.Sprintf("Elapsed: %ds", elapsed)

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(title),
		"",
		SubtitleStyle.Render(subtitle),
		"",
		SubtitleStyle.Render(elapsedText),
		"",
	)

	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderBody renders the search line and the scrollable card
func (m Model) renderBody() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.search.View())
	if m.statusMessage != "" {
		b.WriteString("  ")
		b.WriteString(StatusStyle.Render(m.statusMessage))
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())

	return b.String()
}

// renderCard renders the filtered sections, preceded by an alert box
// when the load failed. Partial data still renders: a nil snapshot
// leaves the device section empty but never suppresses the network
// section.
func (m Model) renderCard() string {
	var b strings.Builder

	if m.state == stateFailed {
		b.WriteString(RenderError(m.loadAlert()))
		b.WriteString("\n\n")
	}

	sections := FilterSections(m.sections(), m.search.Value())
	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(SectionTitleStyle.Render(section.Title))
		b.WriteString("\n\n")
		for _, row := range section.Rows {
			b.WriteString("  ")
			b.WriteString(RowLabelStyle.Render(row.Label))
			b.WriteString(RowValueStyle.Render(row.Value))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// loadAlert describes why the load failed
func (m Model) loadAlert() string {
	if m.panicErr != nil {
		return fmt.Sprintf("Could not load the device card: %v", m.panicErr)
	}
	if m.snapshotErr != nil {
		return fmt.Sprintf("Could not read device details: %v", m.snapshotErr)
	}
	return "Could not load the device card"
}

// Run starts the interactive profile view and blocks until the user
// quits. The load context is canceled on the way out regardless of how
// the program ended.
func Run(builder *device.Builder, resolver *publicip.Resolver) error {
	program := tea.NewProgram(NewModel(builder, resolver), tea.WithAltScreen())

	final, err := program.Run()
	if m, ok := final.(Model); ok && m.loadCancel != nil {
		m.loadCancel()
	}
	return err
}
