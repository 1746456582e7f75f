package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/klondike/internal/autosolve"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/game"
)

// Cursor positions. The top row holds the stock, the waste and the four
// foundations; the bottom row holds the seven columns.
const (
	pileStock       = 0
	pileWaste       = 1
	firstFoundation = 2
	firstColumn     = firstFoundation + game.NumFoundations
	numPiles        = firstColumn + game.NumColumns

	cellWidth  = 5
	logLines   = 6
	maxLogSize = 200
)

// stepMsg asks the model to replay the next auto-solve step of animation gen
type stepMsg struct {
	gen int
}

// selection is a card picked up and waiting for a target pile
type selection struct {
	card deck.CardID
	pile int
}

// Model is the Bubble Tea model for an interactive game
type Model struct {
	game     *game.Game
	clock    quartz.Clock
	interval time.Duration
	logger   *log.Logger

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	gameLog []string
	message string
	isError bool

	cursor    int
	depth     int
	selected  *selection
	animating bool
	animGen   int
	quitting  bool

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the clock that paces animated auto-solve
func WithClock(clock quartz.Clock) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithStepInterval sets the pause between animated auto-solve steps
func WithStepInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// New creates a model that plays g
func New(g *game.Game, logger *log.Logger, opts ...Option) *Model {
	vp := viewport.New(40, logLines)
	vp.SetContent("")

	m := &Model{
		game:        g,
		clock:       quartz.NewReal(),
		interval:    autosolve.DefaultInterval,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		cursor:      firstColumn,
	}
	for _, opt := range opts {
		opt(m)
	}

	g.Events().Subscribe(game.SubscriberFunc(m.onEvent))
	m.resetDepth()
	m.AddLogEntry(fmt.Sprintf("Dealt game %d", g.Seed()))
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Klondike")
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(msg.Width-2, 10)
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)
		return m, nil

	case stepMsg:
		if msg.gen != m.animGen {
			return m, nil
		}
		return m, m.step()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.refreshKeys()
	m.message, m.isError = "", false

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.animating {
			_ = m.game.AbortAutoSolve()
		}
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Up):
		m.moveDepth(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveDepth(1)

	case key.Matches(msg, m.keys.Cancel):
		if m.animating {
			m.stopAnimation()
			return nil
		}
		m.selected = nil

	case key.Matches(msg, m.keys.Select):
		m.selectPile()

	case key.Matches(msg, m.keys.Draw):
		m.selected = nil
		m.report(m.game.Draw())

	case key.Matches(msg, m.keys.Undo):
		m.selected = nil
		m.report(m.game.Undo())

	case key.Matches(msg, m.keys.AutoSolve):
		if m.animating {
			m.stopAnimation()
			return nil
		}
		return m.startAnimation()

	case key.Matches(msg, m.keys.Solve):
		m.selected = nil
		m.report(m.game.SolveInstantly())

	case key.Matches(msg, m.keys.Hint):
		m.showHint()

	case key.Matches(msg, m.keys.NewGame):
		m.selected = nil
		m.animating = false
		m.game.NewGame()
		m.cursor = firstColumn
	}

	m.resetDepthIfInvalid()
	m.refreshKeys()
	return nil
}

// refreshKeys enables auto-solve keys only when they can succeed
func (m *Model) refreshKeys() {
	winnable := m.game.IsWinnable()
	m.keys.AutoSolve.SetEnabled(winnable || m.animating)
	m.keys.Solve.SetEnabled(winnable)
	m.keys.Undo.SetEnabled(m.game.CanUndo())
}

func (m *Model) startAnimation() tea.Cmd {
	m.selected = nil
	plan, err := m.game.BeginAutoSolve()
	if err != nil {
		m.report(err)
		return nil
	}
	m.animating = true
	m.animGen++
	m.setMessage(fmt.Sprintf("Auto-solving %d cards", len(plan)), false)
	return m.tick()
}

func (m *Model) stopAnimation() {
	m.animating = false
	if err := m.game.AbortAutoSolve(); err != nil && !errors.Is(err, game.ErrNotSolving) {
		m.report(err)
		return
	}
	m.setMessage("Auto-solve stopped", false)
}

// tick waits one step interval on the model's clock
func (m *Model) tick() tea.Cmd {
	timer := m.clock.NewTimer(m.interval)
	gen := m.animGen
	return func() tea.Msg {
		<-timer.C
		return stepMsg{gen: gen}
	}
}

func (m *Model) step() tea.Cmd {
	if !m.animating {
		return nil
	}
	done, err := m.game.StepAutoSolve()
	if errors.Is(err, game.ErrNotSolving) {
		m.animating = false
		return nil
	}
	if err != nil {
		m.animating = false
		m.report(err)
		return nil
	}
	m.resetDepthIfInvalid()
	if done {
		m.animating = false
		m.refreshKeys()
		return nil
	}
	return m.tick()
}

// selectPile picks up the card under the cursor, or drops the picked up card
// onto the pile under the cursor
func (m *Model) selectPile() {
	b := m.game.Board()

	if m.selected == nil {
		switch {
		case m.cursor == pileStock:
			m.report(m.game.Draw())
		case m.cursor == pileWaste:
			if c, ok := b.WasteTop(); ok {
				m.selected = &selection{card: c.ID(), pile: m.cursor}
			}
		case m.cursor < firstColumn:
			if c, ok := b.FoundationTop(m.cursor - firstFoundation); ok && m.game.Rules().FoundationReturn {
				m.selected = &selection{card: c.ID(), pile: m.cursor}
			}
		default:
			col := b.Tableau[m.cursor-firstColumn]
			if m.depth < len(col) && col[m.depth].FaceUp {
				m.selected = &selection{card: col[m.depth].ID(), pile: m.cursor}
			}
		}
		if m.selected == nil && m.cursor != pileStock {
			m.setMessage("Nothing to pick up there", true)
		}
		return
	}

	sel := *m.selected
	m.selected = nil
	switch {
	case m.cursor == sel.pile:
		// dropping onto the source cancels
	case m.cursor >= firstFoundation && m.cursor < firstColumn:
		m.report(m.game.MoveToFoundation(sel.card, m.cursor-firstFoundation))
	case m.cursor >= firstColumn:
		m.report(m.game.MoveToTableau(sel.card, m.cursor-firstColumn))
	default:
		m.setMessage("Cards cannot be placed there", true)
	}
}

func (m *Model) showHint() {
	if m.game.IsWinnable() {
		m.setMessage("Hint: the rest plays itself, press a", false)
		return
	}
	cmds := m.game.LegalCommands()
	for _, cmd := range cmds {
		if cmd.Kind != game.CommandDraw {
			m.setMessage("Hint: "+cmd.String(), false)
			return
		}
	}
	if len(cmds) > 0 {
		m.setMessage("Hint: draw from the stock", false)
		return
	}
	m.setMessage("No moves left", true)
}

func (m *Model) moveCursor(delta int) {
	m.cursor = (m.cursor + delta + numPiles) % numPiles
	m.resetDepth()
}

func (m *Model) moveDepth(delta int) {
	if m.cursor < firstColumn {
		return
	}
	col := m.game.Board().Tableau[m.cursor-firstColumn]
	next := m.depth + delta
	if next < 0 || next >= len(col) || !col[next].FaceUp {
		return
	}
	m.depth = next
}

// resetDepth points the cursor at the top card of the current column
func (m *Model) resetDepth() {
	m.depth = 0
	if m.cursor >= firstColumn {
		m.depth = max(len(m.game.Board().Tableau[m.cursor-firstColumn])-1, 0)
	}
}

func (m *Model) resetDepthIfInvalid() {
	if m.cursor < firstColumn {
		return
	}
	col := m.game.Board().Tableau[m.cursor-firstColumn]
	if m.depth >= len(col) || (len(col) > 0 && !col[m.depth].FaceUp) {
		m.resetDepth()
	}
}

func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, game.ErrIllegalMove):
		m.setMessage(err.Error(), true)
	default:
		m.logger.Debug("Command rejected", "error", err)
		m.setMessage(err.Error(), true)
	}
}

func (m *Model) setMessage(msg string, isError bool) {
	m.message, m.isError = msg, isError
}

// onEvent turns game events into log entries
func (m *Model) onEvent(ev game.GameEvent) {
	switch e := ev.(type) {
	case game.NewGameEvent:
		m.AddLogEntry(fmt.Sprintf("Dealt game %d", e.Seed))
	case game.MoveAppliedEvent:
		m.AddLogEntry(e.Command.String())
	case game.UndoEvent:
		m.AddLogEntry("Undo")
	case game.GameWonEvent:
		m.AddLogEntry(fmt.Sprintf("Won in %d moves!", e.Moves))
		m.setMessage(fmt.Sprintf("You won in %d moves", e.Moves), false)
	case game.AutoSolveStartedEvent:
		m.AddLogEntry(fmt.Sprintf("Auto-solve started (%d steps)", len(e.Plan)))
	case game.AutoSolveFinishedEvent:
		if e.Aborted {
			m.AddLogEntry(fmt.Sprintf("Auto-solve stopped after %d steps", e.Steps))
		} else {
			m.AddLogEntry(fmt.Sprintf("Auto-solve finished after %d steps", e.Steps))
		}
	}
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > maxLogSize {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogSize:]
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// Log returns the game log entries
func (m *Model) Log() []string {
	return m.gameLog
}

// Message returns the status line text and whether it reports an error
func (m *Model) Message() (string, bool) {
	return m.message, m.isError
}

// Animating reports whether an animated auto-solve is running
func (m *Model) Animating() bool {
	return m.animating
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	b := m.game.Board()
	var out strings.Builder

	out.WriteString(m.renderHeader(b))
	out.WriteString("\n\n")
	out.WriteString(m.renderTopRow(b))
	out.WriteString("\n\n")
	out.WriteString(m.renderColumns(b))
	out.WriteString("\n")

	if m.message != "" {
		style := SuccessStyle
		if m.isError {
			style = ErrorStyle
		}
		out.WriteString(style.Render(m.message))
	}
	out.WriteString("\n")

	out.WriteString(LogPaneStyle.Render(m.logViewport.View()))
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}

func (m *Model) renderHeader(b *game.Board) string {
	status := m.game.Status().String()
	if m.selected != nil {
		status += " | holding " + m.selected.card.String()
	}
	return HeaderStyle.Render("Klondike") + " " +
		LabelStyle.Render(fmt.Sprintf("Moves: %d  Stock: %d  Status: %s", b.Moves, len(b.Stock), status))
}

func (m *Model) renderTopRow(b *game.Board) string {
	cells := make([]string, 0, firstColumn+1)

	stock := EmptyPileStyle.Render("[ ]")
	if len(b.Stock) > 0 {
		stock = FaceDownStyle.Render("[#]")
	}
	cells = append(cells, m.decorate(pileStock, stock))

	waste := EmptyPileStyle.Render("[ ]")
	if c, ok := b.WasteTop(); ok {
		waste = renderCard(c)
	}
	cells = append(cells, m.decorate(pileWaste, waste))
	cells = append(cells, strings.Repeat(" ", cellWidth))

	for i := range game.NumFoundations {
		pile := EmptyPileStyle.Render("[F]")
		if c, ok := b.FoundationTop(i); ok {
			pile = renderCard(c)
		}
		cells = append(cells, m.decorate(firstFoundation+i, pile))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) renderColumns(b *game.Board) string {
	cols := make([]string, 0, game.NumColumns)
	for i, col := range b.Tableau {
		pile := firstColumn + i
		var lines []string
		if len(col) == 0 {
			lines = append(lines, m.decorate(pile, EmptyPileStyle.Render("[ ]")))
		}
		for depth, c := range col {
			cell := renderCard(c)
			switch {
			case m.selected != nil && m.selected.pile == pile && m.selected.card == c.ID():
				cell = SelectedStyle.Render(c.String())
			case m.cursor == pile && m.depth == depth:
				cell = CursorStyle.Render(c.String())
			}
			lines = append(lines, lipgloss.NewStyle().Width(cellWidth).Render(cell))
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// decorate pads a top-row cell and highlights it under the cursor or selection
func (m *Model) decorate(pile int, content string) string {
	switch {
	case m.selected != nil && m.selected.pile == pile:
		content = SelectedStyle.Render(content)
	case m.cursor == pile:
		content = CursorStyle.Render(content)
	}
	return lipgloss.NewStyle().Width(cellWidth).Render(content)
}

func renderCard(c deck.Card) string {
	if !c.FaceUp {
		return FaceDownStyle.Render("##")
	}
	if c.IsRed() {
		return RedCardStyle.Render(c.String())
	}
	return BlackCardStyle.Render(c.String())
}
