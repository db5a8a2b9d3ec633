package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hiibolt/sabi/pkg/ast"
	"github.com/hiibolt/sabi/pkg/playback"
)

const (
	// Revealed characters per second while a dialogue line scrolls in.
	scrollCharsPerSecond = 50
	scrollTickInterval   = 40 * time.Millisecond
	// One backward cursor step per frame while rewinding.
	rewindTickInterval = 150 * time.Millisecond
)

// ConsoleUI is the BubbleTea model that hosts playback. It owns the
// blocking flag: while a dialogue line is still scrolling in, advancing
// is not allowed, a keypress skips the scroll instead.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	engine     *playback.Engine
	playerName string
	titleCaser cases.Caser

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	// Current dialogue line
	speaker  string
	message  string
	shown    int  // revealed runes
	blocking bool // true while the line is still scrolling in

	// Rewind animation
	rewindSteps int

	// Pending choice, nil unless the cursor sits on one
	choice         *ast.Choice
	selectedOption int

	// History modal
	showHistory     bool
	historyViewport viewport.Model

	transcript []string
	finished   bool
	status     string
}

type scrollTickMsg struct{}
type rewindTickMsg struct{}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	dialogueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	stageNoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	finishedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	textboxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	selectedOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

func NewConsoleUI(engine *playback.Engine, playerName string) *ConsoleUI {
	vp := viewport.New(60, 16)
	hvp := viewport.New(60, 16)

	return &ConsoleUI{
		engine:          engine,
		playerName:      playerName,
		titleCaser:      cases.Title(language.English),
		viewport:        vp,
		historyViewport: hvp,
	}
}

func (m *ConsoleUI) bindings() ast.Bindings {
	return ast.PlayerBindings(m.playerName)
}

func (m *ConsoleUI) Init() tea.Cmd {
	return m.advance()
}

// advance drives the engine forward until it lands on something that
// waits for the player: a dialogue line, a choice, or the end of the act.
// Stage directives execute immediately as transcript notes. Jumps are
// followed at most once per scene within a single call, so a jump cycle
// with no dialogue cannot spin this loop forever.
func (m *ConsoleUI) advance() tea.Cmd {
	jumped := make(map[string]bool)
	for {
		if err := m.engine.Advance(); err != nil {
			if errors.Is(err, playback.ErrActFinished) {
				// Expected end of content, handled gracefully.
				m.finished = true
				return nil
			}
			m.status = err.Error()
			return nil
		}

		switch s := m.engine.Current().(type) {
		case ast.Dialogue:
			speaker, _ := ast.ResolveSpeaker(s.Speaker, m.bindings())
			text, _ := s.Text.Eval(m.bindings())
			m.speaker = speaker
			m.message = text
			m.shown = 0
			m.blocking = true
			m.appendTranscript(speakerStyle.Render(m.titleCaser.String(speaker)) + ": " + text)
			return scrollTick()

		case ast.Choice:
			choice := s
			m.choice = &choice
			m.selectedOption = 0
			return nil

		case ast.Jump:
			if jumped[s.Scene] {
				m.status = "Script loops through scene " + s.Scene + " without pausing"
				return nil
			}
			jumped[s.Scene] = true
			m.appendTranscript(stageNoteStyle.Render("· scene: " + s.Scene))
			// Post-build acts cannot name an unknown scene.
			if err := m.engine.ChangeScene(s.Scene); err != nil {
				m.status = err.Error()
				return nil
			}

		default:
			m.appendTranscript(stageNoteStyle.Render("· " + stageNote(m.engine.Current())))
		}
	}
}

// stageNote renders the non-waiting statements as one-line directions.
// The switch covers every remaining variant.
func stageNote(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case ast.Spawn:
		note := fmt.Sprintf("%s enters (%s, %s)", s.Actor, s.Emotion, s.Position)
		if s.Fade {
			note += ", fading in"
		}
		return note
	case ast.SetEmotion:
		return fmt.Sprintf("%s looks %s", s.Actor, s.Emotion)
	case ast.Despawn:
		if s.Fade {
			return s.Actor + " fades out"
		}
		return s.Actor + " leaves"
	case ast.Look:
		return fmt.Sprintf("%s faces %s", s.Actor, s.Direction)
	case ast.Move:
		return fmt.Sprintf("%s moves to %s", s.Actor, s.Position)
	case ast.Background:
		return "background: " + s.Name
	case ast.GUI:
		return fmt.Sprintf("%s skin: %s (%s)", s.Target, s.Sprite, s.Mode)
	default:
		return fmt.Sprintf("%T", stmt)
	}
}

func scrollTick() tea.Cmd {
	return tea.Tick(scrollTickInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{}
	})
}

func rewindTick() tea.Cmd {
	return tea.Tick(rewindTickInterval, func(time.Time) tea.Msg {
		return rewindTickMsg{}
	})
}

func (m *ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 10
		m.historyViewport.Width = msg.Width - 10
		m.historyViewport.Height = msg.Height - 8
		m.refreshViewport()
		m.ready = true
		return m, nil

	case scrollTickMsg:
		if !m.blocking {
			return m, nil
		}
		m.shown += int(scrollCharsPerSecond * scrollTickInterval.Seconds())
		if m.shown >= len([]rune(m.message)) {
			m.shown = len([]rune(m.message))
			m.blocking = false
			return m, nil
		}
		return m, scrollTick()

	case rewindTickMsg:
		if m.rewindSteps == 0 {
			return m, nil
		}
		m.engine.RewindOneStep()
		m.rewindSteps--
		if m.rewindSteps > 0 {
			return m, rewindTick()
		}
		// Landed on the prior dialogue; show it again.
		if d, ok := m.engine.Current().(ast.Dialogue); ok {
			speaker, _ := ast.ResolveSpeaker(d.Speaker, m.bindings())
			text, _ := d.Text.Eval(m.bindings())
			m.speaker = speaker
			m.message = text
			m.shown = 0
			m.blocking = true
			return m, scrollTick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "h":
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.historyViewport.SetContent(m.historyContent())
			m.historyViewport.GotoBottom()
		}
		return m, nil

	case "y":
		lines := m.engine.Summarize(m.bindings())
		if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
			m.status = "Clipboard unavailable"
		} else {
			m.status = "History copied"
		}
		return m, nil

	case "r":
		if m.blocking || m.rewindSteps > 0 || m.choice != nil || m.showHistory {
			return m, nil
		}
		distance, err := m.engine.RewindDistance()
		if err != nil {
			// Both cannot-rewind conditions just disable the control.
			m.status = "Nothing to rewind to"
			return m, nil
		}
		m.rewindSteps = distance
		return m, rewindTick()

	case "up", "k":
		if m.choice != nil {
			if m.selectedOption > 0 {
				m.selectedOption--
			}
			return m, nil
		}
		return m.scrollViewports(msg)

	case "down", "j":
		if m.choice != nil {
			if m.selectedOption < len(m.choice.Options)-1 {
				m.selectedOption++
			}
			return m, nil
		}
		return m.scrollViewports(msg)

	case "enter", " ":
		if m.showHistory {
			m.showHistory = false
			return m, nil
		}
		if m.rewindSteps > 0 {
			return m, nil
		}
		if m.choice != nil {
			opt := m.choice.Options[m.selectedOption]
			m.choice = nil
			label, _ := opt.Label.Eval(m.bindings())
			m.appendTranscript(stageNoteStyle.Render("> " + label))
			if err := m.engine.ChangeScene(opt.Scene); err != nil {
				m.status = err.Error()
				return m, nil
			}
			return m, m.advance()
		}
		if m.blocking {
			// Skip the scroll instead of advancing.
			m.shown = len([]rune(m.message))
			m.blocking = false
			return m, nil
		}
		if m.finished {
			return m, tea.Quit
		}
		return m, m.advance()
	}

	return m, nil
}

// scrollViewports lets the active viewport handle scroll keys itself.
func (m *ConsoleUI) scrollViewports(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.showHistory {
		m.historyViewport, cmd = m.historyViewport.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *ConsoleUI) appendTranscript(line string) {
	m.transcript = append(m.transcript, line)
	m.refreshViewport()
}

func (m *ConsoleUI) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 60
	}
	var sb strings.Builder
	for _, line := range m.transcript {
		sb.WriteString(wordwrap.String(line, width))
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m *ConsoleUI) historyContent() string {
	lines := m.engine.Summarize(m.bindings())
	width := m.historyViewport.Width
	if width <= 0 {
		width = 60
	}
	return wordwrap.String(strings.Join(lines, "\n"), width)
}

func (m *ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHistory {
		modal := modalStyle.Render(
			modalTitleStyle.Render("HISTORY") + "\n\n" + m.historyViewport.View())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SABI — "+m.engine.Act().Name) + "\n\n")
	sb.WriteString(m.viewport.View() + "\n")

	switch {
	case m.choice != nil:
		prompt, _ := m.choice.Prompt.Eval(m.bindings())
		var box strings.Builder
		box.WriteString(prompt + "\n\n")
		for i, opt := range m.choice.Options {
			label, _ := opt.Label.Eval(m.bindings())
			if i == m.selectedOption {
				box.WriteString(selectedOptionStyle.Render(" "+label+" ") + "\n")
			} else {
				box.WriteString(" " + label + " \n")
			}
		}
		sb.WriteString(textboxStyle.Width(m.width - 4).Render(box.String()))

	case m.finished:
		sb.WriteString(textboxStyle.Width(m.width - 4).Render(
			finishedStyle.Render("The End") + "\nPress enter to exit."))

	default:
		revealed := string([]rune(m.message)[:m.shown])
		namePlate := speakerStyle.Render(m.titleCaser.String(m.speaker))
		body := wordwrap.String(revealed, m.width-8)
		sb.WriteString(textboxStyle.Width(m.width - 4).Render(namePlate + "\n" + body))
	}

	sb.WriteString("\n")
	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status) + "\n")
	}
	sb.WriteString(helpStyle.Render("enter: advance · r: rewind · h: history · y: copy · q: quit"))
	return sb.String()
}
