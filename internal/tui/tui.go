package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/pokemon-agent/internal/agent"
	"github.com/tatianab/pokemon-agent/internal/app"
	"github.com/tatianab/pokemon-agent/internal/models"
)

type model struct {
	app      *app.App
	interval time.Duration

	running bool
	busy    bool
	quit    bool

	textInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model

	log   []string
	state models.GameState
	last  *agent.TickResult
	err   error

	width  int
	height int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	fallbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7AF5F"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

const helpText = "Commands: /player <engine>, /pokemon <engine>, /dual on|off, /pause, /resume, /step, /save [name], /load <name>, /runs, /engines, /quit"

// maxLogLines bounds the commentary log kept in memory.
const maxLogLines = 500

func NewModel(a *app.App, interval time.Duration) model {
	ti := textinput.New()
	ti.Placeholder = "Type a command, e.g. /pause"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if interval <= 0 {
		interval = agent.DefaultInterval
	}
	return model{
		app:       a,
		interval:  interval,
		running:   true,
		textInput: ti,
		spinner:   sp,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.scheduleTick(0))
}

// nextTickMsg asks for a tick to start.
type nextTickMsg struct{}

// tickDoneMsg carries the outcome of one loop tick.
type tickDoneMsg struct {
	res agent.TickResult
	err error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit

		case tea.KeyEnter:
			line := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			if line == "" {
				return m, nil
			}
			m.appendLog(userStyle.Render("> " + line))
			var cmd tea.Cmd
			m, cmd = m.runCommand(line)
			m.refresh()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.70)
		m.viewport.Height = max(msg.Height-6, 1)
		m.refresh()

	case nextTickMsg:
		if !m.running || m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.runTick()

	case tickDoneMsg:
		m.busy = false
		m.recordTick(msg)
		m.refresh()
		if m.running {
			return m, m.scheduleTick(m.interval)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// runCommand applies one operator command.
func (m model) runCommand(line string) (model, tea.Cmd) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	mgr := m.app.Manager

	switch name {
	case "/quit":
		m.quit = true
		return m, tea.Quit

	case "/player", "/pokemon":
		if arg == "" {
			m.appendLog(errorStyle.Render(name + " needs an engine name; see /engines"))
			return m, nil
		}
		var prev, cur string
		if name == "/player" {
			prev, cur = mgr.SetPlayerEngine(arg)
		} else {
			prev, cur = mgr.SetPokemonEngine(arg)
		}
		m.appendLog(fmt.Sprintf("%s engine: %s -> %s", strings.TrimPrefix(name, "/"), prev, cur))

	case "/dual":
		var enabled bool
		switch strings.ToLower(arg) {
		case "on":
			enabled = true
		case "off":
		default:
			m.appendLog(errorStyle.Render("usage: /dual on|off"))
			return m, nil
		}
		prev, cur := mgr.SetDualMode(enabled)
		m.appendLog(fmt.Sprintf("dual mode: %s -> %s", onOff(prev), onOff(cur)))

	case "/pause":
		m.running = false
		m.appendLog("paused")

	case "/resume":
		if m.running {
			return m, nil
		}
		m.running = true
		m.appendLog("resumed")
		return m, m.scheduleTick(0)

	case "/step":
		if m.busy {
			return m, nil
		}
		m.running = false
		m.busy = true
		return m, m.runTick()

	case "/save":
		saved, err := m.app.SaveRun(arg)
		if err != nil {
			m.appendLog(errorStyle.Render(err.Error()))
			return m, nil
		}
		m.appendLog("saved run " + saved)

	case "/load":
		if arg == "" {
			m.appendLog(errorStyle.Render("usage: /load <name>"))
			return m, nil
		}
		run, err := m.app.LoadRun(arg)
		if err != nil {
			m.appendLog(errorStyle.Render(err.Error()))
			return m, nil
		}
		m.state = run.State
		m.appendLog(fmt.Sprintf("loaded run %s (%d actions, saved %s)", arg, len(run.History), run.SavedAt.Format(time.DateTime)))

	case "/runs":
		runs, err := models.ListRuns()
		if err != nil {
			m.appendLog(errorStyle.Render(err.Error()))
			return m, nil
		}
		if len(runs) == 0 {
			m.appendLog("no saved runs")
			return m, nil
		}
		m.appendLog("saved runs: " + strings.Join(runs, ", "))

	case "/engines":
		m.appendLog("engines: " + strings.Join(mgr.Engines(), ", "))

	default:
		m.appendLog(errorStyle.Render("unknown command " + name))
		m.appendLog(helpStyle.Render(helpText))
	}
	return m, nil
}

func (m *model) recordTick(msg tickDoneMsg) {
	if msg.res.Tick == 0 && msg.err != nil {
		m.err = msg.err
		m.appendLog(errorStyle.Render("tick failed: " + msg.err.Error()))
		return
	}
	res := msg.res
	m.err = msg.err
	m.state = res.State
	m.last = &res

	d := res.Result.Decision
	style := commentStyle
	if res.Result.Fallback {
		style = fallbackStyle
	}
	line := fmt.Sprintf("%4d %s %s", res.Tick, actionStyle.Render(fmt.Sprintf("%-6s", d.Action)), style.Render(d.Commentary))
	if msg.err != nil {
		line += " " + errorStyle.Render("("+msg.err.Error()+")")
	}
	m.appendLog(line)
}

func (m *model) appendLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m *model) refresh() {
	width := m.viewport.Width
	lines := m.log
	if width > 0 {
		wrapped := make([]string, len(lines))
		for i, l := range lines {
			wrapped[i] = lipgloss.NewStyle().Width(width).Render(l)
		}
		lines = wrapped
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if m.quit {
		return ""
	}
	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.busy {
		status = m.spinner.View() + " deciding"
	} else if m.err != nil {
		status += " (last tick: " + m.err.Error() + ")"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View()+"  "+helpStyle.Render(status),
		"\n"+helpStyle.Render(helpText),
	)
}

func (m model) renderState() string {
	s := m.state
	var b strings.Builder

	b.WriteString(titleStyle.Render("LOCATION") + "\n")
	loc := s.Location
	if loc == "" {
		loc = "(unknown)"
	}
	fmt.Fprintf(&b, "%s %s\n\n", loc, s.Coordinates)

	b.WriteString(titleStyle.Render("PROGRESS") + "\n")
	fmt.Fprintf(&b, "Money: $%d\nBadges: %d/%d\n\n", s.Money, s.Badges, models.MaxBadges)

	b.WriteString(titleStyle.Render("TEAM") + "\n")
	if len(s.PokemonTeam) == 0 {
		b.WriteString("(none)\n")
	}
	for _, p := range s.PokemonTeam {
		fmt.Fprintf(&b, "%s Lv.%d %d/%d\n", p.Name, p.Level, p.HP, p.MaxHP)
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("ITEMS") + "\n")
	if len(s.Items) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, it := range s.Items {
		fmt.Fprintf(&b, "- %s x%d\n", it.Name, it.Count)
	}
	b.WriteString("\n")

	st := m.app.Manager.Status()
	b.WriteString(titleStyle.Render("ARBITER") + "\n")
	fmt.Fprintf(&b, "Player: %s\nPokémon: %s\nDual: %s\nHistory: %d\n", st.PlayerEngine, st.PokemonEngine, onOff(st.DualMode), st.HistoryLen)
	if m.last != nil {
		fmt.Fprintf(&b, "Last: %s as %s\n", m.last.Result.Engine, m.last.Result.Role)
	}

	stateWidth := int(float64(m.width) * 0.28)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func (m model) scheduleTick(after time.Duration) tea.Cmd {
	if after <= 0 {
		return func() tea.Msg { return nextTickMsg{} }
	}
	return tea.Tick(after, func(time.Time) tea.Msg { return nextTickMsg{} })
}

func (m model) runTick() tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Loop.Tick(context.Background())
		return tickDoneMsg{res: res, err: err}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts the operator console over a and blocks until the user quits.
func Run(a *app.App, interval time.Duration) error {
	p := tea.NewProgram(NewModel(a, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
