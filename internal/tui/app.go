// Package tui is the terminal display for the timer, its task list and the
// session history.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/model"
	"taskflow/internal/service"
)

type PanelID int

const (
	PanelTasks PanelID = iota
	PanelHistory
)

const historyRows = 8

// StateMsg carries a timer update pushed by the engine.
type StateMsg struct{ State service.StateView }

type Services struct {
	Timer    *service.TimerService
	Tasks    *service.TaskService
	History  *service.HistoryService
	Settings *service.SettingsStore
}

type App struct {
	ctx      context.Context
	services Services
	updates  <-chan service.StateView

	width  int
	height int

	state       service.StateView
	activePanel PanelID
	cursor      int
	adding      bool
	input       textinput.Model
	lastError   string

	theme Theme
	keys  KeyMap
	help  help.Model
}

func NewApp(ctx context.Context, services Services) App {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200

	return App{
		ctx:      ctx,
		services: services,
		updates:  services.Timer.Watch(ctx),
		state:    services.Timer.GetState(),
		input:    ti,
		theme:    DarkTheme(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

func (a App) Init() tea.Cmd {
	return waitForState(a.updates)
}

func waitForState(updates <-chan service.StateView) tea.Cmd {
	return func() tea.Msg {
		view, ok := <-updates
		if !ok {
			return nil
		}
		return StateMsg{State: view}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case StateMsg:
		a.state = msg.State
		return a, waitForState(a.updates)

	case tea.KeyMsg:
		if a.adding {
			return a.updateInput(msg)
		}
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Submit):
		if _, apiErr := a.services.Tasks.Create(a.ctx, service.CreateTaskInput{Text: a.input.Value()}); apiErr != nil {
			a.lastError = apiErr.Message
		} else {
			a.lastError = ""
			a.cursor = len(a.services.Tasks.List()) - 1
		}
		a.stopAdding()
		return a, nil
	case key.Matches(msg, a.keys.Cancel):
		a.stopAdding()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) stopAdding() {
	a.adding = false
	a.input.Reset()
	a.input.Blur()
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	timer := a.services.Timer

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Toggle):
		a.state = timer.Toggle()
	case key.Matches(msg, a.keys.Stop):
		a.state = timer.Stop(a.ctx).State
	case key.Matches(msg, a.keys.Reset):
		a.state = timer.Reset()
	case key.Matches(msg, a.keys.Presets):
		a.activatePreset(msg.String())
	case key.Matches(msg, a.keys.MoreMinutes):
		a.adjustCustomMinutes(1)
	case key.Matches(msg, a.keys.FewerMinutes):
		a.adjustCustomMinutes(-1)
	case key.Matches(msg, a.keys.SwitchPanel):
		a.activePanel = (a.activePanel + 1) % 2
		a.cursor = 0
	case key.Matches(msg, a.keys.AddTask):
		a.adding = true
		a.activePanel = PanelTasks
		cmd := a.input.Focus()
		return a, cmd
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < a.panelLen()-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.ToggleTask):
		if task, ok := a.selectedTask(); ok {
			a.lastError = ""
			if _, apiErr := a.services.Tasks.Toggle(a.ctx, task.ID); apiErr != nil {
				a.lastError = apiErr.Message
			}
		}
	case key.Matches(msg, a.keys.DeleteTask):
		if task, ok := a.selectedTask(); ok {
			if apiErr := a.services.Tasks.Delete(a.ctx, task.ID); apiErr != nil {
				a.lastError = apiErr.Message
			}
			a.clampCursor()
		}
	case key.Matches(msg, a.keys.ClearCompleted):
		if a.activePanel == PanelTasks {
			a.services.Tasks.ClearCompleted(a.ctx)
			a.clampCursor()
		}
	}
	return a, nil
}

func (a *App) activatePreset(digit string) {
	presets := a.services.Timer.Presets()
	var idx int
	if _, err := fmt.Sscanf(digit, "%d", &idx); err != nil || idx < 1 || idx > len(presets) {
		return
	}
	view, apiErr := a.services.Timer.Activate(a.ctx, service.ActivateInput{Type: string(presets[idx-1].Kind)})
	a.lastError = ""
	if apiErr != nil {
		a.lastError = apiErr.Message
		return
	}
	a.state = *view
}

// adjustCustomMinutes changes the stored custom duration and re-arms an idle
// custom timer with it.
func (a *App) adjustCustomMinutes(delta int) {
	settings := a.services.Settings.SetCustomMinutes(a.ctx, a.services.Settings.Get().CustomMinutes+delta)
	if a.state.Type != model.KindCustom || a.state.Status != model.StatusIdle {
		return
	}
	minutes := settings.CustomMinutes
	if view, apiErr := a.services.Timer.Activate(a.ctx, service.ActivateInput{Type: string(model.KindCustom), Minutes: &minutes}); apiErr == nil {
		a.state = *view
	}
}

func (a App) selectedTask() (model.Task, bool) {
	if a.activePanel != PanelTasks {
		return model.Task{}, false
	}
	tasks := a.services.Tasks.List()
	if a.cursor < 0 || a.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[a.cursor], true
}

func (a App) panelLen() int {
	if a.activePanel == PanelTasks {
		return len(a.services.Tasks.List())
	}
	n := len(a.services.History.Get().Sessions)
	if n > historyRows {
		n = historyRows
	}
	return n
}

func (a *App) clampCursor() {
	if n := a.panelLen(); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a App) View() string {
	sections := []string{
		a.theme.TitleStyle.Render(" TaskFlow"),
		a.renderTimer(),
		a.renderPresets(),
		a.renderTabs(),
		a.renderPanel(),
	}
	if a.adding {
		sections = append(sections, " "+a.input.View())
	}
	if a.lastError != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(a.theme.Danger).Render(" "+a.lastError))
	}
	sections = append(sections, a.help.ShortHelpView(a.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a App) renderTimer() string {
	s := a.state
	label := s.Label
	switch s.Status {
	case model.StatusIdle:
		label = "Ready"
	case model.StatusCompleted:
		label = "Done"
	}

	lines := []string{
		a.theme.ClockStyle.Render(s.Display),
		fmt.Sprintf("  %s · %s", s.Name, a.theme.LabelStyle.Render(label)),
		"  " + a.renderProgressBar(s.Progress, 30) + fmt.Sprintf(" %d%%", s.Progress),
	}
	return strings.Join(lines, "\n")
}

func (a App) renderPresets() string {
	var parts []string
	for i, p := range a.services.Timer.Presets() {
		text := fmt.Sprintf("%d %s (%s)", i+1, p.Name, model.DurationText(p.DurationSeconds))
		if p.Kind == a.state.Type {
			parts = append(parts, a.theme.CursorStyle.Render(text))
		} else {
			parts = append(parts, a.theme.MutedStyle.Render(text))
		}
	}
	return " " + strings.Join(parts, "  ")
}

func (a App) renderTabs() string {
	tabs := []struct {
		id   PanelID
		name string
	}{
		{PanelTasks, "Tasks"},
		{PanelHistory, "History"},
	}

	var parts []string
	for _, tab := range tabs {
		style := a.theme.InactiveTabStyle
		if tab.id == a.activePanel {
			style = a.theme.ActiveTabStyle
		}
		parts = append(parts, style.Render(tab.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) renderPanel() string {
	var lines []string
	switch a.activePanel {
	case PanelTasks:
		lines = a.taskLines()
	case PanelHistory:
		lines = a.historyLines()
	}
	style := a.theme.PanelStyle
	if a.width > 4 {
		style = style.Width(a.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (a App) taskLines() []string {
	tasks := a.services.Tasks.List()
	if len(tasks) == 0 {
		return []string{a.theme.MutedStyle.Render("No tasks yet. Press a to add one.")}
	}

	lines := make([]string, 0, len(tasks))
	for i, task := range tasks {
		box := "[ ]"
		text := task.Text
		if task.Completed {
			box = "[x]"
			text = a.theme.DoneStyle.Render(text)
		}
		prefix := "  "
		if i == a.cursor {
			prefix = a.theme.CursorStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", prefix, box, text))
	}
	return lines
}

func (a App) historyLines() []string {
	view := a.services.History.Get()
	if len(view.Sessions) == 0 {
		return []string{a.theme.MutedStyle.Render("No sessions recorded.")}
	}

	lines := []string{fmt.Sprintf("%d completed · %s focused · %d total",
		view.Stats.CompletedCount,
		model.DurationText(view.Stats.FocusedSeconds),
		view.Stats.TotalSessions,
	)}
	for i, rec := range view.Sessions {
		if i == historyRows {
			break
		}
		preset, _ := model.LookupPreset(rec.Type)
		mark := "·"
		if rec.Completed {
			mark = "✓"
		}
		prefix := "  "
		if i == a.cursor {
			prefix = a.theme.CursorStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %-12s %-8s %s %s",
			prefix, mark, preset.Name, model.DurationText(rec.DurationSeconds), rec.Date, rec.Timestamp))
	}
	return lines
}

func (a App) renderProgressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return a.theme.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		a.theme.BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, services Services) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewApp(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
