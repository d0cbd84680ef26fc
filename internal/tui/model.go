package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fightclub/internal/engine"
	"fightclub/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	synergy  *engine.Synergy
	chars    map[engine.Persona]*engine.Character
	missions []engine.MissionRecord

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	synergy  *engine.Synergy
	chars    map[engine.Persona]*engine.Character
	missions []engine.MissionRecord
	err      error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		syn, err := m.svc.RecomputeSynergy(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		missions, err := m.svc.ListMissions(m.ctx, false)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{
			synergy:  syn,
			chars:    m.svc.Characters(m.ctx),
			missions: missions,
		}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.synergy = msg.synergy
		m.chars = msg.chars
		m.missions = msg.missions
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "left", "h":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "right", "l", "tab":
			if m.selected < len(engine.AllPersonas())-1 {
				m.selected++
			}
			return m, nil
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading {
		return "Fight Club — loading…\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderCharacter()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	syn := m.synergy
	bar := ""
	if syn.XPToNext != nil {
		bar = " " + progressBar(syn.TotalXP, *syn.XPToNext, 30)
	}
	return fmt.Sprintf("Fight Club | %s | Level %d | Total XP %d%s", syn.Chapter, syn.Level, syn.TotalXP, bar)
}

func (m boardModel) renderSidebar() string {
	syn := m.synergy
	lines := []string{"Synergy"}
	for _, cat := range sortedKeys(syn.Categories) {
		lines = append(lines, fmt.Sprintf("- %s %.2f", cat, syn.Categories[cat]))
	}
	lines = append(lines, fmt.Sprintf("- total %.2f", syn.TotalSynergy))
	lines = append(lines, "")
	lines = append(lines, "Check-ins")
	lines = append(lines, fmt.Sprintf("- streak %d (total %d)", syn.DailyProgress.CheckinStreak, syn.DailyProgress.TotalCheckins))
	if syn.DailyProgress.LastCheckin != "" {
		lines = append(lines, "- last "+syn.DailyProgress.LastCheckin)
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ←/→ or h/l: switch ego")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderCharacter() string {
	personas := engine.AllPersonas()
	if m.selected >= len(personas) {
		m.selected = len(personas) - 1
	}
	p := personas[m.selected]

	tabs := make([]string, 0, len(personas))
	for i, q := range personas {
		name := q.Info().Name
		if i == m.selected {
			name = ui.PersonaStyle(string(q)).Render("[" + name + "]")
		}
		tabs = append(tabs, name)
	}
	out := []string{strings.Join(tabs, "  "), ""}

	c, ok := m.chars[p]
	if !ok {
		out = append(out, "(no record — run fc seed)")
		return strings.Join(out, "\n")
	}

	out = append(out, fmt.Sprintf("%s — %s", c.Name, c.Role))
	next := "max"
	if c.XP.XPToNext != nil {
		next = fmt.Sprintf("%d", *c.XP.XPToNext)
	}
	out = append(out, fmt.Sprintf("Level %d (%s), XP %d/%s", c.Level, c.Title, c.XP.CurrentXP, next))
	out = append(out, fmt.Sprintf("Health %s", progressBar(c.Health.CurrentHealth, c.Health.MaxHealth, 20)))
	out = append(out, fmt.Sprintf("Energy %s", progressBar(c.Energy.CurrentEnergy, c.Energy.MaxEnergy, 20)))
	out = append(out, "")
	out = append(out, "Abilities")
	for _, a := range sortedKeys(c.Abilities) {
		out = append(out, fmt.Sprintf("- %s %d", a, c.Abilities[a]))
	}

	out = append(out, "")
	out = append(out, "Active missions")
	n := 0
	for _, rec := range m.missions {
		if rec.Mission.Archetype != p {
			continue
		}
		out = append(out, fmt.Sprintf("- %s %s [%d/%d]", rec.Mission.Code, rec.Mission.Title, rec.Mission.Progress.Current, rec.Mission.Progress.Total))
		n++
	}
	if n == 0 {
		out = append(out, "(none)")
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
