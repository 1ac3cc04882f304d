package badgevault

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/gitquest/internal/badges"
	"github.com/abhisek/gitquest/internal/router"
	"github.com/abhisek/gitquest/internal/screen"
	"github.com/abhisek/gitquest/internal/store"
	"github.com/abhisek/gitquest/internal/ui/components"
	"github.com/abhisek/gitquest/internal/ui/layout"
	"github.com/abhisek/gitquest/internal/ui/theme"
)

// historyLimit caps how many award events the history tab loads.
const historyLimit = 100

type tab int

const (
	tabBadges tab = iota
	tabHistory
	tabCount
)

func (t tab) label() string {
	if t == tabHistory {
		return "History"
	}
	return "Badges"
}

type historyLoadedMsg struct {
	Records []store.BadgeEventRecord
	Err     error
}

// BadgeVaultScreen shows badge progress and the award history.
type BadgeVaultScreen struct {
	engine       *badges.Engine
	eventRepo    store.EventRepo
	history      []store.BadgeEventRecord
	selectedTab  tab
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgeVaultScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeVaultScreen)(nil)

// New creates a BadgeVaultScreen. eventRepo may be nil, in which case the
// history tab stays empty.
func New(engine *badges.Engine, eventRepo store.EventRepo) *BadgeVaultScreen {
	return &BadgeVaultScreen{
		engine:    engine,
		eventRepo: eventRepo,
	}
}

func (s *BadgeVaultScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		s.loaded = true
		return nil
	}
	repo := s.eventRepo
	return func() tea.Msg {
		records, err := repo.QueryBadgeEvents(context.Background(), store.QueryOpts{Limit: historyLimit})
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *BadgeVaultScreen) Title() string {
	return "Badge Vault"
}

func (s *BadgeVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch view"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.history = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selectedTab = (s.selectedTab + 1) % tabCount
			s.scrollOffset = 0
		case "shift+tab":
			s.selectedTab = (s.selectedTab - 1 + tabCount) % tabCount
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < s.rowCount()-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *BadgeVaultScreen) rowCount() int {
	if s.selectedTab == tabHistory {
		return len(s.history)
	}
	return len(s.engine.All())
}

func (s *BadgeVaultScreen) View(width, height int) string {
	var b strings.Builder

	earned := len(s.engine.Earned())
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\n%d of %d badges earned\n", earned, len(s.engine.All()))))
	b.WriteString("\n")

	var tabs []string
	for t := range tabCount {
		if t == s.selectedTab {
			tabs = append(tabs, theme.Selected.Render(t.label()))
		} else {
			tabs = append(tabs, theme.Locked.Render(t.label()))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	var rows []string
	if s.selectedTab == tabHistory {
		rows = s.historyRows(width)
	} else {
		rows = s.badgeRows(width)
	}
	if len(rows) == 0 {
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := min(s.scrollOffset, len(rows)-1)
	end := min(start+maxVisible, len(rows))
	for _, row := range rows[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, row))
		b.WriteString("\n")
	}
	if end < len(rows) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(rows)-end)))
	}
	return b.String()
}

func (s *BadgeVaultScreen) badgeRows(width int) []string {
	barWidth := max(min(width-8, 60), 20)
	var rows []string
	for _, bd := range s.engine.All() {
		name := theme.Locked.Render(bd.Name)
		status := theme.Hint.Render("locked")
		if bd.Earned() {
			name = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(bd.Name)
			status = theme.Correct.Render("earned " + bd.DateEarned.Format("Jan 02, 2006"))
		}
		bar := components.NewProgressBar("", bd.PointsEarned, bd.MaxPoints, barWidth)
		rows = append(rows, theme.Card.Width(barWidth+4).Render(
			name+"  "+status+"\n"+
				theme.Hint.Render(bd.Description)+"\n"+
				bar.View()))
	}
	return rows
}

func (s *BadgeVaultScreen) historyRows(width int) []string {
	if s.errMsg != "" {
		return []string{theme.Incorrect.Render("Error: " + s.errMsg)}
	}
	if !s.loaded {
		return []string{theme.Hint.Render("Loading history...")}
	}
	if len(s.history) == 0 {
		return []string{theme.Hint.Render("No badges awarded yet")}
	}

	rows := make([]string, 0, len(s.history))
	for _, rec := range s.history {
		line := fmt.Sprintf("%-12s %-16s +%-4d %s",
			rec.Timestamp.Format("Jan 02, 2006"), rec.BadgeName, rec.Points, rec.Reason)
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(width).Render(line))
	}
	return rows
}
