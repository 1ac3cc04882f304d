package badges

import "time"

// Badge is an achievement with a points cap.
type Badge struct {
	ID           string
	Name         string
	Description  string
	PointsEarned int
	MaxPoints    int
	QuestID      string // quest that feeds this badge, empty for milestone badges

	// DateEarned is nil until the badge is earned.
	DateEarned *time.Time
}

// Earned reports whether the badge has been earned.
func (b Badge) Earned() bool { return b.DateEarned != nil }

// Progress returns PointsEarned as a fraction of MaxPoints.
func (b Badge) Progress() float64 {
	if b.MaxPoints <= 0 {
		return 0
	}
	return float64(b.PointsEarned) / float64(b.MaxPoints)
}

// State is the persisted part of a badge.
type State struct {
	Points     int
	DateEarned *time.Time
}

// Milestone badge ids.
const (
	GitStarter   = "git-starter"
	QuestMaster  = "quest-master"
	GlossaryGuru = "glossary-guru"
)

// Thresholds configures the milestone badges.
type Thresholds struct {
	StarterQuests int
	MasterQuests  int
	GuruLookups   int
}

// DefaultThresholds returns the standard milestone thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{StarterQuests: 1, MasterQuests: 3, GuruLookups: 10}
}

// DefaultBadges returns the built-in badge catalog.
func DefaultBadges() []Badge {
	return []Badge{
		{ID: GitStarter, Name: "Git Starter", Description: "Complete your first Git quest", MaxPoints: 10},
		{ID: QuestMaster, Name: "Quest Master", Description: "Complete 3 quests", MaxPoints: 50},
		{ID: GlossaryGuru, Name: "Glossary Guru", Description: "Look up 10 commands in the glossary", MaxPoints: 25},
		{ID: "branch-expert", Name: "Branch Expert", Description: "Complete the branching quest", MaxPoints: 30, QuestID: "git-branching"},
		{ID: "merge-master", Name: "Merge Master", Description: "Complete the merging quest", MaxPoints: 40, QuestID: "git-merging"},
		{ID: "remote-pro", Name: "Remote Pro", Description: "Complete the remote operations quest", MaxPoints: 45, QuestID: "git-remote"},
	}
}
