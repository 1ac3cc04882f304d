package progress

import (
	"maps"
	"slices"
	"strings"
)

// Session defaults.
const (
	DefaultUserName   = "Anonymous Learner"
	DefaultLastModule = "None"
)

// TimestampLayout is the format of the last-save timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the format of badge earn dates.
const DateLayout = "2006-01-02"

// BadgeState is the saved part of one badge.
type BadgeState struct {
	Points     int
	DateEarned string // DateLayout, empty until earned
}

// Session is the single learner's aggregate progress. Fields change only
// through the mutators so that every value can be written to and read back
// from the save file unchanged.
type Session struct {
	userName          string
	lastModule        string
	currentStep       int
	totalPoints       int
	modulesCompleted  int
	lastSaveTimestamp string

	unlocked        []string
	moduleProgress  map[string]int
	completedQuests []string
	glossaryLookups int
	currentQuest    string
	badges          map[string]BadgeState
}

// NewSession returns a session with default values.
func NewSession() *Session {
	return &Session{
		userName:       DefaultUserName,
		lastModule:     DefaultLastModule,
		moduleProgress: make(map[string]int),
		badges:         make(map[string]BadgeState),
	}
}

// Restarted returns a fresh session for the same learner. When keepPoints
// is set the point total carries over.
func (s *Session) Restarted(keepPoints bool) *Session {
	n := NewSession()
	n.userName = s.userName
	if keepPoints {
		n.totalPoints = s.totalPoints
	}
	return n
}

func (s *Session) UserName() string          { return s.userName }
func (s *Session) LastModule() string        { return s.lastModule }
func (s *Session) CurrentStep() int          { return s.currentStep }
func (s *Session) TotalPoints() int          { return s.totalPoints }
func (s *Session) ModulesCompleted() int     { return s.modulesCompleted }
func (s *Session) LastSaveTimestamp() string { return s.lastSaveTimestamp }
func (s *Session) GlossaryLookups() int      { return s.glossaryLookups }
func (s *Session) CurrentQuest() string      { return s.currentQuest }

// UnlockedAchievements returns the unlocked badge ids in unlock order.
func (s *Session) UnlockedAchievements() []string { return slices.Clone(s.unlocked) }

// IsUnlocked reports whether badgeID is unlocked.
func (s *Session) IsUnlocked(badgeID string) bool { return slices.Contains(s.unlocked, badgeID) }

// ModuleProgress returns a copy of the per-module step map.
func (s *Session) ModuleProgress() map[string]int { return maps.Clone(s.moduleProgress) }

// CompletedQuests returns the completed quest ids in completion order.
func (s *Session) CompletedQuests() []string { return slices.Clone(s.completedQuests) }

// IsQuestCompleted reports whether questID was completed.
func (s *Session) IsQuestCompleted(questID string) bool {
	return slices.Contains(s.completedQuests, questID)
}

// BadgeStates returns a copy of the saved badge states.
func (s *Session) BadgeStates() map[string]BadgeState { return maps.Clone(s.badges) }

// SetUserName sets the learner name. Line breaks become spaces; a blank
// name resets to DefaultUserName.
func (s *Session) SetUserName(name string) {
	name = strings.TrimSpace(oneLine(name))
	if name == "" {
		name = DefaultUserName
	}
	s.userName = name
}

// SetLastModule records the module the learner worked on last.
func (s *Session) SetLastModule(module string) { s.lastModule = oneLine(module) }

func (s *Session) SetCurrentStep(step int) { s.currentStep = step }

// AddPoints adds n to the total. Non-positive n is ignored.
func (s *Session) AddPoints(n int) {
	if n > 0 {
		s.totalPoints += n
	}
}

// SetTotalPoints overwrites the total.
func (s *Session) SetTotalPoints(n int) { s.totalPoints = n }

func (s *Session) IncrementModulesCompleted() { s.modulesCompleted++ }

// Unlock adds badgeID to the unlocked set and reports whether it was new.
func (s *Session) Unlock(badgeID string) bool {
	badgeID = strings.TrimSpace(oneLine(badgeID))
	if badgeID == "" || slices.Contains(s.unlocked, badgeID) {
		return false
	}
	s.unlocked = append(s.unlocked, badgeID)
	return true
}

// SetModuleProgress records the step reached in module. A blank module
// name is ignored.
func (s *Session) SetModuleProgress(module string, step int) {
	module = oneLine(module)
	if strings.TrimSpace(module) == "" {
		return
	}
	s.moduleProgress[module] = step
}

// MarkQuestCompleted records questID as completed and reports whether it
// was new.
func (s *Session) MarkQuestCompleted(questID string) bool {
	questID = strings.TrimSpace(oneLine(questID))
	if questID == "" || slices.Contains(s.completedQuests, questID) {
		return false
	}
	s.completedQuests = append(s.completedQuests, questID)
	return true
}

func (s *Session) RecordGlossaryLookup() { s.glossaryLookups++ }

// SetCurrentQuest records the active quest, empty when none.
func (s *Session) SetCurrentQuest(questID string) {
	s.currentQuest = strings.TrimSpace(oneLine(questID))
}

// SetBadgeState records the saved state of badgeID. A zero state removes
// it.
func (s *Session) SetBadgeState(badgeID string, st BadgeState) {
	badgeID = strings.TrimSpace(oneLine(badgeID))
	if badgeID == "" {
		return
	}
	st.DateEarned = oneLine(st.DateEarned)
	if st == (BadgeState{}) {
		delete(s.badges, badgeID)
		return
	}
	s.badges[badgeID] = st
}

func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
