package progress

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

var errEmptySave = errors.New("save file has no user name")

// Extension keys written after the six fixed lines.
const (
	keyAchievements = "achievements"
	keyCompleted    = "completed"
	keyGlossary     = "glossary"
	keyQuest        = "quest"
	prefixProgress  = "progress."
	prefixBadge     = "badge."
)

// encode renders s in the save file format: six fixed lines followed by
// key=value extension lines for the remaining fields.
func encode(s *Session) []byte {
	var b strings.Builder
	for _, line := range []string{
		s.userName,
		s.lastModule,
		strconv.Itoa(s.currentStep),
		strconv.Itoa(s.totalPoints),
		strconv.Itoa(s.modulesCompleted),
		s.lastSaveTimestamp,
	} {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	ext := func(key, value string) {
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}
	if len(s.unlocked) > 0 {
		ext(keyAchievements, encodeList(s.unlocked))
	}
	if len(s.completedQuests) > 0 {
		ext(keyCompleted, encodeList(s.completedQuests))
	}
	if s.glossaryLookups != 0 {
		ext(keyGlossary, strconv.Itoa(s.glossaryLookups))
	}
	if s.currentQuest != "" {
		ext(keyQuest, url.QueryEscape(s.currentQuest))
	}
	for _, module := range slices.Sorted(maps.Keys(s.moduleProgress)) {
		ext(prefixProgress+url.QueryEscape(module), strconv.Itoa(s.moduleProgress[module]))
	}
	for _, id := range slices.Sorted(maps.Keys(s.badges)) {
		st := s.badges[id]
		ext(prefixBadge+url.QueryEscape(id), strconv.Itoa(st.Points)+"|"+url.QueryEscape(st.DateEarned))
	}
	return []byte(b.String())
}

// decode parses a save file. Missing trailing fields keep their defaults
// and malformed numbers read as zero; only a missing user name fails.
func decode(data []byte) (*Session, error) {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, errEmptySave
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	if lines[0] == "" {
		return nil, errEmptySave
	}

	s := NewSession()
	s.userName = lines[0]
	field := func(i int) (string, bool) {
		if i < len(lines) {
			return lines[i], true
		}
		return "", false
	}
	if v, ok := field(1); ok {
		s.lastModule = v
	}
	if v, ok := field(2); ok {
		s.currentStep = atoi(v)
	}
	if v, ok := field(3); ok {
		s.totalPoints = atoi(v)
	}
	if v, ok := field(4); ok {
		s.modulesCompleted = atoi(v)
	}
	if v, ok := field(5); ok {
		s.lastSaveTimestamp = v
	}

	if len(lines) > 6 {
		for _, line := range lines[6:] {
			decodeExtension(s, line)
		}
	}
	return s, nil
}

func decodeExtension(s *Session, line string) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	switch {
	case key == keyAchievements:
		s.unlocked = decodeList(value)
	case key == keyCompleted:
		s.completedQuests = decodeList(value)
	case key == keyGlossary:
		s.glossaryLookups = atoi(value)
	case key == keyQuest:
		s.currentQuest = unescape(value)
	case strings.HasPrefix(key, prefixProgress):
		if module := unescape(strings.TrimPrefix(key, prefixProgress)); module != "" {
			s.moduleProgress[module] = atoi(value)
		}
	case strings.HasPrefix(key, prefixBadge):
		id := unescape(strings.TrimPrefix(key, prefixBadge))
		if id == "" {
			return
		}
		points, date, _ := strings.Cut(value, "|")
		s.badges[id] = BadgeState{Points: atoi(points), DateEarned: unescape(date)}
	}
}

func encodeList(items []string) string {
	escaped := make([]string, len(items))
	for i, it := range items {
		escaped[i] = url.QueryEscape(it)
	}
	return strings.Join(escaped, ",")
}

func decodeList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if it := unescape(part); it != "" && !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

func unescape(s string) string {
	v, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return v
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
