package services

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/andy2804/iros22-timetable"
)

// DefaultLiveWindow is how far ahead the live timetable looks.
const DefaultLiveWindow = time.Hour

// Filter keeps the sessions held on one of f.Days (all of them when empty) that
// match every keyword of f.Keywords in their title or keywords. Days are either
// dates (2006-01-02) or weekday names.
func Filter(sessions []timetable.Session, f timetable.Filter) []timetable.Session {
	keywords := make([]string, 0, len(f.Keywords))
	for _, kw := range f.Keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	filtered := make([]timetable.Session, 0, len(sessions))
	for _, session := range sessions {
		if !onDay(session, f.Days) {
			continue
		}

		title := strings.ToLower(session.Title)
		kws := strings.ToLower(session.Keywords)
		match := true
		for _, kw := range keywords {
			if !strings.Contains(title, kw) && !strings.Contains(kws, kw) {
				match = false
				break
			}
		}

		if match {
			filtered = append(filtered, session)
		}
	}
	return filtered
}

func onDay(session timetable.Session, days []string) bool {
	if len(days) == 0 {
		return true
	}

	for _, day := range days {
		if day == session.Day() || strings.EqualFold(day, session.Start.Weekday().String()) {
			return true
		}
	}
	return false
}

// Live returns the sessions starting in the window following now, now being
// rounded down to ten minutes. Program times are wall-clock times of the venue
// and are compared to the wall clock of now.
func Live(sessions []timetable.Session, now time.Time, window time.Duration) []timetable.Session {
	if window <= 0 {
		window = DefaultLiveWindow
	}

	from := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute()-now.Minute()%10, 0, 0, time.UTC)
	to := from.Add(window)

	live := make([]timetable.Session, 0)
	for _, session := range sessions {
		start := session.Start
		if start.Year() != from.Year() || start.YearDay() != from.YearDay() {
			continue
		}

		if !start.Before(from) && start.Before(to) {
			live = append(live, session)
		}
	}
	return live
}

// Slots groups the sessions by start time, in chronological order.
func Slots(sessions []timetable.Session) []timetable.Slot {
	sorted := make([]timetable.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})

	slots := make([]timetable.Slot, 0)
	for _, session := range sorted {
		if n := len(slots); n > 0 && slots[n-1].Start.Equal(session.Start) {
			slots[n-1].Sessions = append(slots[n-1].Sessions, session)
			continue
		}
		slots = append(slots, timetable.Slot{Start: session.Start, Sessions: []timetable.Session{session}})
	}
	return slots
}

// Span is a piece of text, marked when it matches a highlighted word.
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text around the case insensitive occurrences of words.
func Highlight(text string, words []string) []Span {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) == 0 || text == "" {
		return []Span{{Text: text}}
	}

	re := regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))

	var spans []Span
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		spans = append(spans, Span{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
