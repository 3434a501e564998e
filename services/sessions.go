package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
)

// DateLayouts are the layouts tried, in order, to read the date of a paper.
var DateLayouts = []string{
	"Monday January 2, 2006",
	"Monday, January 2, 2006",
	"January 2, 2006",
	"2006-01-02",
}

const (
	calendarLayout = "20060102T150405"
	scholarURL     = "https://scholar.google.com/scholar?q="
	calendarURL    = "https://www.google.com/calendar/render?action=TEMPLATE"
)

var roomRegexp = regexp.MustCompile(`\((.*)\)`)

// Enrich turns papers into sessions, resolving their rooms from rooms.
func Enrich(papers []timetable.Paper, rooms timetable.RoomMap) ([]timetable.Session, error) {
	sessions := make([]timetable.Session, len(papers))
	for i, paper := range papers {
		session, err := enrich(paper, rooms)
		if err != nil {
			return nil, errors.New(fmt.Sprintf("paper %s", paper.ID), errors.WithCause(err))
		}
		sessions[i] = session
	}
	return sessions, nil
}

func enrich(paper timetable.Paper, rooms timetable.RoomMap) (timetable.Session, error) {
	start, end, err := parseSlot(paper.Date, paper.Time)
	if err != nil {
		return timetable.Session{}, err
	}

	keywords, summary := splitAbstract(paper.Abstract)

	session := timetable.Session{
		Paper:    paper,
		Start:    start,
		End:      end,
		Room:     Room(paper.ID, rooms),
		Keywords: oneLine(keywords),
		Summary:  oneLine(summary),
	}
	session.Title = oneLine(session.Title)
	session.ScholarURL = scholarURL + url.QueryEscape(session.Title)
	session.CalendarURL = calendarLink(session)

	return session, nil
}

func parseSlot(date, slot string) (time.Time, time.Time, error) {
	day, err := parseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	bounds := strings.SplitN(slot, "-", 2)
	if len(bounds) != 2 {
		return time.Time{}, time.Time{}, errors.New(fmt.Sprintf("time %q is not a range", slot), errors.Unprocessable())
	}

	var times [2]time.Time
	for i, bound := range bounds {
		t, err := time.Parse("15:04", strings.TrimSpace(bound))
		if err != nil {
			return time.Time{}, time.Time{}, errors.New(fmt.Sprintf("invalid time %q", bound), errors.Unprocessable(), errors.WithCause(err))
		}
		times[i] = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}

	return times[0], times[1], nil
}

func parseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(fmt.Sprintf("unknown date format %q", date), errors.Unprocessable())
}

// Room returns the room of the section a paper id belongs to: "Paper MoA-1.2"
// is in section "MoA-1", whose description "Regular session, Kyoto (Room 1)"
// gives room "1". It returns an empty string for unknown sections.
func Room(id string, rooms timetable.RoomMap) string {
	fields := strings.Fields(id)
	if len(fields) == 0 {
		return ""
	}

	label := fields[len(fields)-1]
	if i := strings.Index(label, "."); i >= 0 {
		label = label[:i]
	}

	description, ok := rooms[label]
	if !ok {
		return ""
	}

	room := description
	if m := roomRegexp.FindStringSubmatch(description); m != nil {
		room = m[1]
	}
	return strings.TrimSpace(strings.Replace(room, "Room ", "", -1))
}

// splitAbstract separates "Keywords: a, b\nAbstract: text" into its keywords
// and its text. An abstract without markers is all text.
func splitAbstract(abstract string) (string, string) {
	parts := strings.SplitN(abstract, "Abstract: ", 2)
	if len(parts) == 1 {
		return "", strings.TrimSpace(abstract)
	}

	var keywords string
	if kw := strings.SplitN(parts[0], "Keywords: ", 2); len(kw) == 2 {
		keywords = kw[1]
	}
	return strings.TrimSpace(keywords), strings.TrimSpace(parts[1])
}

func calendarLink(s timetable.Session) string {
	return calendarURL +
		"&text=" + quote(s.Title) +
		"&details=" + quote(s.Keywords) +
		"&location=" + quote(s.Room) +
		"&dates=" + s.Start.Format(calendarLayout) + "%2F" + s.End.Format(calendarLayout)
}

func quote(s string) string {
	return strings.Replace(url.QueryEscape(s), "+", "%20", -1)
}

func oneLine(s string) string {
	return strings.TrimSpace(strings.Replace(s, "\n", " ", -1))
}
