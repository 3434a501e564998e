package timetable

import (
	"time"
)

// Paper is one entry of a conference program, as found on the program page.
// Field order is the order of the keys in papers.json.
type Paper struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	ID       string `json:"id"`
	Abstract string `json:"abstract"`
	Title    string `json:"title"`
}

// RoomMap maps a section label (e.g. "MoA-1") to the text describing where the
// section takes place.
type RoomMap map[string]string

// Program is the result of one extraction pass over a program page.
type Program struct {
	Papers []Paper `json:"papers"`
	Rooms  RoomMap `json:"rooms"`
}

// Session is a paper prepared for the timetable.
type Session struct {
	Paper

	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Room     string    `json:"room"`
	Keywords string    `json:"keywords"`
	Summary  string    `json:"summary"`

	CalendarURL string `json:"calendarUrl"`
	ScholarURL  string `json:"scholarUrl"`
}

// Day returns the session date in the 2006-01-02 layout.
func (s Session) Day() string {
	return s.Start.Format("2006-01-02")
}

type Slot struct {
	Start    time.Time `json:"start"`
	Sessions []Session `json:"sessions"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type Filter struct {
	Days     []string `json:"days"`
	Keywords []string `json:"keywords"`
}

type Pagination struct {
	Total  uint64 `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type SearchParams struct {
	Q    string   `json:"q"`
	Days []string `json:"days"`

	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type SearchResults struct {
	IDs        []string
	Pagination Pagination
}

type PaperRepository interface {
	Get(...string) ([]Paper, error)
	List() ([]Paper, error)
	Upsert(...Paper) error
	Delete(string) error
}

type RoomRepository interface {
	SaveRooms(RoomMap) error
	Rooms() (RoomMap, error)
}

type SessionIndex interface {
	Index(Session) error
	Search(SearchParams) (SearchResults, error)
	Delete(string) error
}
