package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
)

func TestEnrich(t *testing.T) {
	sessions := loadSessions(t)
	require.Len(t, sessions, 3)

	s := sessions[0]
	assert.Equal(t, "Paper MoA-1.1", s.ID)
	assert.Equal(t, time.Date(2022, 10, 24, 10, 0, 0, 0, time.UTC), s.Start)
	assert.Equal(t, time.Date(2022, 10, 24, 10, 10, 0, 0, time.UTC), s.End)
	assert.Equal(t, "2022-10-24", s.Day())
	assert.Equal(t, "1", s.Room)
	assert.Equal(t, "Grasping, Deep Learning in Robotics and Automation", s.Keywords)
	assert.Equal(t, "We present a method for grasping objects in clutter.", s.Summary)
	assert.Equal(t, "https://scholar.google.com/scholar?q=Learning+to+Grasp+in+Clutter", s.ScholarURL)
	assert.Equal(t, "https://www.google.com/calendar/render?action=TEMPLATE"+
		"&text=Learning%20to%20Grasp%20in%20Clutter"+
		"&details=Grasping%2C%20Deep%20Learning%20in%20Robotics%20and%20Automation"+
		"&location=1"+
		"&dates=20221024T100000%2F20221024T101000", s.CalendarURL)

	assert.Equal(t, "2", sessions[2].Room)
}

func TestEnrich_Errors(t *testing.T) {
	tts := map[string]timetable.Paper{
		"unknown date":  {Date: "Someday", Time: "10:00-10:10", ID: "P1"},
		"not a range":   {Date: "Monday October 24, 2022", Time: "10:00", ID: "P1"},
		"invalid bound": {Date: "Monday October 24, 2022", Time: "10:00-ten", ID: "P1"},
	}

	for name, paper := range tts {
		_, err := Enrich([]timetable.Paper{paper}, nil)
		assert.Error(t, err, name)
		errors.AssertCode(t, err, 422)
	}
}

func TestParseDate(t *testing.T) {
	expected := time.Date(2022, 10, 25, 0, 0, 0, 0, time.UTC)
	for _, date := range []string{
		"Tuesday October 25, 2022",
		"Tuesday, October 25, 2022",
		"October 25, 2022",
		" 2022-10-25 ",
	} {
		got, err := parseDate(date)
		require.NoError(t, err, date)
		assert.Equal(t, expected, got, date)
	}
}

func TestRoom(t *testing.T) {
	rooms := timetable.RoomMap{
		"MoA-1": "Regular session, Kyoto (Room 1)",
		"MoB-2": "Interactive session, Hall B",
		"S1":    "Auditorium",
	}

	tts := map[string]struct {
		ID       string
		Expected string
	}{
		"parenthesis":    {ID: "Paper MoA-1.3", Expected: "1"},
		"no parenthesis": {ID: "Paper MoB-2.1", Expected: "Interactive session, Hall B"},
		"no prefix":      {ID: "S1.2", Expected: "Auditorium"},
		"unknown":        {ID: "Paper TuA-1.1", Expected: ""},
		"empty":          {ID: "", Expected: ""},
	}

	for name, tt := range tts {
		assert.Equal(t, tt.Expected, Room(tt.ID, rooms), name)
	}
}

func TestSplitAbstract(t *testing.T) {
	tts := map[string]struct {
		Abstract string
		Keywords string
		Summary  string
	}{
		"both":        {"Keywords: a, b\nAbstract: text", "a, b", "text"},
		"no keywords": {"Abstract: text", "", "text"},
		"no markers":  {"just some text ", "", "just some text"},
		"empty":       {"", "", ""},
	}

	for name, tt := range tts {
		keywords, summary := splitAbstract(tt.Abstract)
		assert.Equal(t, tt.Keywords, keywords, name)
		assert.Equal(t, tt.Summary, summary, name)
	}
}

func TestTags(t *testing.T) {
	tags := Tags(loadSessions(t))

	expected := []timetable.TagCount{
		{Tag: "deep learning in robotics and automation", Count: 2},
		{Tag: "aerial systems: applications", Count: 1},
		{Tag: "grasping", Count: 1},
		{Tag: "legged robots", Count: 1},
		{Tag: "visual servoing", Count: 1},
	}
	assert.Equal(t, expected, tags)
	assert.Empty(t, Tags(nil))
}
