package services

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/etl"
)

func loadProgram(t *testing.T) timetable.Program {
	scraper, err := etl.NewProgramScraper(etl.DefaultConventions(), nil)
	require.NoError(t, err)

	doc, err := etl.LoadFile(path.Join("..", "testfiles", "program_monday.html"))
	require.NoError(t, err)

	program, err := scraper.Scrap(doc)
	require.NoError(t, err)
	return program
}

func loadSessions(t *testing.T) []timetable.Session {
	program := loadProgram(t)
	sessions, err := Enrich(program.Papers, program.Rooms)
	require.NoError(t, err)
	return sessions
}

func ids(sessions []timetable.Session) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}
