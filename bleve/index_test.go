package bleve

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy2804/iros22-timetable"
)

func session(id string, start time.Time, title, keywords, summary string) timetable.Session {
	return timetable.Session{
		Paper:    timetable.Paper{ID: id, Title: title},
		Start:    start,
		End:      start.Add(10 * time.Minute),
		Keywords: keywords,
		Summary:  summary,
	}
}

var (
	ten      = time.Date(2022, 10, 24, 10, 0, 0, 0, time.UTC)
	sessions = []timetable.Session{
		session("Paper MoA-1.2", ten.Add(10*time.Minute), "Visual Servoing for Aerial Manipulation", "Aerial Systems: Applications, Visual Servoing", "Aerial manipulators need accurate visual feedback."),
		session("Paper MoA-2.1", ten, "Legged Locomotion on Soft Terrain", "Legged Robots, Deep Learning in Robotics and Automation", "Soft terrain makes legged locomotion hard."),
		session("Paper MoA-1.1", ten, "Learning to Grasp in Clutter", "Grasping, Deep Learning in Robotics and Automation", "We present a method for grasping objects in clutter."),
	}
)

func createIndex(t *testing.T) (*SessionIndex, func()) {
	index := &SessionIndex{}
	require.NoError(t, index.OpenMem())

	for _, s := range sessions {
		require.NoError(t, index.Index(s), s.ID)
	}

	return index, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
	}
}

func TestSearch(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	var tts = map[string]struct {
		Search   timetable.SearchParams
		Expected timetable.SearchResults
	}{
		"match all": {
			Search: timetable.SearchParams{Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-1.1", "Paper MoA-2.1", "Paper MoA-1.2"},
				Pagination: timetable.Pagination{Total: 3, Limit: 10},
			},
		},
		"one word": {
			Search: timetable.SearchParams{Q: "aerial", Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-1.2"},
				Pagination: timetable.Pagination{Total: 1, Limit: 10},
			},
		},
		"title or keywords": {
			Search: timetable.SearchParams{Q: "learning", Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-1.1", "Paper MoA-2.1"},
				Pagination: timetable.Pagination{Total: 2, Limit: 10},
			},
		},
		"partial word": {
			Search: timetable.SearchParams{Q: "locomo", Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-2.1"},
				Pagination: timetable.Pagination{Total: 1, Limit: 10},
			},
		},
		"every word": {
			Search: timetable.SearchParams{Q: "deep clutter", Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-1.1"},
				Pagination: timetable.Pagination{Total: 1, Limit: 10},
			},
		},
		"summary": {
			Search: timetable.SearchParams{Q: "feedback", Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-1.2"},
				Pagination: timetable.Pagination{Total: 1, Limit: 10},
			},
		},
		"weekday": {
			Search: timetable.SearchParams{Q: "soft", Days: []string{"Monday"}, Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-2.1"},
				Pagination: timetable.Pagination{Total: 1, Limit: 10},
			},
		},
		"other day": {
			Search: timetable.SearchParams{Days: []string{"2022-10-25"}, Limit: 10},
			Expected: timetable.SearchResults{
				IDs:        []string{},
				Pagination: timetable.Pagination{Total: 0, Limit: 10},
			},
		},
		"pagination": {
			Search: timetable.SearchParams{Limit: 1, Offset: 1},
			Expected: timetable.SearchResults{
				IDs:        []string{"Paper MoA-2.1"},
				Pagination: timetable.Pagination{Total: 3, Limit: 1, Offset: 1},
			},
		},
	}

	for name, tt := range tts {
		res, err := index.Search(tt.Search)
		require.NoError(t, err, name)
		assert.Equal(t, tt.Expected, res, name)
	}
}

func TestDelete(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	require.NoError(t, index.Delete("Paper MoA-1.1"))

	res, err := index.Search(timetable.SearchParams{Q: "learning", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Paper MoA-2.1"}, res.IDs)
}

func TestOpen(t *testing.T) {
	dir, err := os.MkdirTemp("", "timetable")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "timetable.bleve")

	index := &SessionIndex{}
	require.NoError(t, index.Open(path))
	require.NoError(t, index.Index(sessions[0]))
	require.NoError(t, index.Close())

	// Reopening keeps the documents
	index = &SessionIndex{}
	require.NoError(t, index.Open(path))
	defer index.Close()

	res, err := index.Search(timetable.SearchParams{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Paper MoA-1.2"}, res.IDs)
}
