package bolt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andy2804/iros22-timetable"
)

func createRepository(t *testing.T) (*PaperRepository, func()) {
	tmpFile, err := os.CreateTemp("", "timetable")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}
	tmpFile.Close()

	filename := tmpFile.Name()
	driver := Driver{}
	err = driver.Open(filename)
	if err != nil {
		os.Remove(filename)
		t.Fatal("could not create buckets: ", err)
	}

	return &PaperRepository{Driver: &driver}, func() {
		driver.Close()
		os.Remove(filename)
	}
}

var papers = []timetable.Paper{
	{Date: "Monday October 24, 2022", Time: "10:10-10:20", ID: "Paper MoA-1.2", Title: "Visual Servoing", Abstract: "b"},
	{Date: "Monday October 24, 2022", Time: "10:00-10:10", ID: "Paper MoA-1.1", Title: "Grasping", Abstract: "a"},
}

func TestRepository_Upsert_Get(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	require.NoError(t, repo.Upsert(papers...))

	retrieved, err := repo.Get("Paper MoA-1.1")
	require.NoError(t, err)
	assert.Equal(t, []timetable.Paper{papers[1]}, retrieved)

	retrieved, err = repo.Get("Paper MoA-1.2", "Paper MoA-9.9", "Paper MoA-1.1")
	require.NoError(t, err)
	assert.Equal(t, papers, retrieved)

	retrieved, err = repo.Get("Paper MoA-9.9")
	require.NoError(t, err)
	assert.Empty(t, retrieved)
}

func TestRepository_Update(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	require.NoError(t, repo.Upsert(papers...))

	updated := papers[0]
	updated.Title = "Updated"
	require.NoError(t, repo.Upsert(updated))

	retrieved, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []timetable.Paper{papers[1], updated}, retrieved)
}

func TestRepository_List(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	retrieved, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, retrieved)

	// Upserting the same papers twice is a no-op
	require.NoError(t, repo.Upsert(papers...))
	require.NoError(t, repo.Upsert(papers...))

	retrieved, err = repo.List()
	require.NoError(t, err)
	assert.Equal(t, []timetable.Paper{papers[1], papers[0]}, retrieved)
}

func TestRepository_Delete(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	require.NoError(t, repo.Upsert(papers...))
	require.NoError(t, repo.Delete("Paper MoA-1.1"))

	retrieved, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []timetable.Paper{papers[0]}, retrieved)
}

func TestRepository_Rooms(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	rooms, err := repo.Rooms()
	require.NoError(t, err)
	assert.Empty(t, rooms)

	require.NoError(t, repo.SaveRooms(timetable.RoomMap{"MoA-1": "Kyoto (Room 1)", "MoA-2": "Osaka"}))
	require.NoError(t, repo.SaveRooms(timetable.RoomMap{"MoA-2": "Osaka (Room 2)", "TuA-1": "Nara (Room 3)"}))

	rooms, err = repo.Rooms()
	require.NoError(t, err)
	assert.Equal(t, timetable.RoomMap{
		"MoA-1": "Kyoto (Room 1)",
		"MoA-2": "Osaka (Room 2)",
		"TuA-1": "Nara (Room 3)",
	}, rooms)
}

func TestDriver_OpenTwice(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	assert.Error(t, repo.Driver.Open("ignored"))
}
