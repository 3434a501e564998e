package inmem

import (
	"sort"
	"sync"

	"github.com/andy2804/iros22-timetable"
)

// PaperRepository keeps papers and rooms in memory. It is used when no bolt
// store is configured.
type PaperRepository struct {
	mu     sync.Locker
	papers map[string]timetable.Paper
	rooms  timetable.RoomMap
}

func NewPaperRepository() *PaperRepository {
	return &PaperRepository{
		mu:     &sync.Mutex{},
		papers: make(map[string]timetable.Paper),
		rooms:  make(timetable.RoomMap),
	}
}

func (r *PaperRepository) Get(ids ...string) ([]timetable.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	papers := make([]timetable.Paper, 0, len(ids))
	for _, id := range ids {
		if paper, ok := r.papers[id]; ok {
			papers = append(papers, paper)
		}
	}
	return papers, nil
}

func (r *PaperRepository) List() ([]timetable.Paper, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.papers))
	for id := range r.papers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	papers := make([]timetable.Paper, len(ids))
	for i, id := range ids {
		papers[i] = r.papers[id]
	}
	return papers, nil
}

func (r *PaperRepository) Upsert(papers ...timetable.Paper) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, paper := range papers {
		r.papers[paper.ID] = paper
	}
	return nil
}

func (r *PaperRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.papers, id)
	return nil
}

func (r *PaperRepository) SaveRooms(rooms timetable.RoomMap) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for label, room := range rooms {
		r.rooms[label] = room
	}
	return nil
}

func (r *PaperRepository) Rooms() (timetable.RoomMap, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rooms := make(timetable.RoomMap, len(r.rooms))
	for label, room := range r.rooms {
		rooms[label] = room
	}
	return rooms, nil
}
