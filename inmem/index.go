package inmem

import (
	"sort"
	"strings"
	"sync"

	"github.com/andy2804/iros22-timetable"
)

// SessionIndex matches every word of the query against the lowercased title,
// keywords and summary of the sessions.
type SessionIndex struct {
	mu       sync.Locker
	sessions map[string]timetable.Session
}

func NewSessionIndex() *SessionIndex {
	return &SessionIndex{
		mu:       &sync.Mutex{},
		sessions: make(map[string]timetable.Session),
	}
}

func (i *SessionIndex) Index(session timetable.Session) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.sessions[session.ID] = session
	return nil
}

func (i *SessionIndex) Delete(id string) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.sessions, id)
	return nil
}

func (i *SessionIndex) Search(sp timetable.SearchParams) (timetable.SearchResults, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	words := strings.Fields(strings.ToLower(sp.Q))

	var hits []timetable.Session
	for _, session := range i.sessions {
		weekday := strings.ToLower(session.Start.Weekday().String())
		if len(sp.Days) > 0 && !contains(sp.Days, session.Day()) && !contains(sp.Days, weekday) {
			continue
		}

		text := strings.ToLower(strings.Join([]string{session.Title, session.Keywords, session.Summary}, " "))
		match := true
		for _, word := range words {
			if !strings.Contains(text, word) {
				match = false
				break
			}
		}
		if match {
			hits = append(hits, session)
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		if !hits[a].Start.Equal(hits[b].Start) {
			return hits[a].Start.Before(hits[b].Start)
		}
		return hits[a].ID < hits[b].ID
	})

	total := uint64(len(hits))
	from := sp.Offset
	if from > total {
		from = total
	}
	to := total
	if sp.Limit > 0 && from+sp.Limit < to {
		to = from + sp.Limit
	}

	ids := make([]string, 0, to-from)
	for _, hit := range hits[from:to] {
		ids = append(ids, hit.ID)
	}

	return timetable.SearchResults{
		IDs: ids,
		Pagination: timetable.Pagination{
			Total:  total,
			Limit:  sp.Limit,
			Offset: sp.Offset,
		},
	}, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
