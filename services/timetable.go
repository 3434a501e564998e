package services

import (
	"fmt"
	"time"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/log"
)

func errPaperNotFound(id string) error {
	return errors.New(fmt.Sprintf("paper %s not found", id), errors.NotFound())
}

type TimetableService struct {
	papers timetable.PaperRepository
	rooms  timetable.RoomRepository
	index  timetable.SessionIndex

	window time.Duration
	logger log.Logger
}

func NewTimetableService(
	papers timetable.PaperRepository,
	rooms timetable.RoomRepository,
	index timetable.SessionIndex,
	window time.Duration,
	logger log.Logger,
) *TimetableService {
	if logger == nil {
		logger = log.Discard()
	}

	return &TimetableService{
		papers: papers,
		rooms:  rooms,
		index:  index,

		window: window,
		logger: logger,
	}
}

// Import stores the papers and rooms of a program and indexes its sessions.
// Importing the same program twice leaves the store unchanged.
func (s *TimetableService) Import(program timetable.Program) ([]timetable.Session, error) {
	if err := s.rooms.SaveRooms(program.Rooms); err != nil {
		return nil, errors.New("could not save rooms", errors.WithCause(err))
	}

	rooms, err := s.rooms.Rooms()
	if err != nil {
		return nil, errors.New("could not read rooms", errors.WithCause(err))
	}

	sessions, err := Enrich(program.Papers, rooms)
	if err != nil {
		return nil, err
	}

	if err := s.papers.Upsert(program.Papers...); err != nil {
		return nil, errors.New("could not save papers", errors.WithCause(err))
	}

	for _, session := range sessions {
		if err := s.index.Index(session); err != nil {
			return nil, errors.New(fmt.Sprintf("could not index paper %s", session.ID), errors.WithCause(err))
		}
	}

	s.logger.Printf("imported %d papers and %d rooms", len(program.Papers), len(program.Rooms))
	return sessions, nil
}

// Sessions returns every stored paper as a session.
func (s *TimetableService) Sessions() ([]timetable.Session, error) {
	papers, err := s.papers.List()
	if err != nil {
		return nil, err
	}

	return s.enrich(papers)
}

func (s *TimetableService) Get(id string) (timetable.Session, error) {
	papers, err := s.papers.Get(id)
	if err != nil {
		return timetable.Session{}, err
	} else if len(papers) != 1 {
		return timetable.Session{}, errPaperNotFound(id)
	}

	sessions, err := s.enrich(papers)
	if err != nil {
		return timetable.Session{}, err
	}
	return sessions[0], nil
}

func (s *TimetableService) enrich(papers []timetable.Paper) ([]timetable.Session, error) {
	rooms, err := s.rooms.Rooms()
	if err != nil {
		return nil, err
	}

	return Enrich(papers, rooms)
}

// Timetable returns the filtered sessions grouped by start time.
func (s *TimetableService) Timetable(f timetable.Filter) ([]timetable.Slot, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return nil, err
	}

	return Slots(Filter(sessions, f)), nil
}

// Live returns the slots starting soon after now.
func (s *TimetableService) Live(now time.Time, f timetable.Filter) ([]timetable.Slot, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return nil, err
	}

	return Slots(Live(Filter(sessions, f), now, s.window)), nil
}

type SearchResults struct {
	Sessions   []timetable.Session  `json:"sessions"`
	Pagination timetable.Pagination `json:"pagination"`
}

func (s *TimetableService) Search(q string, days []string, offset, limit int) (SearchResults, error) {
	sp := timetable.SearchParams{
		Q:      q,
		Days:   days,
		Offset: uint64(offset),
		Limit:  uint64(limit),
	}
	if limit <= 0 {
		sp.Limit = 20
	}
	if offset < 0 {
		sp.Offset = 0
	}

	res, err := s.index.Search(sp)
	if err != nil {
		return SearchResults{}, err
	}

	papers, err := s.papers.Get(res.IDs...)
	if err != nil {
		return SearchResults{}, err
	}

	sessions, err := s.enrich(papers)
	if err != nil {
		return SearchResults{}, err
	}

	return SearchResults{
		Sessions:   sessions,
		Pagination: res.Pagination,
	}, nil
}

func (s *TimetableService) Tags() ([]timetable.TagCount, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return nil, err
	}

	return Tags(sessions), nil
}

func (s *TimetableService) Rooms() (timetable.RoomMap, error) {
	return s.rooms.Rooms()
}

// Delete removes a paper from the store and from the index.
func (s *TimetableService) Delete(id string) error {
	papers, err := s.papers.Get(id)
	if err != nil {
		return err
	} else if len(papers) != 1 {
		return errPaperNotFound(id)
	}

	if err := s.papers.Delete(id); err != nil {
		return errors.New(fmt.Sprintf("could not delete paper %s", id), errors.WithCause(err))
	}

	if err := s.index.Delete(id); err != nil {
		return errors.New(fmt.Sprintf("could not remove paper %s from the index", id), errors.WithCause(err))
	}

	s.logger.Printf("deleted paper %s", id)
	return nil
}

// Reindex indexes every stored paper again.
func (s *TimetableService) Reindex() (int, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return 0, err
	}

	for _, session := range sessions {
		if err := s.index.Index(session); err != nil {
			return 0, errors.New(fmt.Sprintf("could not index paper %s", session.ID), errors.WithCause(err))
		}
		s.logger.Debugf("indexed paper %s", session.ID)
	}
	return len(sessions), nil
}
