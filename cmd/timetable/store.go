package main

import (
	"os"
	"path/filepath"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/bleve"
	"github.com/andy2804/iros22-timetable/bolt"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/inmem"
	"github.com/andy2804/iros22-timetable/services"
)

type store struct {
	papers timetable.PaperRepository
	rooms  timetable.RoomRepository
	index  timetable.SessionIndex

	closers []func() error
}

func (s *store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Errorf("could not close store: %v", err)
		}
	}
}

// openStore opens the bolt database and the bleve index of the configuration.
// An empty bolt store keeps the papers in memory, an empty bleve store keeps
// the index in memory.
func openStore(cfg Configuration) (*store, error) {
	s := &store{}

	if cfg.Bolt.Store == "" {
		repo := inmem.NewPaperRepository()
		s.papers, s.rooms = repo, repo
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Bolt.Store), 0755); err != nil {
			return nil, errors.New("could not create data directory", errors.WithCause(err))
		}

		driver := &bolt.Driver{}
		if err := driver.Open(cfg.Bolt.Store); err != nil {
			return nil, errors.New("could not open bolt store", errors.WithCause(err))
		}
		s.closers = append(s.closers, driver.Close)

		repo := &bolt.PaperRepository{Driver: driver}
		s.papers, s.rooms = repo, repo
	}

	index := &bleve.SessionIndex{}
	var err error
	if cfg.Bleve.Store == "" {
		err = index.OpenMem()
	} else {
		err = index.Open(cfg.Bleve.Store)
	}
	if err != nil {
		s.Close()
		return nil, errors.New("could not open bleve index", errors.WithCause(err))
	}
	s.closers = append(s.closers, index.Close)
	s.index = index

	return s, nil
}

func (s *store) service() *services.TimetableService {
	return services.NewTimetableService(s.papers, s.rooms, s.index, cfg.Timetable.LiveWindow.Duration, logger)
}
