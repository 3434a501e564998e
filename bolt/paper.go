package bolt

import (
	"encoding/json"

	"github.com/boltdb/bolt"

	"github.com/andy2804/iros22-timetable"
)

// PaperRepository stores papers by id, and the rooms of their sections.
type PaperRepository struct {
	Driver *Driver
}

// Get retrieves the papers defined by ids, in the order of ids. Unknown ids
// are skipped.
func (r *PaperRepository) Get(ids ...string) ([]timetable.Paper, error) {
	papers := make([]timetable.Paper, 0, len(ids))
	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		for _, id := range ids {
			data := bucket.Get([]byte(id))
			if data == nil {
				continue
			}

			var paper timetable.Paper
			if err := json.Unmarshal(data, &paper); err != nil {
				return err
			}
			papers = append(papers, paper)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return papers, nil
}

// List returns every paper, ordered by id.
func (r *PaperRepository) List() ([]timetable.Paper, error) {
	papers := make([]timetable.Paper, 0)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		return tx.Bucket(paperBucket).ForEach(func(_, data []byte) error {
			var paper timetable.Paper
			if err := json.Unmarshal(data, &paper); err != nil {
				return err
			}
			papers = append(papers, paper)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return papers, nil
}

// Upsert inserts or replaces papers in a single transaction.
func (r *PaperRepository) Upsert(papers ...timetable.Paper) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		for _, paper := range papers {
			data, err := json.Marshal(paper)
			if err != nil {
				return err
			}

			if err := bucket.Put([]byte(paper.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PaperRepository) Delete(id string) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(paperBucket).Delete([]byte(id))
	})
}

// SaveRooms merges rooms into the stored ones.
func (r *PaperRepository) SaveRooms(rooms timetable.RoomMap) error {
	return r.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(roomBucket)

		for label, room := range rooms {
			if err := bucket.Put([]byte(label), []byte(room)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PaperRepository) Rooms() (timetable.RoomMap, error) {
	rooms := make(timetable.RoomMap)

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		return tx.Bucket(roomBucket).ForEach(func(label, room []byte) error {
			rooms[string(label)] = string(room)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
