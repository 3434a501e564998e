package etl

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/log"
)

func errStructure(format string, args ...interface{}) error {
	return errors.Unprocessable()(errors.Errorf(format, args...))
}

// ProgramScraper extracts the papers and the rooms of a program page in a
// single pass. Any element missing from the expected structure aborts the pass.
type ProgramScraper struct {
	conventions Conventions
	handler     *regexp.Regexp
	logger      log.Logger
}

func NewProgramScraper(conventions Conventions, logger log.Logger) (*ProgramScraper, error) {
	if err := conventions.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.Discard()
	}

	return &ProgramScraper{
		conventions: conventions,
		handler:     regexp.MustCompile(conventions.HandlerPattern),
		logger:      logger,
	}, nil
}

// ScrapReader loads the page read from r and scraps it.
func (s *ProgramScraper) ScrapReader(r io.Reader) (timetable.Program, error) {
	doc, err := Load(r)
	if err != nil {
		return timetable.Program{}, err
	}
	return s.Scrap(doc)
}

func (s *ProgramScraper) Scrap(doc *goquery.Document) (timetable.Program, error) {
	root := doc.Selection

	date, err := s.Date(root)
	if err != nil {
		return timetable.Program{}, err
	}

	papers, err := s.Papers(root, date)
	if err != nil {
		return timetable.Program{}, err
	}

	rooms, err := s.Rooms(root)
	if err != nil {
		return timetable.Program{}, err
	}

	s.logger.WithField("date", date).Debugf("scraped %d papers and %d rooms", len(papers), len(rooms))
	return timetable.Program{Papers: papers, Rooms: rooms}, nil
}

// Date returns the text of the first date heading, without its prefix.
func (s *ProgramScraper) Date(root *goquery.Selection) (string, error) {
	heading := root.Find(s.conventions.DateSelector).First()
	if heading.Length() == 0 {
		return "", errStructure("no element matches date selector %q", s.conventions.DateSelector)
	}

	return CleanString(Text(heading), RemoveFirst(s.conventions.DatePrefix)), nil
}

// Papers returns one paper per title anchor, in document order.
func (s *ProgramScraper) Papers(root *goquery.Selection, date string) ([]timetable.Paper, error) {
	var papers []timetable.Paper
	var err error

	root.Find(s.conventions.TitleSelector).EachWithBreak(func(i int, anchor *goquery.Selection) bool {
		var paper timetable.Paper
		paper, err = s.paper(root, anchor)
		if err != nil {
			err = errors.WithCause(err)(errors.Errorf("paper %d", i))
			return false
		}

		paper.Date = date
		papers = append(papers, paper)
		return true
	})
	if err != nil {
		return nil, err
	}

	if papers == nil {
		papers = make([]timetable.Paper, 0)
	}
	return papers, nil
}

func (s *ProgramScraper) paper(root, anchor *goquery.Selection) (timetable.Paper, error) {
	c := s.conventions

	row := anchor
	for depth := 0; depth < c.RowDepth; depth++ {
		row = row.Parent()
	}
	if row.Length() == 0 {
		return timetable.Paper{}, errStructure("title has fewer than %d ancestors", c.RowDepth)
	}

	prev := row.Prev()
	if prev.Length() == 0 {
		return timetable.Paper{}, errStructure("paper row <%s> has no preceding sibling", goquery.NodeName(row))
	}

	slot := prev.Find(c.SlotSelector).First()
	if slot.Length() == 0 {
		return timetable.Paper{}, errStructure("no element matches slot selector %q", c.SlotSelector)
	}

	slotText := Text(slot)
	parts := strings.Split(slotText, c.SlotSeparator)
	if len(parts) < 2 {
		return timetable.Paper{}, errStructure("time/id text %q has no %q separator", slotText, c.SlotSeparator)
	}

	abstract, err := s.abstract(root, anchor)
	if err != nil {
		return timetable.Paper{}, err
	}

	return timetable.Paper{
		Time:     parts[0],
		ID:       parts[1],
		Abstract: abstract,
		Title:    FirstLine(Text(anchor)),
	}, nil
}

func (s *ProgramScraper) abstract(root, anchor *goquery.Selection) (string, error) {
	c := s.conventions

	handler, _ := anchor.Attr(c.HandlerAttr)
	number := s.handler.FindString(handler)
	if number == "" {
		return "", errStructure("%s %q does not match %q", c.HandlerAttr, handler, c.HandlerPattern)
	}

	id := c.AbstractIDPrefix + number
	block := root.Find(fmt.Sprintf("[id=%q]", id)).First()
	if block.Length() == 0 {
		return "", errStructure("no abstract element with id %q", id)
	}

	return CleanString(Text(block), TrimLines, strings.TrimSpace), nil
}

// Rooms maps the label of every leading section header to its room. A header
// directly preceded by another header continues the same section and is skipped.
func (s *ProgramScraper) Rooms(root *goquery.Selection) (timetable.RoomMap, error) {
	c := s.conventions
	rooms := make(timetable.RoomMap)
	var err error

	root.Find(c.HeaderSelector).EachWithBreak(func(i int, header *goquery.Selection) bool {
		prev := header.Prev()
		if prev.Length() > 0 && prev.HasClass(c.HeaderClass) {
			return true
		}

		text := Text(header)
		parts := strings.Split(text, c.HeaderSeparator)
		if len(parts) < 2 {
			err = errStructure("section header %d: %q has no %q separator", i, text, c.HeaderSeparator)
			return false
		}

		rooms[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		return true
	})
	if err != nil {
		return nil, err
	}

	return rooms, nil
}
