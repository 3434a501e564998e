package etl

import (
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/andy2804/iros22-timetable/errors"
)

// Load parses a program page. Pages are read from files or stdin only: the
// program is a saved, already rendered page.
func Load(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.New("could not parse html", errors.BadRequest(), errors.WithCause(err))
	}
	return doc, nil
}

func LoadFile(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("could not open program page", errors.WithCause(err))
	}
	defer f.Close()

	return Load(f)
}
