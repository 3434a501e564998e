package export

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
)

const (
	PapersFile = "papers.json"
	RoomsFile  = "rooms.json"
)

// WriteJSON writes v indented with two spaces. Map keys come out sorted, so the
// same value always gives the same bytes.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal is WriteJSON into a byte slice, without the trailing newline.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.New("could not encode json", errors.WithCause(err))
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteFiles writes papers.json and rooms.json into dir.
func WriteFiles(dir string, program timetable.Program) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("could not create output directory", errors.WithCause(err))
	}

	files := []struct {
		name string
		v    interface{}
	}{
		{PapersFile, program.Papers},
		{RoomsFile, program.Rooms},
	}
	for _, file := range files {
		data, err := Marshal(file.v)
		if err != nil {
			return err
		}

		data = append(data, '\n')
		if err := os.WriteFile(filepath.Join(dir, file.name), data, 0644); err != nil {
			return errors.New("could not write "+file.name, errors.WithCause(err))
		}
	}

	return nil
}

// WritePage writes an HTML page holding both files in text areas, ready to be
// copied out of a browser.
func WritePage(w io.Writer, program timetable.Program) error {
	papers, err := Marshal(program.Papers)
	if err != nil {
		return err
	}

	rooms, err := Marshal(program.Rooms)
	if err != nil {
		return err
	}

	body := element(atom.Body)
	for _, file := range []struct {
		name string
		data []byte
	}{
		{PapersFile, papers},
		{RoomsFile, rooms},
	} {
		body.AppendChild(text(file.name))
		body.AppendChild(element(atom.Br))

		area := element(atom.Textarea)
		area.AppendChild(text(string(file.data)))
		body.AppendChild(area)
		body.AppendChild(element(atom.Br))
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html)
	root.AppendChild(element(atom.Head))
	root.AppendChild(body)
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return errors.New("could not render page", errors.WithCause(err))
	}
	return nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
