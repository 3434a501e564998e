package export

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/services"
)

// ViewOptions selects the optional columns of the timetable view and the
// words to highlight in titles, keywords and abstracts.
type ViewOptions struct {
	ShowAbstract bool
	ShowKeywords bool
	Highlight    []string
}

// WriteTimetable renders one table per slot, headed by the slot day and time.
func WriteTimetable(w io.Writer, slots []timetable.Slot, opts ViewOptions) error {
	body := element(atom.Body)
	if len(slots) == 0 {
		p := element(atom.P)
		p.AppendChild(text("No session found."))
		body.AppendChild(p)
	}

	for _, slot := range slots {
		heading := element(atom.H3)
		heading.AppendChild(text(slot.Start.Format("Mon 15:04")))
		body.AppendChild(heading)
		body.AppendChild(slotTable(slot, opts))
	}

	head := element(atom.Head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	title := element(atom.Title)
	title.AppendChild(text("Timetable"))
	head.AppendChild(title)

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html)
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)

	if err := html.Render(w, doc); err != nil {
		return errors.New("could not render timetable", errors.WithCause(err))
	}
	return nil
}

func slotTable(slot timetable.Slot, opts ViewOptions) *html.Node {
	table := element(atom.Table)

	header := element(atom.Tr)
	columns := []string{"Room", "Title"}
	if opts.ShowKeywords {
		columns = append(columns, "Keywords")
	}
	if opts.ShowAbstract {
		columns = append(columns, "Abstract")
	}
	columns = append(columns, "Calendar")
	for _, c := range columns {
		th := element(atom.Th)
		th.AppendChild(text(c))
		header.AppendChild(th)
	}
	table.AppendChild(header)

	for _, session := range slot.Sessions {
		row := element(atom.Tr)
		row.AppendChild(cell(text(session.Room)))

		scholar := link(session.ScholarURL)
		appendSpans(scholar, session.Title, opts.Highlight)
		row.AppendChild(cell(scholar))

		if opts.ShowKeywords {
			td := element(atom.Td)
			appendSpans(td, session.Keywords, opts.Highlight)
			row.AppendChild(td)
		}
		if opts.ShowAbstract {
			td := element(atom.Td)
			appendSpans(td, session.Summary, opts.Highlight)
			row.AppendChild(td)
		}

		calendar := link(session.CalendarURL)
		calendar.AppendChild(text("Add"))
		row.AppendChild(cell(calendar))

		table.AppendChild(row)
	}
	return table
}

// appendSpans appends s to n, with the highlighted words in bold.
func appendSpans(n *html.Node, s string, words []string) {
	for _, span := range services.Highlight(s, words) {
		if !span.Match {
			n.AppendChild(text(span.Text))
			continue
		}
		b := element(atom.B)
		b.AppendChild(text(span.Text))
		n.AppendChild(b)
	}
}

func cell(child *html.Node) *html.Node {
	td := element(atom.Td)
	td.AppendChild(child)
	return td
}

func link(href string) *html.Node {
	a := element(atom.A)
	a.Attr = []html.Attribute{
		{Key: "href", Val: href},
		{Key: "target", Val: "_blank"},
	}
	return a
}
