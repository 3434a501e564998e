package etl

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Template: true,
	atom.Noscript: true,
}

var blocks = map[atom.Atom]bool{
	atom.Div: true, atom.P: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.Table: true, atom.Tbody: true, atom.Thead: true, atom.Tfoot: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true, atom.Nav: true,
	atom.Blockquote: true, atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Form: true,
	atom.Pre: true, atom.Caption: true,
}

// Text returns the text of the first node of sel the way a browser renders it:
// cells of a row are separated by a tab, rows and blocks by a newline, and
// whitespace is collapsed outside of pre elements. goquery's Text only
// concatenates text nodes, which loses the separators program pages rely on.
//
// Like innerText, a node hidden by an inline display:none style, or inside
// one, is not rendered: its raw text is returned as is. Hidden descendants of
// a rendered node are skipped.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	for n := sel.Get(0); n != nil; n = n.Parent {
		if hidden(n) {
			return sel.First().Text()
		}
	}

	w := textWriter{boundary: true}
	for c := sel.Get(0).FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
	return strings.TrimRight(string(w.buf), " ")
}

type textWriter struct {
	buf []byte

	// pending is the number of required line breaks not written yet. They are
	// only written before some more text, so breaks never trail.
	pending int
	// boundary is true at the start of a line or right after a tab.
	boundary bool
	// pre counts the pre elements the walk is in.
	pre int
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	if skipped[n.DataAtom] || hidden(n) {
		return
	}

	switch {
	case n.DataAtom == atom.Br:
		w.literal('\n')
		return
	case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
		if isCell(previousElement(n)) {
			w.literal('\t')
		}
	case n.DataAtom == atom.P:
		w.lineBreak(2)
	case blocks[n.DataAtom]:
		w.lineBreak(1)
	}

	if n.DataAtom == atom.Pre {
		w.pre++
		defer func() { w.pre-- }()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}

	switch {
	case n.DataAtom == atom.P:
		w.lineBreak(2)
	case blocks[n.DataAtom]:
		w.lineBreak(1)
	}
}

func (w *textWriter) text(s string) {
	if w.pre > 0 {
		if s == "" {
			return
		}
		w.flush()
		w.buf = append(w.buf, s...)
		w.boundary = s[len(s)-1] == '\n'
		return
	}

	s = collapse(s)
	if w.boundary || w.pending > 0 {
		s = strings.TrimLeft(s, " ")
	}
	if s == "" {
		return
	}

	w.flush()
	if s[0] == ' ' && len(w.buf) > 0 && w.buf[len(w.buf)-1] == ' ' {
		s = s[1:]
	}
	w.buf = append(w.buf, s...)
	w.boundary = false
}

func (w *textWriter) literal(c byte) {
	w.flush()
	w.trimSpaces()
	w.buf = append(w.buf, c)
	w.boundary = true
}

func (w *textWriter) lineBreak(n int) {
	if n > w.pending {
		w.pending = n
	}
}

func (w *textWriter) flush() {
	if w.pending == 0 {
		return
	}

	if len(w.buf) > 0 {
		w.trimSpaces()
		// Breaks already written by a <br> count toward the required ones.
		written := 0
		for i := len(w.buf) - 1; i >= 0 && w.buf[i] == '\n'; i-- {
			written++
		}
		for ; written < w.pending; written++ {
			w.buf = append(w.buf, '\n')
		}
		w.boundary = true
	}
	w.pending = 0
}

func (w *textWriter) trimSpaces() {
	for len(w.buf) > 0 && w.buf[len(w.buf)-1] == ' ' {
		w.buf = w.buf[:len(w.buf)-1]
	}
}

// collapse replaces every run of white space with a single space.
func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
			}
			space = true
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

// hidden reports whether n carries an inline display:none style.
func hidden(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, attr := range n.Attr {
		if attr.Key != "style" {
			continue
		}
		for _, decl := range strings.Split(attr.Val, ";") {
			kv := strings.SplitN(decl, ":", 2)
			if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "display") &&
				strings.EqualFold(strings.TrimSpace(kv[1]), "none") {
				return true
			}
		}
	}
	return false
}

func previousElement(n *html.Node) *html.Node {
	for p := n.PrevSibling; p != nil; p = p.PrevSibling {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func isCell(n *html.Node) bool {
	return n != nil && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}
