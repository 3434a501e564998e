package bleve

import (
	"os"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/andy2804/iros22-timetable"
)

const startLayout = "20060102T150405"

var textFields = []string{"title", "keywords", "summary"}

// NewMapping returns the mapping of the session index: english text for the
// searchable fields, single terms for the fields used to filter and sort.
func NewMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName

	term := bleve.NewTextFieldMapping()
	term.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	for _, field := range textFields {
		doc.AddFieldMappingsAt(field, text)
	}
	for _, field := range []string{"room", "day", "weekday", "start"} {
		doc.AddFieldMappingsAt(field, term)
	}

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = en.AnalyzerName
	return m
}

type SessionIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it when it does not exist yet.
func (s *SessionIndex) Open(path string) error {
	var index bleve.Index
	var err error
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		index, err = bleve.New(path, NewMapping())
	} else {
		index, err = bleve.Open(path)
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

// OpenMem opens an index living in memory only.
func (s *SessionIndex) OpenMem() error {
	index, err := bleve.NewMemOnly(NewMapping())
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *SessionIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func (s *SessionIndex) Index(session timetable.Session) error {
	data := map[string]interface{}{
		"title":    session.Title,
		"keywords": session.Keywords,
		"summary":  session.Summary,
		"room":     session.Room,
		"day":      session.Day(),
		"weekday":  strings.ToLower(session.Start.Weekday().String()),
		"start":    session.Start.Format(startLayout),
	}

	return s.index.Index(session.ID, data)
}

func (s *SessionIndex) Delete(id string) error {
	return s.index.Delete(id)
}

func (s *SessionIndex) Search(search timetable.SearchParams) (timetable.SearchResults, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		s.searchText(search.Q),
		s.searchDays(search.Days),
	)

	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.SortBy([]string{"start", "_id"})

	if search.Limit > 0 {
		searchRequest.Size = int(search.Limit)
	}
	searchRequest.From = int(search.Offset)

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return timetable.SearchResults{}, err
	}

	ids := make([]string, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		ids[i] = hit.ID
	}

	return timetable.SearchResults{
		IDs: ids,
		Pagination: timetable.Pagination{
			Total:  searchResults.Total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

// searchText requires every word of queryString to prefix a term of one of the
// text fields.
func (s *SessionIndex) searchText(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ors := make([]query.Query, 0, len(textFields))
		for _, field := range textFields {
			ors = append(ors, s.searchField(word, field))
		}
		ands = append(ands, orQ(ors...))
	}

	return andQ(ands...)
}

func (s *SessionIndex) searchField(word, field string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(en.AnalyzerName)
	tokens := analyzer.Analyze([]byte(word))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		conjuncs[i] = &query.PrefixQuery{
			Prefix:   string(token.Term),
			FieldVal: field,
		}
	}

	return query.NewConjunctionQuery(conjuncs)
}

// searchDays matches a date (2006-01-02) or a weekday name.
func (*SessionIndex) searchDays(days []string) query.Query {
	if len(days) == 0 {
		return nil
	}

	ors := make([]query.Query, 0, 2*len(days))
	for _, day := range days {
		ors = append(ors,
			&query.TermQuery{Term: day, FieldVal: "day"},
			&query.TermQuery{Term: strings.ToLower(day), FieldVal: "weekday"},
		)
	}

	return orQ(ors...)
}
