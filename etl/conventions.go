package etl

import (
	"fmt"
	"regexp"

	"github.com/andybalholm/cascadia"

	"github.com/andy2804/iros22-timetable/errors"
)

// Conventions describes the structure of a program page: where the date, the
// titles, the time slots, the abstracts and the section headers are, and how
// their text is laid out.
type Conventions struct {
	DateSelector string `toml:"date_selector"`
	DatePrefix   string `toml:"date_prefix"`

	TitleSelector string `toml:"title_selector"`
	// RowDepth is the number of ancestors between a title anchor and the row
	// whose previous sibling holds the time slot.
	RowDepth      int    `toml:"row_depth"`
	SlotSelector  string `toml:"slot_selector"`
	SlotSeparator string `toml:"slot_separator"`

	HandlerAttr      string `toml:"handler_attr"`
	HandlerPattern   string `toml:"handler_pattern"`
	AbstractIDPrefix string `toml:"abstract_id_prefix"`

	HeaderSelector  string `toml:"header_selector"`
	HeaderClass     string `toml:"header_class"`
	HeaderSeparator string `toml:"header_separator"`
}

// DefaultConventions matches the PaperCept program pages used by IROS.
func DefaultConventions() Conventions {
	return Conventions{
		DateSelector: "h3",
		DatePrefix:   "Technical Program for ",

		TitleSelector: "span.pTtl > a",
		RowDepth:      3,
		SlotSelector:  "a",
		SlotSeparator: ", ",

		HandlerAttr:      "onclick",
		HandlerPattern:   "[0-9]+",
		AbstractIDPrefix: "Ab",

		HeaderSelector:  ".sHdr",
		HeaderClass:     "sHdr",
		HeaderSeparator: "\t",
	}
}

func (c Conventions) Validate() error {
	selectors := [][2]string{
		{"date_selector", c.DateSelector},
		{"title_selector", c.TitleSelector},
		{"slot_selector", c.SlotSelector},
		{"header_selector", c.HeaderSelector},
	}
	for _, s := range selectors {
		key, sel := s[0], s[1]
		if sel == "" {
			return errors.New(fmt.Sprintf("conventions: %s is empty", key), errors.BadRequest())
		}
		if _, err := cascadia.ParseGroup(sel); err != nil {
			return errors.New(fmt.Sprintf("conventions: invalid %s %q", key, sel), errors.BadRequest(), errors.WithCause(err))
		}
	}

	if c.RowDepth <= 0 {
		return errors.New(fmt.Sprintf("conventions: row_depth must be positive, got %d", c.RowDepth), errors.BadRequest())
	}

	if c.SlotSeparator == "" || c.HeaderSeparator == "" {
		return errors.New("conventions: separators cannot be empty", errors.BadRequest())
	}

	if c.HandlerAttr == "" {
		return errors.New("conventions: handler_attr is empty", errors.BadRequest())
	}

	if _, err := regexp.Compile(c.HandlerPattern); err != nil {
		return errors.New(fmt.Sprintf("conventions: invalid handler_pattern %q", c.HandlerPattern), errors.BadRequest(), errors.WithCause(err))
	}

	return nil
}
