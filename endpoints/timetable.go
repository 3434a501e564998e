package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/etl"
	"github.com/andy2804/iros22-timetable/services"
)

var (
	errInvalidRequest = errors.New("invalid request", errors.BadRequest())
)

type TimetableEndpoint struct {
	service *services.TimetableService
	scraper *etl.ProgramScraper

	// now is replaced in tests
	now func() time.Time
}

func NewTimetableEndpoint(service *services.TimetableService, scraper *etl.ProgramScraper) *TimetableEndpoint {
	return &TimetableEndpoint{
		service: service,
		scraper: scraper,
		now:     time.Now,
	}
}

// WithClock makes the endpoint read the time from now.
func (ep *TimetableEndpoint) WithClock(now func() time.Time) *TimetableEndpoint {
	ep.now = now
	return ep
}

type TimetableRequest struct {
	Filter timetable.Filter

	// Used by the html view only
	ShowAbstract bool
	ShowKeywords bool
}

// TimetableResponse is returned by Timetable and Live. The request is kept
// for the html view.
type TimetableResponse struct {
	Slots   []timetable.Slot
	Request TimetableRequest
}

func (r TimetableResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"data": r.Slots,
	})
}

type SearchRequest struct {
	Q      string
	Days   []string
	Limit  int
	Offset int
}

type ExtractRequest struct {
	Page []byte
}

func (ep *TimetableEndpoint) Timetable(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(TimetableRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	slots, err := ep.service.Timetable(req.Filter)
	if err != nil {
		return nil, err
	}

	return TimetableResponse{Slots: slots, Request: req}, nil
}

func (ep *TimetableEndpoint) Live(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(TimetableRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	slots, err := ep.service.Live(ep.now(), req.Filter)
	if err != nil {
		return nil, err
	}

	return TimetableResponse{Slots: slots, Request: req}, nil
}

func (ep *TimetableEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	id, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	session, err := ep.service.Get(id)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": session,
	}, nil
}

func (ep *TimetableEndpoint) Search(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(SearchRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	res, err := ep.service.Search(req.Q, req.Days, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data":       res.Sessions,
		"pagination": res.Pagination,
	}, nil
}

func (ep *TimetableEndpoint) Tags(ctx context.Context, r interface{}) (interface{}, error) {
	tags, err := ep.service.Tags()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": tags,
	}, nil
}

func (ep *TimetableEndpoint) Rooms(ctx context.Context, r interface{}) (interface{}, error) {
	rooms, err := ep.service.Rooms()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": rooms,
	}, nil
}

// Extract scraps the program page sent in the request, without storing it.
func (ep *TimetableEndpoint) Extract(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(ExtractRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	program, err := ep.scraper.ScrapReader(bytes.NewReader(req.Page))
	if err != nil {
		return nil, err
	}

	return program, nil
}
