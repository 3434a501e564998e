package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/andy2804/iros22-timetable"
	"github.com/andy2804/iros22-timetable/endpoints"
	"github.com/andy2804/iros22-timetable/errors"
	"github.com/andy2804/iros22-timetable/export"
	"github.com/andy2804/iros22-timetable/log"
)

// maxPageSize bounds the size of the pages sent to the extract handler.
var maxPageSize int64 = 32 << 20

func RegisterTimetableEndpoints(srv Server, ep *endpoints.TimetableEndpoint, logger log.Logger) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
	}

	// Timetable handler
	timetableHandler := kithttp.NewServer(
		loggingMiddleware(logger, "timetable")(ep.Timetable),
		decodeTimetableRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Live handler
	liveHandler := kithttp.NewServer(
		loggingMiddleware(logger, "live")(ep.Live),
		decodeTimetableRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// View handler, same as timetable but rendered as html
	viewHandler := kithttp.NewServer(
		loggingMiddleware(logger, "view")(ep.Timetable),
		decodeTimetableRequest,
		encodeView,
		opts...,
	)

	// Get paper handler
	getHandler := kithttp.NewServer(
		loggingMiddleware(logger, "get")(ep.Get),
		decodeGetRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Search handler
	searchHandler := kithttp.NewServer(
		loggingMiddleware(logger, "search")(ep.Search),
		decodeSearchRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Tags handler
	tagsHandler := kithttp.NewServer(
		loggingMiddleware(logger, "tags")(ep.Tags),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Rooms handler
	roomsHandler := kithttp.NewServer(
		loggingMiddleware(logger, "rooms")(ep.Rooms),
		decodeEmptyRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Extract handler
	extractHandler := kithttp.NewServer(
		loggingMiddleware(logger, "extract")(ep.Extract),
		decodeExtractRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	// Register all handlers
	srv.RegisterHandler("/timetable/papers", "GET", timetableHandler)
	srv.RegisterHandler("/timetable/papers/live", "GET", liveHandler)
	srv.RegisterHandler("/timetable/paper/:id", "GET", getHandler)
	srv.RegisterHandler("/timetable/search", "GET", searchHandler)
	srv.RegisterHandler("/timetable/tags", "GET", tagsHandler)
	srv.RegisterHandler("/timetable/rooms", "GET", roomsHandler)
	srv.RegisterHandler("/timetable/view", "GET", viewHandler)
	srv.RegisterHandler("/timetable/extract", "POST", extractHandler)
}

func decodeTimetableRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	query := r.URL.Query()

	req := endpoints.TimetableRequest{}
	req.Filter = timetable.Filter{
		Days:     query["day"],
		Keywords: splitWords(query["keyword"]),
	}

	var err error
	req.ShowAbstract, err = parseBool(query.Get("abstract"), "abstract")
	if err != nil {
		return nil, err
	}

	req.ShowKeywords, err = parseBool(query.Get("keywords"), "keywords")
	if err != nil {
		return nil, err
	}

	return req, nil
}

func decodeGetRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	id := params(ctx)["id"]
	if id == "" {
		return nil, errors.New("missing parameter: id", errors.BadRequest())
	}

	return id, nil
}

func decodeSearchRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := endpoints.SearchRequest{}
	req.Q = r.URL.Query().Get("q")
	req.Days = r.URL.Query()["day"]

	limit := r.URL.Query().Get("limit")
	if limit != "" {
		var err error
		req.Limit, err = strconv.Atoi(limit)
		if err != nil || req.Limit < 0 {
			return nil, errors.New("invalid parameter: limit", errors.BadRequest(), errors.WithCause(err))
		}
	}

	offset := r.URL.Query().Get("offset")
	if offset != "" {
		var err error
		req.Offset, err = strconv.Atoi(offset)
		if err != nil || req.Offset < 0 {
			return nil, errors.New("invalid parameter: offset", errors.BadRequest(), errors.WithCause(err))
		}
	}

	return req, nil
}

func decodeEmptyRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}

func decodeExtractRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	page, err := io.ReadAll(io.LimitReader(r.Body, maxPageSize+1))
	if err != nil {
		return nil, errors.New("could not read page", errors.BadRequest(), errors.WithCause(err))
	}
	if int64(len(page)) > maxPageSize {
		return nil, errors.New(fmt.Sprintf("page larger than %d bytes", maxPageSize), errors.BadRequest())
	}
	if len(page) == 0 {
		return nil, errors.New("empty page", errors.BadRequest())
	}

	return endpoints.ExtractRequest{Page: page}, nil
}

// encodeView renders a timetable response as html tables, the filter keywords
// being highlighted.
func encodeView(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res, ok := response.(endpoints.TimetableResponse)
	if !ok {
		return errors.New("invalid response")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return export.WriteTimetable(w, res.Slots, export.ViewOptions{
		ShowAbstract: res.Request.ShowAbstract,
		ShowKeywords: res.Request.ShowKeywords,
		Highlight:    res.Request.Filter.Keywords,
	})
}

// splitWords splits every value on spaces, so that keyword=deep%20learning
// filters on both words.
func splitWords(values []string) []string {
	var words []string
	for _, v := range values {
		words = append(words, strings.Fields(v)...)
	}
	return words
}

func parseBool(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid parameter: "+name, errors.BadRequest(), errors.WithCause(err))
	}
	return b, nil
}
