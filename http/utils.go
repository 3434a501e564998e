package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/andy2804/iros22-timetable/errors"
)

// encodeError writes an error as an HTTP response. It handles the status code
// contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errors.CodeOf(err))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

type contextKey string

const paramsKey contextKey = "params"

// params returns the path parameters of the request.
func params(ctx context.Context) map[string]string {
	p, _ := ctx.Value(paramsKey).(map[string]string)
	if p == nil {
		return map[string]string{}
	}
	return p
}
