package http

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"

	"github.com/andy2804/iros22-timetable/log"
)

// loggingMiddleware logs the duration of every call, and its error if any.
func loggingMiddleware(logger log.Logger, name string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (interface{}, error) {
			begin := time.Now()
			response, err := next(ctx, request)

			l := logger.WithField("endpoint", name).WithField("took", time.Since(begin).String())
			if err != nil {
				l.Errorf("call failed: %v", err)
			} else {
				l.Debugf("call succeeded")
			}
			return response, err
		}
	}
}
