package errors

import (
	"net/http"
)

func BadRequest() ErrorEnricher    { return WithCode(http.StatusBadRequest) }
func NotFound() ErrorEnricher      { return WithCode(http.StatusNotFound) }
func Unprocessable() ErrorEnricher { return WithCode(http.StatusUnprocessableEntity) }

// CodeOf returns the code carried by err, or DefaultCode when err was not
// built by this package.
func CodeOf(err error) int {
	if e, ok := err.(Error); ok {
		return e.Code()
	}
	return DefaultCode
}
