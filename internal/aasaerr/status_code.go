package aasaerr

import (
	"errors"
	"net/http"
)

// HTTPStatusCodeError annotates err with the HTTP status code that
// should be responded with when it reaches an HTTP handler. It returns
// nil if err is nil. Codes outside of [100, 600) become 500.
func HTTPStatusCodeError(err error, httpStatusCode int) error {
	if err == nil {
		return nil
	}

	if 600 <= httpStatusCode || httpStatusCode < 100 {
		httpStatusCode = http.StatusInternalServerError
	}

	return &httpStatusCodeError{
		err:            err,
		httpStatusCode: httpStatusCode,
	}
}

type httpStatusCodeError struct {
	err            error
	httpStatusCode int
}

func (e *httpStatusCodeError) Error() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

func (e *httpStatusCodeError) Unwrap() error {
	return e.err
}

// HTTPStatusCode returns the HTTP status code annotated onto
// err by HTTPStatusCodeError, or 500 if there is none.
func HTTPStatusCode(err error) int {
	hscerr := &httpStatusCodeError{}
	if errors.As(err, &hscerr) {
		return hscerr.httpStatusCode
	}

	return http.StatusInternalServerError
}
