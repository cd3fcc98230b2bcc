package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailed matches any FetchError via errors.Is.
	ErrFetchFailed = errors.New("sheet fetch failed")
	// ErrParseFailed matches any ParseError via errors.Is.
	ErrParseFailed = errors.New("sheet parse failed")
	// ErrProviderUnavailable signals a source that cannot serve requests at all.
	ErrProviderUnavailable = errors.New("sheet source unavailable")
)

// FetchError describes a tab that could not be retrieved: a transport error,
// a non-2xx status, or an HTML page where CSV was expected.
type FetchError struct {
	Tab        Tab
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "request failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: %s (status=%d)", e.Tab, msg, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s", e.Tab, msg)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// ParseError describes a tab whose body was not valid CSV.
type ParseError struct {
	Tab Tab
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Tab, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParseFailed }

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}

// IsSourceError reports whether err came from fetching or parsing a tab.
func IsSourceError(err error) bool {
	return errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrParseFailed)
}

// IsNotFound reports whether err is an upstream 400/404/410, which the sheet
// export endpoints return for tab ids or names that do not exist.
func IsNotFound(err error) bool {
	fetchErr, ok := AsFetchError(err)
	if !ok {
		return false
	}
	switch fetchErr.StatusCode {
	case 400, 404, 410:
		return true
	default:
		return false
	}
}
