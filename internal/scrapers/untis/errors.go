package untis

import (
	"errors"
	"fmt"
)

var (
	ErrNoTables      = errors.New("page contains no substitution tables")
	ErrShortRow      = errors.New("row has fewer than 7 data cells")
	ErrNoWeekdayLeft = errors.New("more substitution tables than weekdays")
)

// FetchError is returned when the plan page could not be retrieved, either
// because of a transport failure or timeout (Err is set) or because the server
// answered with a non-2xx status (StatusCode is set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err.Error())
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports a table (or the whole page when Table < 0) that could not
// be turned into a Day.
type ParseError struct {
	Weekday string
	Table   int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Table < 0 {
		return fmt.Sprintf("parse plan: %s", e.Err.Error())
	}
	if e.Weekday == "" {
		return fmt.Sprintf("parse table %d: %s", e.Table, e.Err.Error())
	}
	return fmt.Sprintf("parse %s (table %d): %s", e.Weekday, e.Table, e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
