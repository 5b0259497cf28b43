package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDataSource is the single failure kind of the remote data source:
// transport errors, non-2xx responses and malformed payloads all wrap it.
var ErrDataSource = errors.New("data source failure")

// DataSourceError describes a failed remote call.
type DataSourceError struct {
	Op         string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *DataSourceError) Error() string {
	msg := "data source " + e.Op
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataSourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataSource}
	}
	return []error{ErrDataSource, e.Err}
}

// IsNotFound reports whether err is a data source 404.
func IsNotFound(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse) && dse.StatusCode == http.StatusNotFound
}

// Failure wraps err as a DataSourceError for op.
func Failure(op string, status int, err error) error {
	return &DataSourceError{Op: op, StatusCode: status, Err: err}
}
