package domain

import (
	"errors"
	"fmt"
)

// ErrDataSource matches any DataSourceError through errors.Is.
var ErrDataSource = errors.New("data source unavailable")

// DataSourceError reports a failure to reach or query the transaction source.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrDataSource, e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

func (e *DataSourceError) Is(target error) bool { return target == ErrDataSource }
