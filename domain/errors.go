package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSiteFilter is returned by queries for a selector value that is neither
	// AllSites nor a site present in the dataset.
	ErrInvalidSiteFilter = errors.New("invalid site filter")
	// ErrInvalidPayloadRange is returned for a range with a negative or non-finite bound, or low > high.
	ErrInvalidPayloadRange = errors.New("invalid payload range")

	// ErrMissingColumn is wrapped by DataLoadError when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedRecord is wrapped by DataLoadError when a row cannot be converted to a LaunchRecord.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrEmptyDataset is wrapped by DataLoadError when no usable rows were read.
	ErrEmptyDataset = errors.New("dataset has no records")
	// ErrUnsupportedSource is wrapped by DataLoadError when the source is neither delimited text nor a snapshot.
	ErrUnsupportedSource = errors.New("unsupported dataset source")
)

// DataLoadError reports a dataset that could not be loaded. It is fatal: nothing should
// be served without a dataset.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading dataset %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
