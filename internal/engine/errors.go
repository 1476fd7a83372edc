package engine

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrDataUnavailable is returned when the dataset cannot be read or is not
	// in the expected shape. The dashboard cannot render without it.
	ErrDataUnavailable = errors.NewKind("dataset unavailable: %s")

	// ErrMalformedDate is returned when a dteday cell does not parse as a date.
	ErrMalformedDate = errors.NewKind("malformed date %q on row %d")

	// ErrInvalidRange is returned for unparseable or inverted date ranges.
	ErrInvalidRange = errors.NewKind("invalid date range: %s")
)
