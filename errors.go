package zxingraster

import "errors"

var (
	// ErrConfiguration is returned for option combinations that cannot be
	// rendered: a bad angle, colour or scale, dotty mode on a symbology that
	// does not support it, or an unsupported stack or composite.
	ErrConfiguration = errors.New("configuration error")

	// ErrGeometryOverflow is returned when the options would produce an
	// unreasonably large bitmap.
	ErrGeometryOverflow = errors.New("geometry overflow")
)
