package observability

import "go.uber.org/zap"

// Field constructors re-exported so callers do not import zap directly.
//
//nolint:gochecknoglobals // function aliases
var (
	String   = zap.String
	Int      = zap.Int
	Int64    = zap.Int64
	Bool     = zap.Bool
	Float64  = zap.Float64
	Duration = zap.Duration
	Error    = zap.Error
)
