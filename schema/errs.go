package schema

import "errors"

var (
	ErrUnknownSchema = errors.New("unknown schema")
	ErrRange         = errors.New("value out of range")
	ErrResolve       = errors.New("cannot resolve value")
)
