package encode

import "errors"

var (
	ErrEncoding        = errors.New("encoding error")
	ErrBadIndent       = errors.New("indent must be a positive integer")
	ErrNotAPair        = errors.New("map items may only contain pairs")
	ErrSimpleKey       = errors.New("with simple keys, the key must not be complex")
	ErrAliasOrder      = errors.New("alias emitted before its anchor")
	ErrUnrepresentable = errors.New("cannot represent value")
)
