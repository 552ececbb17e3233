package token

import "errors"

var (
	ErrUnterminated = errors.New("unterminated")
	ErrBadUTF8      = errors.New("bad utf8")
	ErrBadUnicode   = errors.New("bad unicode escape")
)
