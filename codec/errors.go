package codec

import "errors"

var (
	ErrDecode = errors.New("decode error")
	ErrEncode = errors.New("encode error")
	ErrPatch  = errors.New("patch error")
)
