package fixedalloc

import "errors"

var (
	ErrNoSpace      = errors.New("memory no space")
	ErrClosed       = errors.New("allocator closed")
	ErrSizeOverflow = errors.New("size overflow")
)
