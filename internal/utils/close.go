package utils

import (
	"io"
)

// DrainClose discards what is left of a response body before closing it, so
// the connection can be reused.
func DrainClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	_ = rc.Close()
}
