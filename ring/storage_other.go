//go:build !linux

package ring

import "os"

func granularity() int {
	return os.Getpagesize()
}

// newStorage falls back to a plain allocation where the double mapping is
// unavailable. The second half is kept identical to the first by mirroring
// every write, so Peek stays contiguous across the wrap at the cost of one
// extra copy per Write.
func newStorage(size int) ([]byte, func() error, func(off, n int), error) {
	buf := make([]byte, 2*size)

	mirror := func(off, n int) {
		end := off + n
		if end <= size {
			copy(buf[off+size:end+size], buf[off:end])
			return
		}
		copy(buf[off+size:2*size], buf[off:size])
		copy(buf[0:end-size], buf[size:end])
	}

	release := func() error { return nil }

	return buf, release, mirror, nil
}
