// KALIBRATE - A GSM base station scanner and clock offset calibrator.
// Copyright (C) 2025 The kalibrate-hydrasdr authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package ring implements a magic ring buffer: a FIFO of fixed-size items
// whose backing memory appears twice back-to-back in virtual address space,
// so any read or write that straddles the logical boundary is contiguous.
//
// On Linux the double appearance is a real double mapping of one shared
// memory object. Elsewhere a plain allocation is used and writes are
// mirrored into both halves; the contiguity contract is identical.
package ring

import (
	"sync"

	"github.com/pkg/errors"
)

// Ring is a single-writer / single-reader FIFO over fixed-size items. All
// operations serialise on an internal mutex; a producer and consumer running
// concurrently are safe but contend on it.
type Ring struct {
	mu sync.Mutex

	// buf is a 2*mapSize window over mapSize bytes of storage: for every
	// offset b in [0, mapSize), buf[b] == buf[b+mapSize].
	buf     []byte
	mapSize int // bytes, rounded up to the mapping granularity

	// Read and write byte cursors. Both grow without bound and are
	// reduced modulo mapSize when indexing; w-r is the byte count
	// buffered and never exceeds capBytes.
	r, w uint64

	capBytes  int // FIFO bound, bufLen*itemSize
	bufLen    int // requested capacity in items
	itemSize  int
	overwrite bool

	release func() error
	mirror  func(off, n int) // nil when the two halves alias physically
}

// New returns a ring holding bufLen items of itemSize bytes. The mapped
// region is rounded up to the platform mapping granularity; the FIFO bound
// stays at the requested item count. In overwrite mode Write always
// succeeds, discarding the oldest items as needed.
func New(bufLen, itemSize int, overwrite bool) (*Ring, error) {
	if bufLen <= 0 || itemSize <= 0 {
		return nil, errors.Errorf("ring: invalid geometry %dx%d", bufLen, itemSize)
	}

	capBytes := bufLen * itemSize
	mapSize := roundToGranularity(capBytes)
	buf, release, mirror, err := newStorage(mapSize)
	if err != nil {
		return nil, errors.Wrap(err, "ring: storage")
	}

	return &Ring{
		buf:       buf,
		mapSize:   mapSize,
		capBytes:  capBytes,
		bufLen:    bufLen,
		itemSize:  itemSize,
		overwrite: overwrite,
		release:   release,
		mirror:    mirror,
	}, nil
}

// Close releases the backing storage. The ring must not be used afterwards.
func (rb *Ring) Close() error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buf = nil
	if rb.release == nil {
		return nil
	}
	return rb.release()
}

// Write appends up to len(p)/itemSize items and returns the number written.
// In non-overwrite mode it stops at the free space; in overwrite mode it
// always writes everything, advancing the read cursor over the oldest items.
func (rb *Ring) Write(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.write(p)
}

// TryWrite is Write if the internal mutex is immediately available. It
// returns false without writing when the mutex is held, so a real-time
// producer can drop the batch instead of blocking behind the consumer.
func (rb *Ring) TryWrite(p []byte) (int, bool) {
	if !rb.mu.TryLock() {
		return 0, false
	}
	defer rb.mu.Unlock()
	return rb.write(p), true
}

func (rb *Ring) write(p []byte) int {
	nb := len(p) / rb.itemSize * rb.itemSize
	accepted := nb

	if !rb.overwrite {
		if free := rb.capBytes - int(rb.w-rb.r); nb > free {
			nb = free / rb.itemSize * rb.itemSize
		}
		p = p[:nb]
		accepted = nb
	} else if nb > rb.capBytes {
		// Only the newest capBytes can survive; the rest pass
		// straight through as if written and immediately discarded.
		rb.w += uint64(nb - rb.capBytes)
		p = p[nb-rb.capBytes:]
		nb = rb.capBytes
	}

	if rb.overwrite {
		if need := nb - (rb.capBytes - int(rb.w-rb.r)); need > 0 {
			rb.r += uint64(need)
		}
	}

	off := int(rb.w % uint64(rb.mapSize))
	copy(rb.buf[off:off+nb], p[:nb])
	if rb.mirror != nil {
		rb.mirror(off, nb)
	}
	rb.w += uint64(nb)

	return accepted / rb.itemSize
}

// Read removes up to len(p)/itemSize items into p and returns the number
// read. Returns 0 when empty.
func (rb *Ring) Read(p []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	nb := len(p) / rb.itemSize * rb.itemSize
	if avail := int(rb.w - rb.r); nb > avail {
		nb = avail
	}

	off := int(rb.r % uint64(rb.mapSize))
	copy(p, rb.buf[off:off+nb])
	rb.r += uint64(nb)

	return nb / rb.itemSize
}

// Peek returns a view of everything currently buffered without removing it.
// The double mapping guarantees the view is contiguous even when the
// physical wrap falls inside it. The slice is valid only until the next
// Write, Read, Purge or Flush; callers must not interleave mutating calls
// while holding it.
func (rb *Ring) Peek() []byte {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	off := int(rb.r % uint64(rb.mapSize))
	return rb.buf[off : off+int(rb.w-rb.r)]
}

// Purge drops up to n items without copying and returns the number dropped.
func (rb *Ring) Purge(n int) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	nb := n * rb.itemSize
	if avail := int(rb.w - rb.r); nb > avail {
		nb = avail / rb.itemSize * rb.itemSize
	}
	rb.r += uint64(nb)

	return nb / rb.itemSize
}

// Flush empties the buffer.
func (rb *Ring) Flush() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.r = rb.w
}

// DataAvailable returns the number of buffered items.
func (rb *Ring) DataAvailable() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return int(rb.w-rb.r) / rb.itemSize
}

// SpaceAvailable returns the number of items that can be written without
// discarding anything.
func (rb *Ring) SpaceAvailable() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return (rb.capBytes - int(rb.w-rb.r)) / rb.itemSize
}

// Capacity returns the FIFO bound in items.
func (rb *Ring) Capacity() int {
	return rb.capBytes / rb.itemSize
}

// BufLen returns the item count the ring was constructed with.
func (rb *Ring) BufLen() int {
	return rb.bufLen
}

func roundToGranularity(n int) int {
	g := granularity()
	return (n + g - 1) / g * g
}
