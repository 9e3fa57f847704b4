package ring

import (
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func granularity() int {
	return os.Getpagesize()
}

// newStorage maps size bytes of anonymous shared memory twice, back to
// back, into one reserved 2*size virtual range. Writes through either half
// are visible in the other, so the ring never has to split a copy at the
// wrap. The returned mirror func is nil: the halves alias physically.
//
// unix.Mmap cannot place a mapping at a chosen address, so the two fixed
// mappings go through the raw mmap syscall; MAP_FIXED atomically replaces
// the reserved pages under each half.
func newStorage(size int) ([]byte, func() error, func(off, n int), error) {
	fd, err := unix.MemfdCreate("kal-ring", unix.MFD_CLOEXEC)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "memfd_create")
	}
	defer unix.Close(fd)

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		return nil, nil, nil, errors.Wrap(err, "ftruncate")
	}

	// Reserve the double-length range first so both halves land
	// adjacently without racing other allocations.
	region, err := unix.Mmap(-1, 0, 2*size,
		unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reserve")
	}

	base := uintptr(unsafe.Pointer(&region[0]))
	prot := uintptr(unix.PROT_READ | unix.PROT_WRITE)
	flags := uintptr(unix.MAP_SHARED | unix.MAP_FIXED)

	for _, off := range []int{0, size} {
		addr := base + uintptr(off)
		p, _, errno := unix.Syscall6(unix.SYS_MMAP,
			addr, uintptr(size), prot, flags, uintptr(fd), 0)
		if errno != 0 {
			unix.Munmap(region)
			return nil, nil, nil, errors.Wrapf(errno, "map half at +%d", off)
		}
		if p != addr {
			unix.Munmap(region)
			return nil, nil, nil, errors.Errorf("fixed mapping moved: %#x != %#x", p, addr)
		}
	}

	release := func() error {
		return unix.Munmap(region)
	}

	return region, release, nil, nil
}
