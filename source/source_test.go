package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F5OEO/kalibrate-hydrasdr/dsp"
)

// constFill writes a DC chunk and stops after n chunks.
func constFill(n int, i, q int16) func([]int16) bool {
	count := 0
	return func(chunk []int16) bool {
		if count >= n {
			return false
		}
		count++
		for k := 0; k < len(chunk); k += 2 {
			chunk[k] = i
			chunk[k+1] = q
		}
		return true
	}
}

func TestFillDelivers(t *testing.T) {
	const chunkSamples = 8192

	drv := NewSim(chunkSamples, constFill(50, 1024, 0))
	src := New(40, drv)
	require.NoError(t, src.Open())
	defer src.Close()

	ctx := context.Background()
	const want = 10000

	_, err := src.Fill(ctx, want)
	require.NoError(t, err)
	require.GreaterOrEqual(t, src.Buffer().DataAvailable(), want)

	buf := make([]byte, want*8)
	n := src.Buffer().Read(buf)
	require.Equal(t, want, n)

	samples := Complexes(buf)
	require.Len(t, samples, want)

	// 1024/2048 = 0.5 DC after the filter transient settles.
	for _, s := range samples[2000:] {
		assert.InDelta(t, 0.5, real(s), 1e-3)
		assert.InDelta(t, 0.0, imag(s), 1e-3)
	}
}

func TestFillOrderPreserved(t *testing.T) {
	// A slow ramp survives the pipeline monotonically; any reordering in
	// the worker/ring handoff would show up as a jump.
	const chunkSamples = 4096
	level := int16(0)
	drv := NewSim(chunkSamples, func(chunk []int16) bool {
		if level >= 2000 {
			return false
		}
		level++
		for k := 0; k < len(chunk); k += 2 {
			chunk[k] = level
			chunk[k+1] = 0
		}
		return true
	})

	src := New(40, drv)
	require.NoError(t, src.Open())
	defer src.Close()

	_, err := src.Fill(context.Background(), 100000)
	require.NoError(t, err)

	buf := make([]byte, 100000*8)
	n := src.Buffer().Read(buf)
	samples := Complexes(buf[:n*8])

	last := float32(-1)
	for _, s := range samples[2000:] {
		v := real(s)
		require.GreaterOrEqual(t, v, last-1e-3)
		if v > last {
			last = v
		}
	}
}

// A consumer that never drains: everything the resampler produces beyond
// the ring capacity must land in the overflow account, and the buffer must
// stay internally consistent.
func TestBackPressureAccounting(t *testing.T) {
	const chunkSamples = 8192
	const chunks = 40

	// Count what the pipeline will produce from the same input.
	ref := dsp.NewResampler()
	refIn := make([]complex64, chunkSamples)
	for i := range refIn {
		refIn[i] = complex(float32(100)/2048, 0)
	}
	refOut := make([]complex64, chunkSamples)
	producedTotal := 0
	for i := 0; i < chunks; i++ {
		producedTotal += ref.Process(refIn, refOut)
	}

	drv := NewSim(chunkSamples, constFill(chunks, 100, 0))
	src := New(40, drv)
	require.NoError(t, src.open(512))
	defer src.Close()

	require.NoError(t, src.Start())

	// Wait for the worker to exhaust the driver.
	deadline := time.Now().Add(5 * time.Second)
	for src.streaming.Load() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.False(t, src.streaming.Load(), "worker did not finish")

	avail := src.Buffer().DataAvailable()
	overruns := src.Overruns()

	assert.Equal(t, producedTotal, avail+int(overruns))
	assert.Equal(t, 512, avail)

	// The buffered prefix is still readable and sane.
	buf := make([]byte, avail*8)
	assert.Equal(t, avail, src.Buffer().Read(buf))
}

func TestFillReturnsOnShutdown(t *testing.T) {
	drv := NewSim(4096, constFill(0, 0, 0)) // immediate EOF
	src := New(40, drv)
	require.NoError(t, src.Open())
	defer src.Close()

	_, err := src.Fill(context.Background(), 1000000)
	assert.ErrorIs(t, err, ErrStopped)
}

func TestFillReturnsOnCancel(t *testing.T) {
	// A driver that produces slowly forever.
	drv := NewSim(256, func(chunk []int16) bool {
		time.Sleep(5 * time.Millisecond)
		for k := range chunk {
			chunk[k] = 0
		}
		return true
	})

	src := New(40, drv)
	require.NoError(t, src.Open())
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := src.Fill(ctx, 1<<30)
	assert.ErrorIs(t, err, ErrStopped)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestStopIdempotent(t *testing.T) {
	drv := NewSim(4096, constFill(5, 0, 0))
	src := New(40, drv)
	require.NoError(t, src.Open())

	require.NoError(t, src.Start())
	src.Stop()
	src.Stop()
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
}

func TestTuneTracksFrequency(t *testing.T) {
	drv := NewSim(4096, constFill(5, 0, 0))
	src := New(40, drv)
	require.NoError(t, src.Open())
	defer src.Close()

	require.NoError(t, src.Tune(935.2e6))
	assert.Equal(t, 935.2e6, src.CenterFreq())
	assert.Equal(t, 935.2e6, drv.CenterFreq())
}

func TestComplexByteRoundTrip(t *testing.T) {
	in := []complex64{1 + 2i, -0.5 + 0.25i, 3}
	out := Complexes(complexBytes(in))
	require.Equal(t, in, out)
}

func TestSampleRate(t *testing.T) {
	src := New(40, NewSim(16, constFill(0, 0, 0)))
	assert.InDelta(t, 270833.333, src.SampleRate(), 1e-3)
}
