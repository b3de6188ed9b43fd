package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestConvolutionSetupValidation(t *testing.T) {
	k := NewConvolution()

	if got := k.PartitionLength(); got != DefaultPartitionLength {
		t.Fatalf("PartitionLength() = %d, want %d", got, DefaultPartitionLength)
	}

	for _, n := range []int{0, -4, 3, 100} {
		if err := k.SetPartitionLength(n); !errors.Is(err, ErrInvalidPartitionLength) {
			t.Fatalf("SetPartitionLength(%d) error = %v, want %v", n, err, ErrInvalidPartitionLength)
		}
	}

	if err := k.SetUpTable(nil); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("SetUpTable(nil) error = %v, want %v", err, ErrEmptyTable)
	}

	if len(k.Parameters()) != 0 {
		t.Fatalf("Parameters() = %v, want none", k.Parameters())
	}
}

func TestConvolutionStartNeedsTable(t *testing.T) {
	k := NewConvolution()
	if err := k.Init(2, 44100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	k.Start()
	if k.IsStarted() {
		t.Fatal("Start without table started the kernel")
	}

	if err := k.SetUpTable([]float32{1, 0.5}); err != nil {
		t.Fatalf("SetUpTable() error = %v", err)
	}

	k.Start()
	if !k.IsStarted() {
		t.Fatal("Start with table did not start the kernel")
	}

	if err := k.SetUpTable([]float32{1}); !errors.Is(err, ErrRunning) {
		t.Fatalf("SetUpTable while started error = %v, want %v", err, ErrRunning)
	}

	if err := k.SetPartitionLength(64); !errors.Is(err, ErrRunning) {
		t.Fatalf("SetPartitionLength while started error = %v, want %v", err, ErrRunning)
	}

	k.Stop()

	if err := k.SetPartitionLength(64); err != nil {
		t.Fatalf("SetPartitionLength while stopped error = %v", err)
	}

	k.Destroy()

	if err := k.SetUpTable([]float32{1}); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("SetUpTable after Destroy error = %v, want %v", err, ErrDestroyed)
	}
}

func TestConvolutionImpulseLatency(t *testing.T) {
	const part = 64

	k := NewConvolution()
	if err := k.SetPartitionLength(part); err != nil {
		t.Fatalf("SetPartitionLength() error = %v", err)
	}

	table := []float32{0, 0, 0.5, 0.25}
	if err := k.SetUpTable(table); err != nil {
		t.Fatalf("SetUpTable() error = %v", err)
	}

	if err := k.Init(2, 48000); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	k.Start()

	if got := k.Latency(); got != part {
		t.Fatalf("Latency() = %d, want %d", got, part)
	}

	in := buffer.List{
		buffer.FromSlice(testutil.Impulse(4*part, 0)),
		buffer.FromSlice(testutil.Impulse(4*part, 10)),
	}
	out := buffer.NewList(2, 4*part)
	k.Process(in, out, 4*part, 0)

	for c, at := range []int{0, 10} {
		want := make([]float32, 4*part)
		for i, v := range table {
			want[part+at+i] = v
		}

		testutil.RequireSliceNearlyEqual(t, out.Channel(c), want, 1e-6)
	}
}

func TestConvolutionMatchesDirect(t *testing.T) {
	const part = 32

	table := testutil.DeterministicNoise(7, 0.2, 150)
	x := testutil.DeterministicNoise(8, 0.5, 400)

	k := NewConvolution()
	if err := k.SetPartitionLength(part); err != nil {
		t.Fatalf("SetPartitionLength() error = %v", err)
	}

	if err := k.Init(1, 44100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if err := k.SetUpTable(table); err != nil {
		t.Fatalf("SetUpTable() error = %v", err)
	}

	k.Start()

	out := buffer.NewList(1, len(x))
	// Uneven block sizes exercise the streaming state across calls.
	for offset, block := 0, 37; offset < len(x); offset += block {
		k.Process(buffer.List{buffer.FromSlice(x)}, out, min(block, len(x)-offset), offset)
	}

	y := out.Channel(0)
	for n := part; n < len(x); n++ {
		var want float64
		for i, h := range table {
			if j := n - part - i; j >= 0 {
				want += float64(h) * float64(x[j])
			}
		}

		if math.Abs(float64(y[n])-want) > 1e-5 {
			t.Fatalf("y[%d] = %v, want %v", n, y[n], want)
		}
	}
}

func TestConvolutionReset(t *testing.T) {
	k := NewConvolution()
	if err := k.SetPartitionLength(16); err != nil {
		t.Fatalf("SetPartitionLength() error = %v", err)
	}

	if err := k.SetUpTable(testutil.Ones(40)); err != nil {
		t.Fatalf("SetUpTable() error = %v", err)
	}

	if err := k.Init(1, 44100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	k.Start()
	k.Process(noiseList(1, 100), buffer.NewList(1, 100), 100, 0)
	k.Reset()

	out := buffer.NewList(1, 100)
	k.Process(buffer.NewList(1, 100), out, 100, 0)

	for i, v := range out.Channel(0) {
		if v != 0 {
			t.Fatalf("out[%d] = %v after Reset, want 0", i, v)
		}
	}
}
