package kernel

import (
	"testing"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/internal/testutil"
)

func TestDelayDefaults(t *testing.T) {
	k := NewDelay()
	if err := k.Init(2, 44100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if k.d.Time != 1 || k.d.Feedback != 0.5 || k.d.Cutoff != 15000 || k.d.Mix != 0.5 {
		t.Fatalf("primitive = (%v s, fb %v, %v Hz, mix %v), want (1, 0.5, 15000, 0.5)",
			k.d.Time, k.d.Feedback, k.d.Cutoff, k.d.Mix)
	}

	k.SetParameter(DelayTimeAddress, 5)
	if got := k.Parameter(DelayTimeAddress); got != 2 {
		t.Fatalf("Parameter(time) = %v after SetParameter(5), want 2", got)
	}
}

func TestDelayEchoes(t *testing.T) {
	k := NewDelay()
	if err := k.Init(1, 1000); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	k.SetParameter(DelayTimeAddress, 0.125)
	k.SetParameter(DelayLowPassCutoffAddress, 22050)
	k.SetParameter(DelayDryWetMixAddress, 1)
	k.Start()

	in := buffer.List{buffer.FromSlice(testutil.Impulse(300, 0))}
	out := buffer.NewList(1, 300)
	k.Process(in, out, 300, 0)

	want := map[int]float32{125: 1, 250: 0.5}
	for i, y := range out.Channel(0) {
		if y != want[i] {
			t.Fatalf("out[%d] = %v, want %v", i, y, want[i])
		}
	}
}

func TestDelayTimeRampGlides(t *testing.T) {
	k := NewDelay()
	if err := k.Init(2, 48000); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	k.Start()
	k.StartRamp(DelayTimeAddress, 0.5, 960)

	in := noiseList(2, 480)
	out := buffer.NewList(2, 480)
	k.Process(in, out, 480, 0)

	if got := k.d.Time; got < 0.74 || got > 0.76 {
		t.Fatalf("time halfway = %v, want 0.75", got)
	}

	k.Process(in, out, 480, 0)

	if k.d.Time != 0.5 {
		t.Fatalf("time after ramp = %v, want 0.5", k.d.Time)
	}

	for c := range out {
		testutil.RequireFinite(t, out.Channel(c))
	}
}

func TestDelayDestroy(t *testing.T) {
	k := NewDelay()
	if err := k.Init(1, 44100); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	k.Destroy()

	if k.d != nil || k.State() != StateDestroyed {
		t.Fatal("primitive kept after Destroy")
	}

	k.Reset()
}
