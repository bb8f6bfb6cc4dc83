package midibus

import (
	"context"
	"testing"
	"time"
)

func TestSliderListenerNormalizesMatchingControlChange(t *testing.T) {
	b := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan float64, 4)
	l := NewSliderListener(2, 7)
	go l.Listen(ctx, b, out)

	time.Sleep(20 * time.Millisecond) // let Listen subscribe
	b.Publish(NewControlChange(time.Now(), 2, 7, 0))
	b.Publish(NewControlChange(time.Now(), 2, 7, 127))

	for _, want := range []float64{0.0, 1.0} {
		select {
		case got := <-out:
			if got != want {
				t.Fatalf("ratio = %v, want %v", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for ratio")
		}
	}
}

func TestSliderListenerDropsNonMatchingMessages(t *testing.T) {
	b := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan float64, 4)
	l := NewSliderListener(2, 7)
	go l.Listen(ctx, b, out)

	time.Sleep(20 * time.Millisecond)
	b.Publish(NewControlChange(time.Now(), 3, 7, 64))  // wrong channel
	b.Publish(NewControlChange(time.Now(), 2, 9, 64))  // wrong function
	b.Publish(NewTimingClock(time.Now()))               // wrong kind
	b.Publish(NewControlChange(time.Now(), 2, 7, 64))  // matches

	select {
	case got := <-out:
		want := float64(64) / 127.0
		if got != want {
			t.Fatalf("ratio = %v, want %v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the one matching ratio")
	}

	select {
	case got := <-out:
		t.Fatalf("unexpected second value %v; non-matching messages should be dropped", got)
	case <-time.After(50 * time.Millisecond):
	}
}
