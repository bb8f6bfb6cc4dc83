package midibus

import (
	"testing"
	"time"
)

func TestBusDeliversInSendOrder(t *testing.T) {
	b := NewBus(nil)
	reader := b.Subscribe()

	b.Publish(NewControlChange(time.Now(), 0, 1, 10))
	b.Publish(NewControlChange(time.Now(), 0, 1, 20))
	b.Publish(NewControlChange(time.Now(), 0, 1, 30))

	for _, want := range []uint8{10, 20, 30} {
		select {
		case msg := <-reader:
			if msg.Value != want {
				t.Fatalf("got value %d, want %d", msg.Value, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for message")
		}
	}
}

func TestBusFanOutToMultipleReaders(t *testing.T) {
	b := NewBus(nil)
	r1 := b.Subscribe()
	r2 := b.Subscribe()

	b.Publish(NewTimingClock(time.Now()))

	for _, r := range []<-chan Message{r1, r2} {
		select {
		case <-r:
		case <-time.After(time.Second):
			t.Fatal("reader did not receive broadcast message")
		}
	}
}

func TestBusPublishNeverBlocksOnLaggingReader(t *testing.T) {
	b := NewBus(nil)
	_ = b.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < DefaultReaderCapacity*2; i++ {
			b.Publish(NewTimingClock(time.Now()))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a lagging reader")
	}
}

func TestBusUnsubscribeClosesReader(t *testing.T) {
	b := NewBus(nil)
	reader := b.Subscribe()
	b.Unsubscribe(reader)

	select {
	case _, ok := <-reader:
		if ok {
			t.Fatal("expected reader channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for closed channel to read as closed")
	}
}
