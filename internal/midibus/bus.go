package midibus

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultReaderCapacity is the suggested per-reader channel depth: a
// lagging reader may miss messages, but the writer must never block on it.
const DefaultReaderCapacity = 100

// Bus is a one-writer, many-reader broadcast of inbound MIDI messages.
// Every reader is registered via Subscribe before the writer starts
// calling Publish; messages are delivered in send order per reader, and a
// message is dropped for a lagging reader rather than stalling the writer.
type Bus struct {
	mu      sync.RWMutex
	readers map[chan Message]struct{}
	log     *zap.Logger
}

// NewBus constructs an empty Bus.
func NewBus(log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{readers: make(map[chan Message]struct{}), log: log}
}

// Subscribe registers a new reader and returns its receive-only channel.
// Unsubscribe must be called when the reader is done to release it.
func (b *Bus) Subscribe() <-chan Message {
	ch := make(chan Message, DefaultReaderCapacity)
	b.mu.Lock()
	b.readers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a reader previously returned by Subscribe.
func (b *Bus) Unsubscribe(ch <-chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for reader := range b.readers {
		if reader == ch {
			delete(b.readers, reader)
			close(reader)
			return
		}
	}
}

// Publish fans msg out to every subscribed reader. A reader whose buffer is
// full is skipped rather than blocking the writer.
func (b *Bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for reader := range b.readers {
		select {
		case reader <- msg:
		default:
			b.log.Warn("midibus: reader lagging, dropped message")
		}
	}
}
