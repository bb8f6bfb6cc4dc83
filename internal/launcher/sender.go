package launcher

import (
	"sync"

	"go.uber.org/zap"
)

// midiChannel and fireVelocity are fixed: every fired NoteOn/NoteOff uses
// channel 1, 0-indexed as channel 0 here, at a fixed velocity of 100.
const (
	midiChannel  uint8 = 0
	fireVelocity uint8 = 100
)

// NoteSink is the minimal output surface MidiMessageSender needs; satisfied
// by *transport.Out, and trivially fakeable in tests.
type NoteSink interface {
	NoteOn(channel, pitch, velocity uint8) error
	NoteOff(channel, pitch, velocity uint8) error
}

// MidiMessageSender serializes emission of NoteOn/NoteOff bytes to a
// NoteSink. It is shared by every firing path (synchronous stacked-note
// prevention, scheduled fires) behind a mutex, matching the original
// Arc<Mutex<MidiOutputConnection>> ownership model.
type MidiMessageSender struct {
	mu   sync.Mutex
	sink NoteSink
	log  *zap.Logger
}

// NewMidiMessageSender wraps sink for thread-safe firing.
func NewMidiMessageSender(sink NoteSink, log *zap.Logger) *MidiMessageSender {
	if log == nil {
		log = zap.NewNop()
	}
	return &MidiMessageSender{sink: sink, log: log}
}

// FireNoteOn sends a NoteOn for pitch. A transport send failure is logged
// at error level and the event dropped; state is not rolled back.
func (s *MidiMessageSender) FireNoteOn(pitch uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sink.NoteOn(midiChannel, pitch, fireVelocity); err != nil {
		s.log.Error("transport send failure", zap.String("event", "note_on"), zap.Uint8("pitch", pitch), zap.Error(err))
	}
}

// FireNoteOff sends a NoteOff for pitch, with the same failure handling as
// FireNoteOn.
func (s *MidiMessageSender) FireNoteOff(pitch uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sink.NoteOff(midiChannel, pitch, fireVelocity); err != nil {
		s.log.Error("transport send failure", zap.String("event", "note_off"), zap.Uint8("pitch", pitch), zap.Error(err))
	}
}
