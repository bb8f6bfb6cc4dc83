package midibus

import "time"

// Kind names the MIDI message types the launcher cares about. Every other
// inbound message type is parsed away by the transport layer before it
// reaches the bus.
type Kind int

const (
	KindTimingClock Kind = iota
	KindControlChange
)

// Message is a timestamped, decoded MIDI message as broadcast on the bus.
// Channel is 0-indexed per gomidi/v2 convention.
type Message struct {
	Timestamp     time.Time
	Kind          Kind
	Channel       uint8
	ControlChange uint8 // function number, valid when Kind == KindControlChange
	Value         uint8 // 0..127, valid when Kind == KindControlChange
}

// NewTimingClock builds a TimingClock message.
func NewTimingClock(ts time.Time) Message {
	return Message{Timestamp: ts, Kind: KindTimingClock}
}

// NewControlChange builds a ControlChange message.
func NewControlChange(ts time.Time, channel, function, value uint8) Message {
	return Message{Timestamp: ts, Kind: KindControlChange, Channel: channel, ControlChange: function, Value: value}
}
