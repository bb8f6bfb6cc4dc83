package midibus

import "context"

// SliderListener filters a Bus subscription down to the ControlChange
// messages matching one (channel, controlChange) binding, emitting the
// normalized value in [0.0, 1.0]. It holds no state beyond the
// subscription and is safe to start and stop repeatedly.
type SliderListener struct {
	channel       uint8
	controlChange uint8
}

// NewSliderListener returns a listener bound to one MIDI controller.
func NewSliderListener(channel, controlChange uint8) *SliderListener {
	return &SliderListener{channel: channel, controlChange: controlChange}
}

// Listen subscribes to bus and runs until ctx is cancelled, sending
// normalized ratios to out for every matching ControlChange. Non-matching
// messages are silently dropped. The caller owns out and must drain it.
func (l *SliderListener) Listen(ctx context.Context, bus *Bus, out chan<- float64) {
	in := bus.Subscribe()
	defer bus.Unsubscribe(in)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			ratio, matched := l.ratio(msg)
			if !matched {
				continue
			}
			select {
			case out <- ratio:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (l *SliderListener) ratio(msg Message) (float64, bool) {
	if msg.Kind != KindControlChange {
		return 0, false
	}
	if msg.Channel != l.channel || msg.ControlChange != l.controlChange {
		return 0, false
	}
	return float64(msg.Value) / 127.0, true
}
