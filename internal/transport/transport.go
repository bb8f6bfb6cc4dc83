// Package transport wraps gitlab.com/gomidi/midi/v2 for the launcher's two
// physical I/O needs: listening to an external MIDI clock/CC stream, and
// sending NoteOn/NoteOff bytes to an output port.
package transport

import (
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/jsee/linelauncher/internal/midibus"
)

// ListOutPorts returns the names of available MIDI output ports.
func ListOutPorts() []string {
	var names []string
	for _, out := range midi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// ListInPorts returns the names of available MIDI input ports.
func ListInPorts() []string {
	var names []string
	for _, in := range midi.GetInPorts() {
		names = append(names, in.String())
	}
	return names
}

// Out is an open MIDI output connection.
type Out struct {
	port drivers.Out
	send func(midi.Message) error
}

// OpenOut opens the named output port, or the first available port if name
// is empty.
func OpenOut(name string) (*Out, error) {
	port, err := findOutPort(name)
	if err != nil {
		return nil, err
	}
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("transport: opening output port %q: %w", port.String(), err)
	}
	return &Out{port: port, send: send}, nil
}

func findOutPort(name string) (drivers.Out, error) {
	if name == "" {
		out, err := midi.OutPort(0)
		if err != nil {
			return nil, fmt.Errorf("transport: no MIDI output ports available: %w", err)
		}
		return out, nil
	}
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("transport: output port %q not found: %w", name, err)
	}
	return out, nil
}

// NoteOn sends a NoteOn message on the given channel.
func (o *Out) NoteOn(channel, pitch, velocity uint8) error {
	return o.send(midi.NoteOn(channel, pitch, velocity))
}

// NoteOff sends a NoteOff message on the given channel.
func (o *Out) NoteOff(channel, pitch, velocity uint8) error {
	return o.send(midi.NoteOff(channel, pitch, velocity))
}

// Close releases the underlying output port.
func (o *Out) Close() error {
	return o.port.Close()
}

// In is an open MIDI input connection feeding a midibus.Bus.
type In struct {
	port   drivers.In
	stopFn func()
}

// OpenIn opens the named input port, or the first available port if name is
// empty, and begins publishing decoded TimingClock/ControlChange messages
// to bus. The returned In must be closed to stop listening.
func OpenIn(name string, bus *midibus.Bus) (*In, error) {
	port, err := findInPort(name)
	if err != nil {
		return nil, err
	}
	stopFn, err := midi.ListenTo(port, func(msg midi.Message, _ int32) {
		publishDecoded(bus, msg)
	})
	if err != nil {
		return nil, fmt.Errorf("transport: listening on input port %q: %w", port.String(), err)
	}
	return &In{port: port, stopFn: stopFn}, nil
}

func findInPort(name string) (drivers.In, error) {
	if name == "" {
		in, err := midi.InPort(0)
		if err != nil {
			return nil, fmt.Errorf("transport: no MIDI input ports available: %w", err)
		}
		return in, nil
	}
	in, err := midi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("transport: input port %q not found: %w", name, err)
	}
	return in, nil
}

// publishDecoded decodes a raw gomidi message into a midibus.Message and
// publishes it. Messages other than TimingClock/ControlChange are not part
// of the line launcher's domain and are dropped here.
func publishDecoded(bus *midibus.Bus, msg midi.Message) {
	now := time.Now()

	if msg.Is(midi.TimingClockMsg) {
		bus.Publish(midibus.NewTimingClock(now))
		return
	}

	var channel, controller, value uint8
	if msg.GetControlChange(&channel, &controller, &value) {
		bus.Publish(midibus.NewControlChange(now, channel, controller, value))
	}
}

// Close stops listening on the input port.
func (i *In) Close() error {
	if i.stopFn != nil {
		i.stopFn()
	}
	return i.port.Close()
}
