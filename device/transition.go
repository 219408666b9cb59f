package device

import (
	"fmt"

	"github.com/mastercactapus/gplot/gcode"
)

// action is the I/O the worker performs after a transition.
type action int

const (
	actNone action = iota

	// actOpen dials Connecting.URI and waits for the device handshake.
	actOpen

	// actClose drops the transport.
	actClose

	// actAbort drops the transport and forgets the loaded program.
	actAbort

	// actStore keeps the LoadProgram program.
	actStore

	// actSend writes SendLine.Line and waits for its ack.
	actSend

	// actReport publishes the current state after the response.
	actReport
)

// transition computes the effect of c in state s without doing any I/O.
// loaded reports whether a program is stored, total is its length.
func transition(s State, c Command, loaded bool, total int) (State, Response, action) {
	// rejected commands leave s unchanged and report it.
	reject := func(msg string) (State, Response, action) {
		return s, Err{Cmd: c.Name(), Msg: msg}, actReport
	}

	switch c := c.(type) {
	case Connect:
		switch s.(type) {
		case Disconnected, Failed:
			return Connecting{URI: c.URI}, nil, actOpen
		}
		return reject("cannot connect while " + s.String())
	case Disconnect:
		if _, ok := s.(Ready); !ok {
			return reject("cannot disconnect while " + s.String())
		}
		return Disconnected{}, Ok{Cmd: c.Name()}, actClose
	case LoadProgram:
		switch s.(type) {
		case Running, Paused:
			return reject("cannot load a program while " + s.String())
		}
		return s, Loaded{Msg: gcode.Summarize(c.Program).String()}, actStore
	case Run:
		switch s := s.(type) {
		case Ready:
			if !loaded {
				return reject(ErrNoProgram.Error())
			}
			return Running{Total: total}, Ok{Cmd: c.Name(), Msg: "started"}, actNone
		case Paused:
			return Running(s), Ok{Cmd: c.Name(), Msg: fmt.Sprintf("resumed at line %d", s.Cursor)}, actNone
		}
		return reject("cannot run while " + s.String())
	case Stop:
		r, ok := s.(Running)
		if !ok {
			return reject("not running")
		}
		return Paused(r), Ok{Cmd: c.Name(), Msg: fmt.Sprintf("paused at line %d", r.Cursor)}, actNone
	case Reset:
		return Disconnected{}, Ok{Cmd: c.Name()}, actAbort
	case SendLine:
		if _, ok := s.(Ready); !ok {
			return reject("cannot send while " + s.String())
		}
		return Busy{}, nil, actSend
	case Shutdown:
		return Terminating{}, Ok{Cmd: c.Name()}, actNone
	case Ping:
		return s, Ok{Cmd: c.Name(), Msg: "pong"}, actReport
	}

	return reject("unknown command")
}
