package device

import (
	"fmt"
)

// State is the protocol state of an Engine. It is one of Disconnected,
// Connecting, Ready, Running, Paused, Busy, Failed, Terminating or Dead.
//
// States are immutable values; observers receive them through StateChanged.
type State interface {
	isState()
	String() string
}

type Disconnected struct{}

type Connecting struct{ URI string }

type Ready struct{}

// Running is streaming a program. Cursor is the index of the next line to
// send and Outstanding the number of sent lines not yet acknowledged.
type Running struct{ Cursor, Total, Outstanding int }

// Paused is a stopped run that can be resumed from Cursor.
type Paused struct{ Cursor, Total, Outstanding int }

// Busy is executing a single immediate command.
type Busy struct{}

// Failed is transient and becomes Disconnected on the next tick.
type Failed struct{ Reason string }

type Terminating struct{}

// Dead is final; the worker has exited.
type Dead struct{}

func (Disconnected) isState() {}
func (Connecting) isState()   {}
func (Ready) isState()        {}
func (Running) isState()      {}
func (Paused) isState()       {}
func (Busy) isState()         {}
func (Failed) isState()       {}
func (Terminating) isState()  {}
func (Dead) isState()         {}

func (Disconnected) String() string { return "disconnected" }
func (s Connecting) String() string { return "connecting(" + s.URI + ")" }
func (Ready) String() string        { return "ready" }
func (Busy) String() string         { return "busy" }
func (s Failed) String() string     { return "failed(" + s.Reason + ")" }
func (Terminating) String() string  { return "terminating" }
func (Dead) String() string         { return "dead" }

func (s Running) String() string {
	return fmt.Sprintf("running(%d/%d, %d unacked)", s.Cursor, s.Total, s.Outstanding)
}

func (s Paused) String() string {
	return fmt.Sprintf("paused(%d/%d, %d unacked)", s.Cursor, s.Total, s.Outstanding)
}

func (s Running) done() bool { return s.Cursor == s.Total && s.Outstanding == 0 }

// Snapshot is a flat, JSON friendly view of a State.
type Snapshot struct {
	State       string `json:"state"`
	URI         string `json:"uri,omitempty"`
	Cursor      int    `json:"cursor"`
	Total       int    `json:"total"`
	Outstanding int    `json:"outstanding"`
	Reason      string `json:"reason,omitempty"`
}

// Describe flattens s into a Snapshot.
func Describe(s State) Snapshot {
	switch s := s.(type) {
	case Disconnected:
		return Snapshot{State: "disconnected"}
	case Connecting:
		return Snapshot{State: "connecting", URI: s.URI}
	case Ready:
		return Snapshot{State: "ready"}
	case Running:
		return Snapshot{State: "running", Cursor: s.Cursor, Total: s.Total, Outstanding: s.Outstanding}
	case Paused:
		return Snapshot{State: "paused", Cursor: s.Cursor, Total: s.Total, Outstanding: s.Outstanding}
	case Busy:
		return Snapshot{State: "busy"}
	case Failed:
		return Snapshot{State: "failed", Reason: s.Reason}
	case Terminating:
		return Snapshot{State: "terminating"}
	case Dead:
		return Snapshot{State: "dead"}
	}
	return Snapshot{State: "unknown"}
}
