package device

import (
	"github.com/mastercactapus/gplot/gcode"
)

// Command is a request to the Engine.
type Command interface {
	// Name identifies the command in Ok and Err responses.
	Name() string
}

// Connect opens a transport to URI and waits for the device to report ready.
type Connect struct{ URI string }

// Disconnect closes an idle connection.
type Disconnect struct{}

// LoadProgram stores a program to be streamed by Run.
type LoadProgram struct{ Program gcode.Program }

// Run starts the loaded program, or resumes a paused one.
type Run struct{}

// Stop pauses a running program at its current position.
type Stop struct{}

// Reset aborts everything and drops the connection.
type Reset struct{}

// SendLine sends a single line outside of a program and waits for its ack.
type SendLine struct{ Line string }

// Shutdown stops the worker permanently.
type Shutdown struct{}

// Ping asks for an Ok and a StateChanged with the current state.
type Ping struct{}

func (Connect) Name() string     { return "connect" }
func (Disconnect) Name() string  { return "disconnect" }
func (LoadProgram) Name() string { return "program" }
func (Run) Name() string         { return "run" }
func (Stop) Name() string        { return "stop" }
func (Reset) Name() string       { return "reset" }
func (SendLine) Name() string    { return "command" }
func (Shutdown) Name() string    { return "shutdown" }
func (Ping) Name() string        { return "ping" }

// Response is published by the Engine: Ok, Err, Loaded or StateChanged.
type Response interface {
	isResponse()
}

type Ok struct{ Cmd, Msg string }

// Err reports a failed or rejected command.
type Err struct{ Cmd, Msg string }

// Loaded acknowledges LoadProgram with a summary of the program.
type Loaded struct{ Msg string }

// StateChanged is sent after every state change.
type StateChanged struct{ State State }

func (Ok) isResponse()           {}
func (Err) isResponse()          {}
func (Loaded) isResponse()       {}
func (StateChanged) isResponse() {}
