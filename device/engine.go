// Package device streams programs to a plotter with ack based flow control.
package device

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mastercactapus/gplot/gcode"
	"github.com/mastercactapus/gplot/transport"
)

const (
	// DefaultWindowCap is the number of unacknowledged lines allowed in
	// flight while streaming.
	DefaultWindowCap = 5

	DefaultIdleInterval = 10 * time.Millisecond

	// maxChatter bounds the non-ack lines read while waiting for a single ack.
	maxChatter = 100
)

var errNoTransport = errors.New("no transport")

type Config struct {
	// Dial opens a transport for a Connect URI. Defaults to transport.Open.
	Dial func(uri string) (transport.Transport, error)

	WindowCap    int
	IdleInterval time.Duration

	// Hello is written right after the transport opens, if set.
	Hello string

	Logger *slog.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.Dial == nil {
		cfg.Dial = transport.Open
	}
	if cfg.WindowCap <= 0 {
		cfg.WindowCap = DefaultWindowCap
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = DefaultIdleInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// Engine owns a device connection. All state lives on the worker goroutine
// running Run; callers talk to it only through the command and response
// channels.
type Engine struct {
	cfg Config
	log *slog.Logger

	cmds  <-chan Command
	resps chan<- Response

	state  State
	tr     transport.Transport
	prog   gcode.Program
	loaded bool
}

// New creates an Engine in the Disconnected state.
func New(cmds <-chan Command, resps chan<- Response, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:   cfg,
		log:   cfg.Logger,
		cmds:  cmds,
		resps: resps,
		state: Disconnected{},
	}
}

// Run processes commands until Shutdown or until the command channel is
// closed. It closes the response channel before returning.
func (e *Engine) Run() {
	defer close(e.resps)
	e.emit(StateChanged{State: e.state})
	for e.step() {
	}
	e.log.Info("device worker stopped")
}

// step runs a single tick. It reports false once the engine is Dead.
//
// A tick that handles a command does no protocol work.
func (e *Engine) step() bool {
	switch e.state.(type) {
	case Dead:
		return false
	case Terminating:
		e.drop()
		e.setState(Dead{})
		return false
	}

	if e.poll() {
		return true
	}

	switch s := e.state.(type) {
	case Running:
		e.stream(s)
	case Failed:
		e.setState(Disconnected{})
	default:
		time.Sleep(e.cfg.IdleInterval)
	}
	return true
}

func (e *Engine) poll() bool {
	select {
	case c, ok := <-e.cmds:
		if !ok {
			e.log.Warn("command channel closed, shutting down")
			e.cmds = nil
			c = Shutdown{}
		}
		e.handle(c)
		return true
	default:
		return false
	}
}

func (e *Engine) handle(c Command) {
	e.log.Debug("command", "cmd", c.Name(), "state", e.state)

	next, resp, act := transition(e.state, c, e.loaded, e.prog.Len())
	switch act {
	case actClose:
		e.drop()
	case actAbort:
		e.drop()
		e.forget()
	case actStore:
		e.prog = c.(LoadProgram).Program
		e.loaded = true
	}

	e.setState(next)
	if resp != nil {
		e.emit(resp)
	}

	switch act {
	case actOpen:
		e.connect(c.(Connect).URI)
	case actSend:
		e.immediate(c.(SendLine).Line)
	case actReport:
		e.emit(StateChanged{State: e.state})
	}
}

func (e *Engine) connect(uri string) {
	const cmd = "connect"
	tr, err := e.cfg.Dial(uri)
	if err != nil {
		e.fail(cmd, err)
		return
	}
	e.tr = tr

	if e.cfg.Hello != "" {
		err = e.write(e.cfg.Hello)
		if err != nil {
			e.fail(cmd, err)
			return
		}
	}

	banner, err := e.awaitAck()
	if err != nil {
		e.fail(cmd, err)
		return
	}
	e.log.Info("connected", "uri", uri, "banner", strings.Join(banner, " "))
	e.setState(Ready{})
	e.emit(Ok{Cmd: cmd, Msg: uri})
}

func (e *Engine) immediate(line string) {
	const cmd = "command"
	err := e.write(line)
	if err != nil {
		e.fail(cmd, err)
		return
	}

	chatter, err := e.awaitAck()
	if err != nil {
		e.fail(cmd, err)
		return
	}
	e.setState(Ready{})
	e.emit(Ok{Cmd: cmd, Msg: strings.Join(chatter, "\n")})
}

// stream does one round of sending and ack reading for a running program.
func (e *Engine) stream(s Running) {
	if e.tr == nil {
		e.setState(Failed{Reason: "transport lost"})
		return
	}

	if s.Outstanding < e.cfg.WindowCap && s.Cursor < s.Total {
		err := e.write(e.prog.Line(s.Cursor))
		if err != nil {
			e.abortRun(err)
			return
		}
		s.Cursor++
		s.Outstanding++
		e.setState(s)
	}

	if s.Outstanding > 0 {
		line, err := e.tr.ReadLine()
		switch {
		case err != nil:
			e.abortRun(&IOError{Op: "read", Err: err})
			return
		case isAck(line):
			s.Outstanding--
			e.setState(s)
		case isDeviceError(line):
			e.abortRun(&DeviceError{Line: line})
			return
		default:
			e.logChatter(line)
		}
	}

	if s.done() {
		e.log.Info("program complete", "lines", s.Total)
		e.setState(Ready{})
		e.emit(Ok{Cmd: Run{}.Name(), Msg: "complete"})
	}
}

// awaitAck reads until an ack, returning the lines that came before it.
func (e *Engine) awaitAck() ([]string, error) {
	if e.tr == nil {
		return nil, &IOError{Op: "read", Err: errNoTransport}
	}

	var chatter []string
	for len(chatter) < maxChatter {
		line, err := e.tr.ReadLine()
		if err != nil {
			return chatter, &IOError{Op: "read", Err: err}
		}
		switch {
		case isAck(line):
			return chatter, nil
		case isDeviceError(line):
			return chatter, &DeviceError{Line: line}
		}
		e.logChatter(line)
		chatter = append(chatter, line)
	}

	return chatter, errors.New("no ack after " + strconv.Itoa(maxChatter) + " lines")
}

// logChatter logs a line that is neither an ack nor an error.
func (e *Engine) logChatter(line string) {
	stat, err := ParseStatus(line)
	if err != nil {
		e.log.Debug("device message", "line", line)
		return
	}
	pos := stat.WorkPos()
	e.log.Debug("device status", "status", stat.Status, "x", pos.X, "y", pos.Y, "z", stat.Z)
}

func (e *Engine) write(line string) error {
	if e.tr == nil {
		return &IOError{Op: "write", Err: errNoTransport}
	}
	err := e.tr.WriteLine(line)
	if err == nil {
		err = e.tr.Flush()
	}
	if err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func (e *Engine) abortRun(err error) {
	e.forget()
	e.fail(Run{}.Name(), err)
}

// fail drops the connection and reports err for cmd.
func (e *Engine) fail(cmd string, err error) {
	e.log.Error("device failure", "cmd", cmd, "err", err)
	e.drop()
	e.setState(Disconnected{})
	e.emit(Err{Cmd: cmd, Msg: err.Error()})
}

func (e *Engine) drop() {
	if e.tr == nil {
		return
	}
	err := e.tr.Close()
	if err != nil {
		e.log.Warn("close transport", "err", err)
	}
	e.tr = nil
}

func (e *Engine) forget() {
	e.prog = gcode.Program{}
	e.loaded = false
}

func (e *Engine) setState(s State) {
	if s == e.state {
		return
	}
	e.log.Debug("state", "from", e.state, "to", s)
	e.state = s
	e.emit(StateChanged{State: s})
}

func (e *Engine) emit(r Response) { e.resps <- r }

func isAck(line string) bool         { return strings.HasPrefix(line, "ok") }
func isDeviceError(line string) bool { return strings.HasPrefix(line, "!!") }

// Handle is a running Engine.
type Handle struct {
	Commands  chan<- Command
	Responses <-chan Response

	// Done is closed after the worker exits.
	Done <-chan struct{}
}

// Spawn starts an Engine on its own goroutine.
func Spawn(cfg Config) Handle {
	cmds := make(chan Command, 16)
	resps := make(chan Response, 256)
	done := make(chan struct{})

	e := New(cmds, resps, cfg)
	go func() {
		defer close(done)
		e.Run()
	}()

	return Handle{Commands: cmds, Responses: resps, Done: done}
}
