// Package transport provides line oriented connections to plotter hardware.
package transport

import (
	"errors"
	"strings"
	"time"
)

// DefaultReadTimeout bounds every ReadLine call unless a URI overrides it.
const DefaultReadTimeout = 30 * time.Second

// ErrTimeout is returned by ReadLine when no complete line arrived in time.
var ErrTimeout = errors.New("transport: read timed out")

// A Transport is a blocking, line oriented device connection.
//
// Implementations are not safe for concurrent use; a Transport is owned by
// a single goroutine.
type Transport interface {
	// WriteLine queues a line for sending. The newline is added.
	WriteLine(line string) error

	// Flush sends queued lines.
	Flush() error

	// ReadLine blocks until a non-empty line arrives or the read timeout
	// expires. The line is returned without surrounding whitespace.
	ReadLine() (string, error)

	Close() error
}

// ConnectionError is returned when a connection URI is invalid or the
// device can not be opened.
type ConnectionError struct {
	URI string
	Err error
}

func (e *ConnectionError) Error() string {
	return "connect " + e.URI + ": " + e.Err.Error()
}
func (e *ConnectionError) Unwrap() error { return e.Err }

// Open connects to the device described by uri.
//
// Supported forms:
//
//	serial://<path>[@<baud>][?timeout=<duration>]
//	ws://<host>/<path>, wss://<host>/<path>
func Open(uri string) (Transport, error) {
	scheme, _, ok := strings.Cut(uri, "://")
	if !ok {
		return nil, &ConnectionError{URI: uri, Err: errors.New("missing scheme")}
	}

	switch scheme {
	case "serial":
		cfg, err := ParseSerialURI(uri)
		if err != nil {
			return nil, err
		}
		sp, err := OpenSerial(cfg)
		if err != nil {
			return nil, err
		}
		return sp, nil
	case "ws", "wss":
		ws, err := DialWebsocket(uri, DefaultReadTimeout)
		if err != nil {
			return nil, err
		}
		return ws, nil
	}

	return nil, &ConnectionError{URI: uri, Err: errors.New("unsupported scheme " + scheme)}
}
