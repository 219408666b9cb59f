package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is used when a serial URI does not name a baud rate.
const DefaultBaud = 115200

// serialPoll is the per-read timeout handed to the port; ReadLine loops
// on it until the configured read timeout.
const serialPoll = 100 * time.Millisecond

// SerialConfig describes a serial connection.
type SerialConfig struct {
	URI         string
	Device      string
	Baud        int
	ReadTimeout time.Duration
}

// ParseSerialURI parses `serial://<path>[@<baud>][?timeout=<duration>]`.
func ParseSerialURI(uri string) (SerialConfig, error) {
	cfg := SerialConfig{
		URI:         uri,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
	}
	fail := func(err error) (SerialConfig, error) {
		return SerialConfig{}, &ConnectionError{URI: uri, Err: err}
	}

	rest, ok := strings.CutPrefix(uri, "serial://")
	if !ok {
		return fail(errors.New("not a serial uri"))
	}
	rest, query, _ := strings.Cut(rest, "?")
	if query != "" {
		q, err := url.ParseQuery(query)
		if err != nil {
			return fail(err)
		}
		if s := q.Get("timeout"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return fail(fmt.Errorf("timeout: %w", err))
			}
			if d <= 0 {
				return fail(errors.New("timeout must be positive"))
			}
			cfg.ReadTimeout = d
		}
	}

	if i := strings.LastIndexByte(rest, '@'); i >= 0 {
		baud, err := strconv.Atoi(rest[i+1:])
		if err != nil {
			return fail(fmt.Errorf("baud: %w", err))
		}
		if baud <= 0 {
			return fail(errors.New("baud must be positive"))
		}
		cfg.Baud = baud
		rest = rest[:i]
	}
	if rest == "" {
		return fail(errors.New("missing device path"))
	}
	cfg.Device = rest

	return cfg, nil
}

type port interface {
	io.ReadWriteCloser
	Flush() error
}

// Serial is a Transport over a serial port.
type Serial struct {
	p  port
	w  *bufio.Writer
	lr *lineReader
}

var _ Transport = &Serial{}

// OpenSerial opens the port and discards any stale input.
func OpenSerial(cfg SerialConfig) (*Serial, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: serialPoll,
	})
	if err != nil {
		return nil, &ConnectionError{URI: cfg.URI, Err: err}
	}
	if err = p.Flush(); err != nil {
		p.Close()
		return nil, &ConnectionError{URI: cfg.URI, Err: err}
	}

	return newSerial(p, cfg.ReadTimeout), nil
}

func newSerial(p port, timeout time.Duration) *Serial {
	return &Serial{
		p:  p,
		w:  bufio.NewWriter(p),
		lr: newLineReader(p, timeout),
	}
}

func (s *Serial) WriteLine(line string) error {
	_, err := s.w.WriteString(line + "\n")
	return err
}

func (s *Serial) Flush() error { return s.w.Flush() }

func (s *Serial) ReadLine() (string, error) { return s.lr.ReadLine() }

func (s *Serial) Close() error { return s.p.Close() }
