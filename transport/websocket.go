package transport

import (
	"net"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Websocket is a Transport to a network serial bridge that exchanges one or
// more newline separated lines per text message.
type Websocket struct {
	ws      *websocket.Conn
	timeout time.Duration

	out     []string
	pending []string
}

var _ Transport = &Websocket{}

// DialWebsocket connects to a websocket serial bridge.
func DialWebsocket(uri string, timeout time.Duration) (*Websocket, error) {
	ws, _, err := websocket.DefaultDialer.Dial(uri, nil)
	if err != nil {
		return nil, &ConnectionError{URI: uri, Err: err}
	}
	return &Websocket{ws: ws, timeout: timeout}, nil
}

func (w *Websocket) WriteLine(line string) error {
	w.out = append(w.out, line+"\n")
	return nil
}

// Flush sends all queued lines as a single message.
func (w *Websocket) Flush() error {
	if len(w.out) == 0 {
		return nil
	}
	err := w.ws.WriteMessage(websocket.TextMessage, []byte(strings.Join(w.out, "")))
	w.out = w.out[:0]
	return err
}

func (w *Websocket) ReadLine() (string, error) {
	for len(w.pending) == 0 {
		w.ws.SetReadDeadline(time.Now().Add(w.timeout))
		_, data, err := w.ws.ReadMessage()
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return "", ErrTimeout
		}
		if err != nil {
			return "", err
		}
		for _, l := range strings.Split(string(data), "\n") {
			l = strings.TrimSpace(l)
			if l != "" {
				w.pending = append(w.pending, l)
			}
		}
	}

	line := w.pending[0]
	w.pending = w.pending[1:]
	return line, nil
}

func (w *Websocket) Close() error { return w.ws.Close() }
