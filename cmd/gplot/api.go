package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mastercactapus/gplot/coord"
	"github.com/mastercactapus/gplot/device"
	"github.com/mastercactapus/gplot/gcode"
	"github.com/mastercactapus/gplot/machine"
	"github.com/mastercactapus/gplot/post"
)

const maxCommandSize = 4096

type api struct {
	http.Handler
	log  *slog.Logger
	prof *machine.Profile
	dev  device.Handle
	sse  *sse.Server

	programs *xsync.MapOf[string, gcode.Program]
	state    atomic.Pointer[device.Snapshot]
}

func newAPI(prof *machine.Profile, dev device.Handle, log *slog.Logger) *api {
	r := mux.NewRouter()

	a := &api{
		Handler:  r,
		log:      log,
		prof:     prof,
		dev:      dev,
		sse:      sse.NewServer(&sse.Options{Logger: slog.NewLogLogger(log.Handler(), slog.LevelDebug)}),
		programs: xsync.NewMapOf[string, gcode.Program](),
	}
	a.state.Store(&device.Snapshot{State: "disconnected"})

	r.Use(a.logRequests)

	r.HandleFunc("/api/post", a.post).Methods("POST")
	r.HandleFunc("/api/programs/{id}", a.program).Methods("GET")
	r.HandleFunc("/api/programs/{id}/load", a.load).Methods("POST")
	r.HandleFunc("/api/state", a.getState).Methods("GET")

	r.HandleFunc("/api/connect", a.connect).Methods("POST")
	r.HandleFunc("/api/command", a.command).Methods("POST")
	r.Handle("/api/disconnect", a.simple(device.Disconnect{})).Methods("POST")
	r.Handle("/api/run", a.simple(device.Run{})).Methods("POST")
	r.Handle("/api/stop", a.simple(device.Stop{})).Methods("POST")
	r.Handle("/api/reset", a.simple(device.Reset{})).Methods("POST")
	r.Handle("/api/ping", a.simple(device.Ping{})).Methods("POST")

	r.PathPrefix("/events/").Handler(a.sse)

	go a.forward()

	return a
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		a.log.Debug("request", "method", req.Method, "path", req.URL.Path, "remote", req.RemoteAddr)
		next.ServeHTTP(w, req)
	})
}

type event struct {
	Type string `json:"type"`
	Cmd  string `json:"cmd,omitempty"`
	Msg  string `json:"msg"`
}

// forward publishes device responses as server-sent events until the
// device stops.
func (a *api) forward() {
	for r := range a.dev.Responses {
		channel := "/events/responses"
		var v interface{}
		switch r := r.(type) {
		case device.StateChanged:
			snap := device.Describe(r.State)
			a.state.Store(&snap)
			channel, v = "/events/state", snap
		case device.Ok:
			v = event{Type: "ok", Cmd: r.Cmd, Msg: r.Msg}
		case device.Err:
			a.log.Warn("device command failed", "cmd", r.Cmd, "msg", r.Msg)
			v = event{Type: "error", Cmd: r.Cmd, Msg: r.Msg}
		case device.Loaded:
			v = event{Type: "loaded", Cmd: "program", Msg: r.Msg}
		default:
			continue
		}

		data, err := json.Marshal(v)
		if err != nil {
			a.log.Error("marshal event", "err", err)
			continue
		}
		a.sse.SendMessage(channel, sse.SimpleMessage(string(data)))
	}
}

func (a *api) send(w http.ResponseWriter, req *http.Request, c device.Command) {
	select {
	case a.dev.Commands <- c:
		w.WriteHeader(http.StatusAccepted)
	case <-a.dev.Done:
		http.Error(w, "device worker stopped", http.StatusServiceUnavailable)
	case <-req.Context().Done():
		http.Error(w, "device busy", http.StatusServiceUnavailable)
	}
}

func (a *api) simple(c device.Command) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		a.send(w, req, c)
	})
}

func (a *api) connect(w http.ResponseWriter, req *http.Request) {
	uri := strings.TrimSpace(req.FormValue("uri"))
	if uri == "" {
		http.Error(w, "missing uri", http.StatusBadRequest)
		return
	}
	a.send(w, req, device.Connect{URI: uri})
}

func (a *api) command(w http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxCommandSize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	line := strings.TrimSpace(string(data))
	if line == "" || strings.ContainsAny(line, "\r\n") {
		http.Error(w, "expected a single line", http.StatusBadRequest)
		return
	}
	a.send(w, req, device.SendLine{Line: line})
}

func (a *api) getState(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.state.Load())
	if err != nil {
		a.log.Error("encode state", "err", err)
	}
}

func (a *api) program(w http.ResponseWriter, req *http.Request) {
	p, ok := a.programs.Load(mux.Vars(req)["id"])
	if !ok {
		http.NotFound(w, req)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	_, err := p.WriteTo(w)
	if err != nil {
		a.log.Error("write program", "err", err)
	}
}

func (a *api) load(w http.ResponseWriter, req *http.Request) {
	p, ok := a.programs.Load(mux.Vars(req)["id"])
	if !ok {
		http.NotFound(w, req)
		return
	}
	a.send(w, req, device.LoadProgram{Program: p})
}

type postItem struct {
	// Pen is an index into postRequest.Pens.
	Pen       *int           `json:"pen"`
	Keepdown  string         `json:"keepdown"`
	Factor    float64        `json:"factor"`
	Polylines [][][2]float64 `json:"polylines"`
}

type postRequest struct {
	Origin      *coord.Point  `json:"origin"`
	Pens        []machine.Pen `json:"pens"`
	Items       []postItem    `json:"items"`
	Optimize    *bool         `json:"optimize"`
	CheckLimits bool          `json:"checkLimits"`
}

type postResponse struct {
	ID      string `json:"id"`
	Lines   int    `json:"lines"`
	Summary string `json:"summary"`

	// DrawSeconds estimates time spent drawing at the programmed feed rates.
	DrawSeconds float64 `json:"drawSeconds"`
}

func (r postRequest) items() ([]post.Item, error) {
	res := make([]post.Item, 0, len(r.Items))
	for _, it := range r.Items {
		var item post.Item
		if it.Pen != nil {
			if *it.Pen < 0 || *it.Pen >= len(r.Pens) {
				return nil, errors.New("pen index out of range")
			}
			item.Pen = &r.Pens[*it.Pen]
		}

		var err error
		item.Keepdown, err = post.ParseKeepdown(it.Keepdown, it.Factor)
		if err != nil {
			return nil, err
		}

		for _, pl := range it.Polylines {
			line := make(post.Polyline, len(pl))
			for i, pt := range pl {
				line[i] = coord.Point{X: pt[0], Y: pt[1]}
				if !line[i].IsFinite() {
					return nil, errors.New("non-finite coordinate")
				}
			}
			item.Polylines = append(item.Polylines, line)
		}
		res = append(res, item)
	}
	return res, nil
}

func (a *api) post(w http.ResponseWriter, req *http.Request) {
	var body postRequest
	err := json.NewDecoder(req.Body).Decode(&body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	items, err := body.items()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if body.CheckLimits {
		err = post.CheckLimits(items, a.prof, body.Origin)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	var opt post.Options
	if body.Optimize != nil && !*body.Optimize {
		opt.Optimizer = post.Identity
	}
	p, err := post.Post(items, a.prof, body.Origin, opt)
	if errors.Is(err, post.ErrMissingOrigin) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		a.log.Error("post", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := uuid.NewString()
	a.programs.Store(id, p)
	sum := gcode.Summarize(p)
	a.log.Info("posted program", "id", id, "summary", sum.String(), "draw", sum.Draw)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(postResponse{
		ID:          id,
		Lines:       p.Len(),
		Summary:     sum.String(),
		DrawSeconds: sum.Draw.Seconds(),
	})
	if err != nil {
		a.log.Error("encode response", "err", err)
	}
}
