package main

import (
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/phsym/console-slog"

	"github.com/mastercactapus/gplot/device"
	"github.com/mastercactapus/gplot/machine"
)

func newLogger(w io.Writer, json, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if json {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(console.NewHandler(w, &console.HandlerOptions{Level: level}))
}

func main() {
	profile := flag.String("profile", "", "Machine profile (YAML). The built-in grbl profile is used if empty.")
	addr := flag.String("addr", ":9091", "Address to bind the gplot server to.")
	port := flag.String("port", "", "Device URI to connect to at startup (e.g. serial:///dev/ttyUSB0@115200 or ws://cnc-bridge:8989/ws).")
	hello := flag.String("hello", "", "Line sent to the device after connecting, before waiting for its first ok.")
	window := flag.Int("window", device.DefaultWindowCap, "Maximum number of unacknowledged lines while streaming.")
	logJSON := flag.Bool("log-json", false, "Log as JSON instead of console text.")
	debug := flag.Bool("debug", false, "Enable debug logging.")
	flag.Parse()

	log := newLogger(os.Stderr, *logJSON, *debug)
	slog.SetDefault(log)

	prof := machine.NewProfile("grbl")
	if *profile != "" {
		var err error
		prof, err = machine.LoadProfileFile(*profile)
		if err != nil {
			log.Error("load profile", "path", *profile, "err", err)
			os.Exit(1)
		}
	}
	log.Info("using profile", "name", prof.Name(), "variant", prof.Variant())

	dev := device.Spawn(device.Config{
		WindowCap: *window,
		Hello:     *hello,
		Logger:    log.With("component", "device"),
	})
	if *port != "" {
		dev.Commands <- device.Connect{URI: *port}
	}

	a := newAPI(prof, dev, log.With("component", "api"))

	log.Info("listening", "addr", *addr)
	err := http.ListenAndServe(*addr, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		a.ServeHTTP(w, req)
	}))
	if err != nil {
		log.Error("serve", "err", err)
		os.Exit(1)
	}
}
