package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jasonwbarnett/fileserver"

	"github.com/PrintToPeer/gcode/analyze"
)

type api struct {
	http.Handler
	cfg *Config

	sse      *sse.Server
	files    http.Handler
	upgrader websocket.Upgrader
}

const jobEvents = "/events/jobs"

func newAPI(cfg *Config) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		cfg:     cfg,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(io.Discard, "", 0),
		}),
		files: fileserver.New(http.Dir(cfg.DataDir)),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	r.HandleFunc("/api/analyze", a.analyze).Methods("POST")
	r.HandleFunc("/api/watch", a.watch).Methods("GET")
	r.PathPrefix("/events/").Handler(a.sse)
	r.PathPrefix("/data/").Handler(http.StripPrefix("/data", http.HandlerFunc(a.data)))

	return a
}

func (a *api) options() []analyze.Option {
	return []analyze.Option{
		analyze.WithAcceleration(a.cfg.Acceleration),
		analyze.WithDefaultFeedRate(a.cfg.FeedRate),
	}
}

type jobStats struct {
	ID string `json:"id"`
	analyze.Stats
}

type jobProgress struct {
	ID string `json:"id"`
	analyze.Progress
}

func (a *api) analyze(w http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	id := uuid.New().String()
	opts := append(a.options(), analyze.WithProgress(func(p analyze.Progress) {
		msg, err := json.Marshal(jobProgress{ID: id, Progress: p})
		if err != nil {
			log.Printf("ERROR: marshal progress: %+v", err)
			return
		}
		a.sse.SendMessage(jobEvents, sse.SimpleMessage(string(msg)))
	}))

	d, err := analyze.NewFromReader(bytes.NewReader(data), opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(jobStats{ID: id, Stats: d.Stats()})
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

// watch replays a stored file over a websocket, one snapshot per layer
// boundary, followed by the final statistics.
func (a *api) watch(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.cfg.DataDir, req.FormValue("file"))
	if !ok || req.FormValue("file") == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	conn, err := a.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Printf("ERROR: upgrade: %+v", err)
		return
	}
	defer conn.Close()

	opts := append(a.options(), analyze.WithProgress(func(p analyze.Progress) {
		err := conn.WriteJSON(p)
		if err != nil {
			log.Println("ERROR: write:", err)
		}
	}))

	d, err := analyze.NewFromFile(name, opts...)
	if err != nil {
		conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}
	err = conn.WriteJSON(d.Stats())
	if err != nil {
		log.Println("ERROR: write:", err)
	}
}

func (a *api) data(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case "GET":
		a.files.ServeHTTP(w, req)
	case "PUT":
		a.putFile(w, req)
	case "DELETE":
		a.deleteFile(w, req)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func safePath(base, name string) (bool, string) {
	if filepath.Separator != '/' && strings.ContainsRune(name, filepath.Separator) {
		log.Println("invalid path '" + name + "'")
		return false, ""
	}
	dir := base
	if dir == "" {
		dir = "."
	}
	fullName := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+name)))
	return true, fullName
}

func (a *api) putFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.cfg.DataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	os.MkdirAll(filepath.Dir(name), 0755)
	f, err := os.Create(name)
	if err != nil {
		log.Printf("ERROR: create '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()
	_, err = io.Copy(f, req.Body)
	if err != nil {
		log.Printf("ERROR: write '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}

func (a *api) deleteFile(w http.ResponseWriter, req *http.Request) {
	ok, name := safePath(a.cfg.DataDir, req.URL.Path)
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := os.Remove(name)
	if err != nil {
		log.Printf("ERROR: delete '%s': %+v", name, err)
		http.Error(w, err.Error(), 500)
		return
	}
}
