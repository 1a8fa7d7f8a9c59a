package test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	// Packages
	uuid "github.com/google/uuid"
	schema "github.com/mutablelogic/go-lmq/pkg/lmq/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Server is an in-memory queue server speaking the same HTTP protocol as
// a Lightweight Message Queue server, for use in tests.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	queues   map[string][]message
	files    map[string][]byte
	requests []string
}

type message struct {
	uid   string
	value string
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Version = "1.2.0"

	bodyOK         = "OK."
	bodyNotExists  = "Queue not exists!"
	bodyEmpty      = "Queue is empty!"
	bodyNoMessage  = "Message is empty!"
	bodyNoFile     = "File not exists!"
	bodyFileAbsent = "File not found!"
	bodyBadNumber  = "Number must be a integer!"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewServer starts a new server. Call Close when done.
func NewServer() *Server {
	self := &Server{
		queues: make(map[string][]message),
		files:  make(map[string][]byte),
	}

	router := http.NewServeMux()
	router.HandleFunc("GET /help", self.help)
	router.HandleFunc("GET /version", self.version)
	router.HandleFunc("GET /list", self.list)
	router.HandleFunc("GET /count/{queue}", self.count)
	router.HandleFunc("GET /skip/{queue}/{number}", self.skip)
	router.HandleFunc("GET /set/{queue}/{message...}", self.set)
	router.HandleFunc("GET /get/{queue}", self.get)
	router.HandleFunc("GET /fetch/{queue}", self.fetch)
	router.HandleFunc("GET /download/{message...}", self.download)
	router.HandleFunc("GET /delete/{queue}", self.delete)

	self.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		self.mu.Lock()
		self.requests = append(self.requests, r.URL.Path)
		self.mu.Unlock()
		router.ServeHTTP(w, r)
	}))

	return self
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Put appends messages to a queue, creating it if necessary
func (s *Server) Put(queue string, values ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.queues[queue]; !exists {
		s.queues[queue] = []message{}
	}
	for _, value := range values {
		s.queues[queue] = append(s.queues[queue], message{uid: uuid.NewString(), value: value})
	}
}

// PutFile stores the content of a file which messages can reference with
// the "file:" prefix
func (s *Server) PutFile(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = slices.Clone(data)
}

// Len returns the number of messages in a queue, or -1 if it does not exist
func (s *Server) Len(queue string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if messages, exists := s.queues[queue]; exists {
		return len(messages)
	}
	return -1
}

// Requests returns the paths of all requests received
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

////////////////////////////////////////////////////////////////////////////////
// HANDLERS

func (s *Server) help(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, "Methods:\n/list\t\tList of the queues.\n")
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	text(w, http.StatusOK, Version)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	names := make([]string, 0, len(s.queues))
	for name := range s.queues {
		names = append(names, name)
	}
	s.mu.Unlock()

	sort.Strings(names)
	var lines strings.Builder
	for _, name := range names {
		lines.WriteString(name + "\n")
	}
	text(w, http.StatusOK, lines.String())
}

func (s *Server) count(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	messages, exists := s.queues[r.PathValue("queue")]
	s.mu.Unlock()
	if !exists {
		text(w, http.StatusNotFound, bodyNotExists)
		return
	}
	text(w, http.StatusOK, strconv.Itoa(len(messages)))
}

func (s *Server) skip(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		text(w, http.StatusBadRequest, bodyBadNumber)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	messages, exists := s.queues[r.PathValue("queue")]
	if !exists {
		text(w, http.StatusNotFound, bodyNotExists)
		return
	}
	for i := 0; i < n && len(messages) > 0; i++ {
		messages = append(messages[1:], messages[0])
	}
	s.queues[r.PathValue("queue")] = messages
	text(w, http.StatusOK, bodyOK)
}

func (s *Server) set(w http.ResponseWriter, r *http.Request) {
	queue, value := r.PathValue("queue"), r.PathValue("message")
	if value == "" {
		text(w, http.StatusBadRequest, bodyNoMessage)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if path, isFile := strings.CutPrefix(value, schema.FilePrefix); isFile {
		if _, exists := s.files[path]; !exists {
			text(w, http.StatusNotAcceptable, bodyNoFile)
			return
		}
	}
	s.queues[queue] = append(s.queues[queue], message{uid: uuid.NewString(), value: value})
	text(w, http.StatusOK, bodyOK)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	message, status, body := s.pop(r.PathValue("queue"))
	if status != http.StatusOK {
		text(w, status, body)
		return
	}
	w.Header().Set(schema.HeaderUid, message.uid)
	text(w, http.StatusOK, message.value)
}

func (s *Server) fetch(w http.ResponseWriter, r *http.Request) {
	message, status, body := s.pop(r.PathValue("queue"))
	if status != http.StatusOK {
		text(w, status, body)
		return
	}
	s.content(w, message.uid, message.value)
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	value := r.PathValue("message")
	if value == "" {
		text(w, http.StatusBadRequest, bodyNoMessage)
		return
	}
	s.content(w, "", value)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.queues[r.PathValue("queue")]; !exists {
		text(w, http.StatusNotFound, bodyNotExists)
		return
	}
	delete(s.queues, r.PathValue("queue"))
	text(w, http.StatusOK, bodyOK)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Server) pop(queue string) (message, int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages, exists := s.queues[queue]
	if !exists {
		return message{}, http.StatusNotFound, bodyNotExists
	}
	if len(messages) == 0 {
		return message{}, http.StatusGone, bodyEmpty
	}
	s.queues[queue] = messages[1:]
	return messages[0], http.StatusOK, ""
}

// content writes the message, or the file it references
func (s *Server) content(w http.ResponseWriter, uid, value string) {
	if uid != "" {
		w.Header().Set(schema.HeaderUid, uid)
	}
	path, isFile := strings.CutPrefix(value, schema.FilePrefix)
	if !isFile {
		text(w, http.StatusOK, value)
		return
	}

	s.mu.Lock()
	data, exists := s.files[path]
	s.mu.Unlock()
	if !exists {
		w.Header().Del(schema.HeaderUid)
		text(w, http.StatusNotFound, bodyFileAbsent)
		return
	}
	w.Header().Set(schema.HeaderMessage, value)
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
