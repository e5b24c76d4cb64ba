package mockserver

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/studentapi"
)

// NewRouter wires every collaborator route onto a mux.Router.
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc(studentapi.PathHealth, s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc(studentapi.PathVerify, s.handleVerify).Methods(http.MethodPost)
	r.HandleFunc(studentapi.PathConfirm, s.handleConfirm).Methods(http.MethodPost)
	r.HandleFunc(studentapi.PathEmailVerification, s.handleSendVerification).Methods(http.MethodPost)
	r.HandleFunc(studentapi.PathEmailConfirm, s.handleConfirmEmail).Methods(http.MethodPost)
	r.HandleFunc(studentapi.PathPasswordReset, s.handlePasswordReset).Methods(http.MethodPost)
	r.Handle(studentapi.PathInbox, s.inbox).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection.
func (rec *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rec.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rec.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
