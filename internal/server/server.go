// Package server exposes the query runner over a websocket endpoint:
// each text frame is a PQL query, each reply one JSON frame of results
// or an error diagnostic.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerquery/internal/query"
	"github.com/lox/pokerquery/internal/runner"
)

// Server serves PQL queries over websockets.
type Server struct {
	runner   *runner.Runner
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// Response is one reply frame: the per-statement results, or an error.
type Response struct {
	Statements []*runner.StatementResult `json:"statements,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// New builds a server around the runner.
func New(r *runner.Runner, logger *log.Logger) *Server {
	return &Server{
		runner: r,
		logger: logger,
		upgrader: websocket.Upgrader{
			// Queries carry no credentials; any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler with the /query endpoint mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)
	return mux
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleQuery(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("client connected", "remote", req.RemoteAddr)

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("client gone", "remote", req.RemoteAddr, "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		resp := s.execute(string(payload))
		if err := conn.WriteJSON(resp); err != nil {
			s.logger.Error("writing response failed", "error", err)
			return
		}
	}
}

func (s *Server) execute(src string) Response {
	stmts, err := query.Parse(src)
	if err != nil {
		return Response{Error: describe(src, err)}
	}

	var results []*runner.StatementResult
	for i := range stmts {
		res, err := s.runner.ExecStatement(&stmts[i])
		if err != nil {
			return Response{Error: describe(src, err)}
		}
		results = append(results, res)
	}

	return Response{Statements: results}
}

// describe appends the offending query text to the error when the error
// carries a location.
func describe(src string, err error) string {
	msg := err.Error()
	if span, ok := query.SpanOf(err); ok && span.Start < span.End && span.End <= len(src) {
		msg += ": " + strings.TrimSpace(src[span.Start:span.End])
	}
	return msg
}

// MarshalResults renders statement results as the JSON the endpoint
// sends; exposed for clients and tests.
func MarshalResults(results []*runner.StatementResult) ([]byte, error) {
	return json.Marshal(Response{Statements: results})
}
