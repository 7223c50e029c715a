package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for prefix searches
type Server struct {
	completer suggest.ICompleter
	config    *config.Config
	decoder   *msgpack.Decoder
	writer    *bufio.Writer
	encoder   *msgpack.Encoder
	logger    *log.Logger
	requests  int
}

// NewServer creates a server speaking over stdin/stdout
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerWithIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w
func NewServerWithIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		logger:    logger.New("server"),
	}
}

// Start processes requests until the input is closed. A clean EOF returns nil.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}

		s.requests++
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest dispatches on the cmd field and flushes the response
func (s *Server) handleRequest(req Request) error {
	switch req.Cmd {
	case "", CmdComplete:
		s.handleComplete(req)
	case CmdHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	case CmdStats:
		s.send(StatusResponse{ID: req.ID, Status: "ok", Stats: s.completer.Stats()})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown command: %s", req.Cmd), 400)
	}

	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing response: %v", err)
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

// handleComplete validates a completion request against the server limits and answers it
func (s *Server) handleComplete(req Request) {
	cfg := s.config.Server

	if !utf8.ValidString(req.Prefix) {
		s.sendError(req.ID, "Prefix is not valid UTF-8", 400)
		return
	}
	if cfg.MaxPrefix > 0 && utf8.RuneCountInString(req.Prefix) > cfg.MaxPrefix {
		s.sendError(req.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", cfg.MaxPrefix), 400)
		return
	}

	limit := cfg.ClampLimit(req.Limit)

	start := time.Now()
	suggestions, err := s.completer.Complete(req.Prefix, limit)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Errorf("Completing %q: %v", req.Prefix, err)
		s.sendError(req.ID, "Index unavailable", 500)
		return
	}

	ranks := utils.CreateRankList(len(suggestions))
	out := make([]CompletionSuggestion, len(suggestions))
	for i, sg := range suggestions {
		out[i] = CompletionSuggestion{Word: sg.Word, Article: sg.Article, Rank: ranks[i]}
	}

	s.logger.Debugf("prefix=%q limit=%d results=%d took=%v", req.Prefix, limit, len(out), elapsed)
	s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: out,
		Count:       len(out),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(CompletionError{ID: id, Error: message, Code: code})
	if err := s.writer.Flush(); err != nil {
		s.logger.Errorf("Writing error response: %v", err)
	}
}
