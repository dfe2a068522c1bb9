package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"

	"github.com/nrawrx3/jamdeck/internal/messages"
	"github.com/nrawrx3/jamdeck/internal/utils"
	"github.com/nrawrx3/jamdeck/table"
)

const defaultMaxConnections = 64

type ConfigNewServer struct {
	ListenAddr     utils.TCPAddress
	Table          *table.Table
	MaxConnections int
	Logger         *log.Logger
}

// Server answers configuration lookups over HTTP.
type Server struct {
	table          *table.Table
	router         *mux.Router
	httpServer     *http.Server
	maxConnections int
	logger         *log.Logger
}

func NewServer(config *ConfigNewServer) *Server {
	s := &Server{
		table:          config.Table,
		maxConnections: config.MaxConnections,
		logger:         config.Logger,
	}
	if s.logger == nil {
		s.logger = utils.DiscardLogger()
	}
	if s.maxConnections <= 0 {
		s.maxConnections = defaultMaxConnections
	}

	s.router = mux.NewRouter()
	s.router.Path("/configurations").Methods("GET").HandlerFunc(s.handleSummary)
	s.router.Path("/configurations/{id}").Methods("GET").HandlerFunc(s.handleConfiguration)
	utils.RoutesSummary(s.router, s.logger)

	s.httpServer = &http.Server{
		Handler:           s.router,
		Addr:              config.ListenAddr.BindString(),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       1 * time.Minute,
		ReadHeaderTimeout: 2 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// RunServer blocks until the server is shut down. Connections beyond
// MaxConnections wait to be accepted.
func (s *Server) RunServer() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	s.logger.Printf("Serving %d configurations at addr: %s", s.table.Count(), listener.Addr())
	err := s.httpServer.Serve(netutil.LimitListener(listener, s.maxConnections))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Req:		GET /configurations
// Resp:	TableSummaryMessage
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	msg := messages.TableSummaryMessage{
		Count:  s.table.Count(),
		Digest: s.table.Digest(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&msg)
}

// Req:		GET /configurations/{id}
// Resp:	ConfigurationMessage
func (s *Server) handleConfiguration(w http.ResponseWriter, r *http.Request) {
	idString := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		s.logger.Printf("Bad configuration id %q", idString)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		messages.WriteErrorPayload(w, err)
		return
	}

	config, err := s.table.Configuration(id)
	if errors.Is(err, table.ErrNoSuchConfiguration) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		messages.WriteErrorPayload(w, err)
		return
	}
	if err != nil {
		s.logger.Printf("Cannot decode configuration %d: %s", id, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		messages.WriteErrorPayload(w, err)
		return
	}

	msg := messages.NewConfigurationMessage(id, config)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&msg)
}
