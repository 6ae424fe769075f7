// Package server arranca el transporte configurado para un servicio.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"

	"mini-rss/internal/common"
	"mini-rss/internal/config"
)

type ServerType string

const (
	ServerTypeHTTP ServerType = "HTTP"
	ServerTypeGRPC ServerType = "GRPC" // reconocido en la configuracion pero sin implementacion
)

// Server es un servidor en ejecucion.
type Server interface {
	Start() error
	Stop(ctx context.Context) error
	// Addr devuelve host:port real (util con puerto 0).
	Addr() string
}

// NewServer elige el transporte segun rss.rpc.server.type.
func NewServer(conf *config.Conf, name string, handler http.Handler) (Server, error) {
	t := ServerType(conf.GetString(config.RpcServerType, config.RpcServerTypeDefaultValue))
	switch t {
	case ServerTypeHTTP:
		port := conf.GetInt(config.RpcServerPort, config.RpcServerPortDefaultValue)
		return newHTTPServer(name, port, handler), nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedServerType, t)
	}
}

type httpServer struct {
	name string
	port int
	srv  *http.Server

	mu sync.Mutex
	ln net.Listener
}

func newHTTPServer(name string, port int, handler http.Handler) *httpServer {
	return &httpServer{
		name: name,
		port: port,
		srv:  &http.Server{Handler: handler},
	}
}

func (s *httpServer) Start() error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.port))
	if err != nil {
		return fmt.Errorf("[%s] error al iniciar servidor: %w", s.name, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	log.Printf("[%s] Servidor iniciado en %s", s.name, ln.Addr())
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[%s] Servidor detenido con error: %v", s.name, err)
		}
	}()
	return nil
}

func (s *httpServer) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *httpServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}
