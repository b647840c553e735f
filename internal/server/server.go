package server

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	address    string
	logger     *logger.Logger

	// listen is net.Listen unless a test replaces it.
	listen func(network, address string) (net.Listener, error)
}

// NewServer builds a server for handler on address. An empty address means
// the endpoint is disabled and errNoServersAreCreated is returned.
func NewServer(handler http.Handler, address string, logger *logger.Logger) (Server, error) {
	if address == "" || handler == nil {
		return nil, errNoServersAreCreated
	}
	logger.Info().Str("address", address).Msg("creating new server...")

	return &server{
		httpServer: newHTTPServer(handler, address, logger),
		address:    address,
		logger:     logger,
		listen:     net.Listen,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	ln, err := s.listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.address, err)
	}

	s.logger.Info().Str("address", ln.Addr().String()).Msg("Launching HTTP server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.serve(ln)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	s.httpServer.shutdown()
	err = <-errCh
	s.logger.Info().Msg("server Shutdown gracefully")
	return err
}
