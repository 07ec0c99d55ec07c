// Package server exposes the live watch feed over HTTP: a WebSocket endpoint
// for monitoring tools plus a health check for the wrapping harness.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/PhialsBasement/fnuipad-VR/internal/hub"
)

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	addr        string
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, addr string) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		addr:        addr,
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	log.Printf("Watch feed listening on %s", s.addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		log.Println("Shutting down watch feed...")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
