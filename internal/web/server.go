package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/VdBondarev/notes-management-app-backend/internal/notes"
)

// NewServer creates and configures the HTTP server for the notes API.
func NewServer(svc *notes.Service, version, bind string, port int) *http.Server {
	h := &Handlers{
		svc:     svc,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.HandleFunc("POST /notes", h.HandleCreate)
	mux.HandleFunc("GET /notes", h.HandleList)
	mux.HandleFunc("GET /notes/search", h.HandleSearch)
	mux.HandleFunc("GET /notes/{id}", h.HandleGet)
	mux.HandleFunc("GET /notes/{id}/preview", h.HandlePreview)
	mux.HandleFunc("PATCH /notes/{id}", h.HandleUpdate)
	mux.HandleFunc("DELETE /notes/{id}", h.HandleDelete)

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("Notes API running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
