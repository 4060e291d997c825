// Command motiflow-server provides a REST API for motif analysis.
//
// Usage:
//
//	motiflow-server [options]
//
// Options:
//
//	-port     Port to listen on (default: 8080)
//	-host     Host to bind to (default: localhost)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/motiflow/motiflow-go/api/handlers"
	"github.com/motiflow/motiflow-go/api/middleware"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	flag.Parse()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Motif endpoints
		r.Route("/motif", func(r chi.Router) {
			r.Post("/encode", handlers.EncodeHandler)
			r.Post("/consensus", handlers.ConsensusHandler)
			r.Post("/parse-meme", handlers.ParseMemeHandler)
		})

		// Scanning endpoints
		r.Route("/scan", func(r chi.Router) {
			r.Post("/fimo", handlers.ScanHandler)
		})

		// Comparison endpoints
		r.Route("/compare", func(r chi.Router) {
			r.Post("/tomtom", handlers.CompareHandler)
		})
	})

	// Home page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>Motiflow API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>Motiflow API</h1>
    <p>A REST API for DNA motif scanning and comparison.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/motif/encode</code>
        <p>One-hot encode a DNA sequence.</p>
        <pre>{"sequence": "ACGTN"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/motif/consensus</code>
        <p>Extract the consensus string of a PWM.</p>
        <pre>{"pwm": [[0.8,0.1],[0.1,0.8],[0.05,0.05],[0.05,0.05]], "force": false}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/motif/parse-meme</code>
        <p>Parse motifs from MEME text.</p>
        <pre>{"text": "MEME version 4 ...", "max_motifs": 0}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/scan/fimo</code>
        <p>Scan sequences for motif occurrences.</p>
        <pre>{"motifs": {"simple": [[0.8,0.1],[0.1,0.8],[0.05,0.05],[0.05,0.05]]}, "sequences": ["ACGTACGT"], "threshold": 0.5}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/compare/tomtom</code>
        <p>Compare query motifs against target motifs.</p>
        <pre>{"queries": {...}, "targets": {...}}</pre>
    </div>

    <p>For more information, see the <a href="https://github.com/motiflow/motiflow-go">documentation</a>.</p>
</body>
</html>`))
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Could not gracefully shutdown: %v\n", err)
		}
		close(done)
	}()

	log.Printf("Motiflow API server starting on http://%s\n", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}

	<-done
	log.Println("Server stopped")
}
