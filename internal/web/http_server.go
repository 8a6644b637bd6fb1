package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/rook-computer/wristface/internal/assets"
)

const DefaultListenAddr = ":80"

type HTTPServer struct {
	Addr string

	// StaticDir, when set to an existing directory, is served at "/".
	// The API remains available under /api/v1/.
	StaticDir string

	// DevMode enables permissive CORS so a settings page served elsewhere
	// can reach the API.
	DevMode bool

	API APIV1Deps

	// Handler, when set, is served instead of NewDefaultMux. The simulator
	// uses it to mount its control endpoints next to the API.
	Handler http.Handler

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

func NewHTTPServer(addr string, deps APIV1Deps) *HTTPServer {
	return &HTTPServer{Addr: addr, API: deps}
}

func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	addr := s.Addr
	if addr == "" {
		addr = DefaultListenAddr
	}

	handler := s.Handler
	if handler == nil {
		handler = NewDefaultMux(s.StaticDir, APIV1Config{Deps: s.API})
	}
	if s.DevMode {
		handler = WithDevCORS(handler)
	}

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		s.srv = nil
		return pkgerrors.Wrapf(err, "listen %s", addr)
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	logger := s.API.Logger
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		if logger != nil {
			logger.Errorf("web", "serve %s: %v", addr, err)
		}
	}()

	if logger != nil {
		logger.Infof("web", "listening on %s", ln.Addr())
	}
	return nil
}

// ListenAddr returns the bound address, or "" before Start.
func (s *HTTPServer) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

func (s *HTTPServer) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// StaticUIHandler serves the embedded settings page, or dir when it names an
// existing directory.
func StaticUIHandler(dir string) http.Handler {
	if dir == "" {
		fileServer := http.FileServer(http.FS(assets.WebUI))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Clean path to avoid oddities.
			r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
			fileServer.ServeHTTP(w, r)
		})
	}

	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}

	fileServer := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = filepath.ToSlash(filepath.Clean("/" + r.URL.Path))
		fileServer.ServeHTTP(w, r)
	})
}
