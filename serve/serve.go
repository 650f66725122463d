// Package serve hosts the WebAssembly build of the window frontend behind a
// host allow-list.
package serve

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/voidglitch/config"
)

//go:embed web
var embedded embed.FS

// AllowAll disables the host check when present in the allow-list
const AllowAll = "all"

const shutdownTimeout = 5 * time.Second

// HostAllowed reports whether a request Host header passes the allow-list.
// Loopback names and IP literals always pass. An entry with a leading dot
// matches the domain itself and every subdomain.
func HostAllowed(host string, allowed []string) bool {
	name := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		name = h
	}
	name = strings.ToLower(strings.TrimSuffix(strings.Trim(name, "[]"), "."))
	if name == "" {
		return false
	}

	if name == "localhost" || strings.HasSuffix(name, ".localhost") || net.ParseIP(name) != nil {
		return true
	}

	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == AllowAll:
			return true
		case strings.HasPrefix(entry, "."):
			if name == entry[1:] || strings.HasSuffix(name, entry) {
				return true
			}
		case name == entry:
			return true
		}
	}
	return false
}

// AllowHosts rejects requests whose Host is not in the allow-list with 403
func AllowHosts(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HostAllowed(c.Request.Host, allowed) {
			c.String(http.StatusForbidden, "Blocked request. This host (%q) is not allowed.", c.Request.Host)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Content returns the served file tree: root when it is an existing
// directory, else the embedded loader page
func Content(root string) (fs.FS, error) {
	if root != "" {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return os.DirFS(root), nil
		}
	}
	sub, err := fs.Sub(embedded, "web")
	if err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	return sub, nil
}

// NewRouter builds the gin engine: allow-list, health endpoint, static files
func NewRouter(cfg config.ServeConfig, content fs.FS) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.LoggerWithWriter(log.Writer()), gin.Recovery(), AllowHosts(cfg.AllowedHosts))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	files := http.FileServer(http.FS(content))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusMethodNotAllowed)
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
	return r
}

// Addr returns the listen address of cfg
func Addr(cfg config.ServeConfig) string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// Run serves until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg config.ServeConfig) error {
	content, err := Content(cfg.Root)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              Addr(cfg),
		Handler:           NewRouter(cfg, content),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving on http://%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("serve shutdown: %w", err)
		}
		return nil
	}
}
