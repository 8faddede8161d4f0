package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"tableflip.dev/bnote/pkg/app"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportHTTP  Transport = "http"
	TransportStdio Transport = "stdio"
)

// ParseTransport accepts "http" (the default for an empty name) or "stdio".
func ParseTransport(name string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(name))); t {
	case "", TransportHTTP:
		return TransportHTTP, nil
	case TransportStdio:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", name)
	}
}

// Endpoint is where the HTTP transport listens.
type Endpoint struct {
	Host    string
	Port    int
	Path    string
	TLSCert string
	TLSKey  string
}

const shutdownGrace = 5 * time.Second

func (e Endpoint) normalize() (Endpoint, error) {
	e.Host = strings.TrimSpace(e.Host)
	if e.Host == "" {
		e.Host = "127.0.0.1"
	}
	if e.Port < 0 || e.Port > 65535 {
		return e, fmt.Errorf("invalid http port %d", e.Port)
	}
	e.Path = "/" + strings.TrimLeft(strings.TrimSpace(e.Path), "/")
	if e.Path == "/" {
		e.Path = "/mcp"
	}
	e.TLSCert, e.TLSKey = strings.TrimSpace(e.TLSCert), strings.TrimSpace(e.TLSKey)
	if (e.TLSCert == "") != (e.TLSKey == "") {
		return e, errors.New("both http tls cert and key must be provided")
	}
	return e, nil
}

func (e Endpoint) listenAddr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// URL renders the client-facing address for a bound listener. Wildcard
// hosts are shown as loopback.
func (e Endpoint) URL(bound net.Addr) string {
	scheme := "http"
	if e.TLSCert != "" {
		scheme = "https"
	}
	host, port := e.Host, strconv.Itoa(e.Port)
	if tcp, ok := bound.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
		if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
			host = "127.0.0.1"
			if tcp.IP != nil && !tcp.IP.IsUnspecified() {
				host = tcp.IP.String()
			}
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, port), e.Path)
}

// Runner serves one notebook over MCP until ctx is done.
type Runner struct {
	Notebook  *app.Notebook
	Name      string
	Version   string
	Transport Transport
	Endpoint  Endpoint
	Log       zerolog.Logger

	// Ready, when set, receives the URL once the HTTP listener is bound.
	Ready func(url string)
}

// Do starts the server on the configured transport and blocks.
func (r Runner) Do(ctx context.Context) error {
	if r.Notebook == nil {
		return errors.New("mcp runner requires a notebook")
	}
	name, version := r.Name, r.Version
	if name == "" {
		name = "bnote"
	}
	if version == "" {
		version = "dev"
	}
	srv := NewServer(NewService(r.Notebook), name, version)

	switch r.Transport {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.Log.Info().Msg("serving MCP on stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unsupported transport %q", r.Transport)
	}
}

// NewServer builds the MCP server with every tool and resource registered.
func NewServer(svc *Service, name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Write notes where lines starting with • (task), O (event) or – and - (note) are saved; other lines are scratch. Parse, edit the draft, confirm it into a batch and browse saved entries by day."),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	ep, err := r.Endpoint.normalize()
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(ep.Path, server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", ep.listenAddr())
	if err != nil {
		return err
	}
	url := ep.URL(ln.Addr())
	r.Log.Info().Str("url", url).Msg("serving MCP over http")
	if r.Ready != nil {
		r.Ready(url)
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			r.Log.Warn().Err(err).Msg("mcp http shutdown")
		}
	}()

	if ep.TLSCert != "" {
		err = httpSrv.ServeTLS(ln, ep.TLSCert, ep.TLSKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
