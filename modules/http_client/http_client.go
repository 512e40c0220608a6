// Package http_client provides the 'http get' task and the shared client it
// sends requests with.
package http_client

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/specialistvlad/gridtask/internal/registry"
)

//go:embed manifest.hcl
var manifestSrc []byte

const defaultTimeout = 10 * time.Second

// Module implements the registry.Module interface. Client is used for every
// request; a pooled client is created when it is nil.
type Module struct {
	Client *http.Client
}

// newHttpClient returns a client with connection pooling. Per-request
// timeouts come from the request context.
func newHttpClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Register registers the manifest and its handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	client := m.Client
	if client == nil {
		client = newHttpClient()
	}
	r.MustAddManifestSource("http_client/manifest.hcl", manifestSrc)
	r.RegisterHandler("OnRunHttpGet", registry.Typed((&requester{client: client}).OnRunHttpGet))
}
