// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds the restart policy shared by every supervisor in the
// tree. Zero fields take the DefaultTreeConfig value.
type TreeConfig struct {
	// FailureThreshold is how many failures, after decay, trigger backoff.
	FailureThreshold float64

	// FailureDecay is the half-life of a failure, in seconds.
	FailureDecay float64

	FailureBackoff  time.Duration
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig mirrors suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

func (c TreeConfig) spec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// Layer selects the child supervisor a service runs under.
type Layer int

const (
	// LayerCatalog runs model training.
	LayerCatalog Layer = iota
	// LayerAPI runs the HTTP server.
	LayerAPI
)

func (l Layer) String() string {
	switch l {
	case LayerCatalog:
		return "catalog-layer"
	case LayerAPI:
		return "api-layer"
	default:
		return fmt.Sprintf("layer(%d)", int(l))
	}
}

// SupervisorTree is the process supervisor:
//
//	filmoteca
//	├── catalog-layer  (recommendation training)
//	└── api-layer      (HTTP server)
//
// A crashing trainer restarts inside its own layer, so the HTTP server
// keeps answering catalog queries meanwhile.
type SupervisorTree struct {
	root   *suture.Supervisor
	layers map[Layer]*suture.Supervisor
	config TreeConfig
}

// NewSupervisorTree builds the tree. Supervisor events are logged through
// logger by sutureslog.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	config = config.withDefaults()

	// MustHook has a pointer receiver. Layers inherit the root's hook.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

	t := &SupervisorTree{
		root:   suture.New("filmoteca", config.spec(hook)),
		layers: make(map[Layer]*suture.Supervisor, 2),
		config: config,
	}
	for _, l := range []Layer{LayerCatalog, LayerAPI} {
		sup := suture.New(l.String(), config.spec(nil))
		t.root.Add(sup)
		t.layers[l] = sup
	}
	return t, nil
}

// Config returns the configuration with defaults applied.
func (t *SupervisorTree) Config() TreeConfig {
	return t.config
}

// Add runs svc under the given layer.
func (t *SupervisorTree) Add(layer Layer, svc suture.Service) (suture.ServiceToken, error) {
	sup, ok := t.layers[layer]
	if !ok {
		return suture.ServiceToken{}, fmt.Errorf("unknown supervisor %s", layer)
	}
	return sup.Add(svc), nil
}

func (t *SupervisorTree) AddCatalogService(svc suture.Service) suture.ServiceToken {
	return t.layers[LayerCatalog].Add(svc)
}

func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.layers[LayerAPI].Add(svc)
}

// Remove stops a service added with Add and waits up to timeout for it.
func (t *SupervisorTree) Remove(layer Layer, token suture.ServiceToken, timeout time.Duration) error {
	sup, ok := t.layers[layer]
	if !ok {
		return fmt.Errorf("unknown supervisor %s", layer)
	}
	return sup.RemoveAndWait(token, timeout)
}

// Serve runs the tree until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel receives
// exactly one value when the tree stops and is never closed.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that outlived ShutdownTimeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
