// DebiAI Data Provider - Project Exposure Layer and HTTP API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/debiai-data-provider

// Package registry keeps the set of projects served by the provider.
//
// Thread Safety:
//   - All operations are protected by a read-write mutex
//   - The lock is never held while a declaration is called, except for the
//     validation that runs before a project is inserted
//   - Returned slices are copies
package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/tomtom215/debiai-data-provider/internal/logging"
	"github.com/tomtom215/debiai-data-provider/internal/metrics"
	"github.com/tomtom215/debiai-data-provider/internal/project"
)

// Errors for Registry
var (
	ErrDuplicateProject = errors.New("project already registered")
	ErrNilDeclaration   = errors.New("project declaration cannot be nil")
	ErrEmptyName        = errors.New("project name cannot be empty")
)

// Registry maps project names to their exposures, in registration order.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	projects map[string]*project.Exposure
	opts     []project.Option
}

// New returns an empty registry. opts are applied to every exposure it creates.
func New(opts ...project.Option) *Registry {
	return &Registry{
		projects: make(map[string]*project.Exposure),
		opts:     opts,
	}
}

// NameOf returns the name decl is served under when no explicit name is
// given: its Name method when it has one, otherwise its Go type name.
func NameOf(decl any) string {
	if n, ok := decl.(project.Namer); ok {
		if name := strings.TrimSpace(n.Name()); name != "" {
			return name
		}
	}
	t := reflect.TypeOf(decl)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

// Add validates decl and registers it under name, or under NameOf(decl)
// when name is empty. A name already in use is rejected with
// ErrDuplicateProject. Validation failures are returned unwrapped from the
// exposure layer so callers can match project.ErrConfiguration.
func (r *Registry) Add(ctx context.Context, decl any, name string, opts ...project.Option) (*project.Exposure, error) {
	if decl == nil {
		return nil, ErrNilDeclaration
	}
	if name == "" {
		name = NameOf(decl)
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	allOpts := append(append([]project.Option{}, r.opts...), opts...)
	exposure := project.NewExposure(name, decl, allOpts...)
	if err := exposure.Validate(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateProject, name)
	}
	r.projects[name] = exposure
	r.order = append(r.order, name)
	metrics.SetRegisteredProjects(len(r.order))

	logging.Ctx(ctx).Info().
		Str("project", name).
		Str("declaration", fmt.Sprintf("%T", decl)).
		Msg("Project registered")
	return exposure, nil
}

// Resolve returns the exposure registered under name.
func (r *Registry) Resolve(name string) (*project.Exposure, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.projects[name]
	if !ok {
		return nil, project.NewLookupError(project.KindProject, name)
	}
	return e, nil
}

// Remove unregisters name.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[name]; !ok {
		return project.NewLookupError(project.KindProject, name)
	}
	delete(r.projects, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	metrics.SetRegisteredProjects(len(r.order))
	return nil
}

// List returns the registered exposures in registration order.
func (r *Registry) List() []*project.Exposure {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*project.Exposure, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.projects[name])
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.order...)
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
