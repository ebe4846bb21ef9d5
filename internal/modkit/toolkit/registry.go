package toolkit

import (
	"context"
	"reflect"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"liveness/internal/platform/bind"
	perr "liveness/internal/platform/errors"
	"liveness/internal/platform/logger"
)

// Registry owns the tool table. It is safe for concurrent Invoke and mutation
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]*Tool
	listeners map[int]func()
	nextID    int
	log       *logger.Logger
}

// New returns an empty registry
func New() *Registry {
	return &Registry{
		tools:     map[string]*Tool{},
		listeners: map[int]func(){},
		log:       logger.Named("toolkit"),
	}
}

// OnListChanged subscribes fn to registrations and mutations; the returned func unsubscribes
func (r *Registry) OnListChanged(fn func()) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// listChanged runs listeners outside the lock so they may call back into the registry
func (r *Registry) listChanged() {
	r.mu.RLock()
	fns := make([]func(), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// Register adds a tool under name and returns its handle
func (r *Registry) Register(name string, cfg Config, h Handler) (*Tool, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, perr.InvalidArgf("tool %s: handler is required", name)
	}
	in, schema, err := inputOf(cfg.Input)
	if err != nil {
		return nil, perr.WithOp(err, name)
	}

	t := &Tool{
		reg:         r,
		name:        name,
		description: cfg.Description,
		input:       in,
		schema:      schema,
		meta:        cloneMeta(cfg.Metadata),
		handler:     h,
		enabled:     !cfg.Disabled,
	}

	r.mu.Lock()
	if _, taken := r.tools[name]; taken {
		r.mu.Unlock()
		return nil, perr.Duplicatef("tool %s is already registered", name)
	}
	r.tools[name] = t
	r.mu.Unlock()

	r.log.Debug().Str("tool", name).Bool("enabled", t.enabled).Msg("tool registered")
	r.listChanged()
	return t, nil
}

// Lookup returns the handle registered under name
func (r *Registry) Lookup(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the enabled tools sorted by name
func (r *Registry) List() []Descriptor {
	return r.describe(false)
}

// All returns every registered tool, enabled or not, sorted by name
func (r *Registry) All() []Descriptor {
	return r.describe(true)
}

func (r *Registry) describe(all bool) []Descriptor {
	r.mu.RLock()
	out := make([]Descriptor, 0, len(r.tools))
	for _, t := range r.tools {
		if !all && !t.enabled {
			continue
		}
		out = append(out, t.describeLocked())
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b Descriptor) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Enabled reports whether name is registered and switched on
func (r *Registry) Enabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return ok && t.enabled
}

// Invoke dispatches req to its tool
// Registry level failures (unknown, disabled, bad arguments) come back as errors and the
// handler is not called. Handler failures and panics come back as error flagged results
func (r *Registry) Invoke(ctx context.Context, req Request) (*Result, error) {
	r.mu.RLock()
	t, ok := r.tools[req.Name]
	var (
		enabled bool
		input   reflect.Type
		handler Handler
	)
	if ok {
		enabled, input, handler = t.enabled, t.input, t.handler
	}
	r.mu.RUnlock()

	if !ok {
		return nil, perr.NotFoundf("tool %s not found", req.Name)
	}
	if !enabled {
		return nil, perr.Disabledf("tool %s is disabled", req.Name)
	}

	var in any
	if input != nil {
		v, err := bind.Into(input, req.Arguments)
		if err != nil {
			return nil, perr.WithOp(perr.Wrapf(err, perr.CodeOf(err), "invalid arguments for tool %s", req.Name), req.Name)
		}
		in = v
	}

	ctx = logger.WithTool(ctx, req.Name)
	call := &Call{
		tool:     req.Name,
		token:    req.ProgressToken,
		input:    in,
		args:     req.Arguments,
		notifier: req.Notifier,
		log:      logger.C(ctx),
	}
	return r.dispatch(ctx, handler, call), nil
}

func (r *Registry) dispatch(ctx context.Context, h Handler, call *Call) (res *Result) {
	defer func() {
		if v := recover(); v != nil {
			call.log.Error().
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Msg("tool handler panicked")
			res = ErrorResult(perr.PanicErrf("tool %s failed: %v", call.tool, v))
		}
	}()

	out, err := h(ctx, call)
	if err != nil {
		call.log.Warn().Err(err).Str("code", perr.CodeOf(err).String()).Msg("tool returned error")
		return ErrorResult(err)
	}
	if out == nil {
		return Text()
	}
	return out
}

func cloneMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
