package toolkit

import (
	"bytes"
	"encoding/json"
	"reflect"

	perr "liveness/internal/platform/errors"
)

// Tool is the handle returned by Register. Its fields are guarded by the registry lock
type Tool struct {
	reg         *Registry
	name        string
	description string
	input       reflect.Type
	schema      json.RawMessage
	meta        map[string]any
	handler     Handler
	enabled     bool
}

// Update lists the fields to change; nil fields are left alone
type Update struct {
	// Name renames the tool; the empty string removes it
	Name        *string
	Description *string
	Input       any
	Metadata    map[string]any
	Handler     Handler
	Enabled     *bool
}

// Name returns the current name, empty once removed
func (t *Tool) Name() string {
	t.reg.mu.RLock()
	defer t.reg.mu.RUnlock()
	return t.name
}

// IsEnabled reports whether the tool is switched on
func (t *Tool) IsEnabled() bool {
	t.reg.mu.RLock()
	defer t.reg.mu.RUnlock()
	return t.enabled
}

// Removed reports whether the tool was removed from its registry
func (t *Tool) Removed() bool { return t.Name() == "" }

// Enable switches the tool on
func (t *Tool) Enable() error {
	on := true
	return t.Update(Update{Enabled: &on})
}

// Disable switches the tool off; it disappears from List and Invoke refuses it
func (t *Tool) Disable() error {
	off := false
	return t.Update(Update{Enabled: &off})
}

// Remove drops the tool by renaming it to the empty key
func (t *Tool) Remove() error {
	empty := ""
	return t.Update(Update{Name: &empty})
}

// Update applies u atomically and fires one list changed notification
// An update that leaves the listed fields as they were fires nothing
func (t *Tool) Update(u Update) error {
	var (
		in     reflect.Type
		schema json.RawMessage
	)
	if u.Input != nil {
		var err error
		if in, schema, err = inputOf(u.Input); err != nil {
			return err
		}
	}

	r := t.reg
	r.mu.Lock()
	if t.name == "" || r.tools[t.name] != t {
		r.mu.Unlock()
		return perr.NotFoundf("tool was removed")
	}

	changed := false
	if u.Name != nil && *u.Name != t.name {
		next := *u.Name
		if next != "" {
			if _, taken := r.tools[next]; taken {
				r.mu.Unlock()
				return perr.Duplicatef("tool %s is already registered", next)
			}
		}
		delete(r.tools, t.name)
		t.name = next
		if next != "" {
			r.tools[next] = t
		}
		changed = true
	}
	if u.Description != nil && *u.Description != t.description {
		t.description = *u.Description
		changed = true
	}
	if in != nil && (in != t.input || !bytes.Equal(schema, t.schema)) {
		t.input, t.schema = in, schema
		changed = true
	}
	if u.Metadata != nil && !reflect.DeepEqual(u.Metadata, t.meta) {
		t.meta = cloneMeta(u.Metadata)
		changed = true
	}
	// handlers are not comparable and never show in the list
	if u.Handler != nil {
		t.handler = u.Handler
	}
	if u.Enabled != nil && *u.Enabled != t.enabled {
		t.enabled = *u.Enabled
		changed = true
	}
	name, enabled := t.name, t.enabled
	r.mu.Unlock()

	if !changed {
		return nil
	}
	r.log.Debug().Str("tool", name).Bool("enabled", enabled).Bool("removed", name == "").Msg("tool updated")
	r.listChanged()
	return nil
}

func (t *Tool) describeLocked() Descriptor {
	schema := t.schema
	if schema == nil {
		schema = emptyObjectSchema
	}
	return Descriptor{
		Name:        t.name,
		Description: t.description,
		InputSchema: append([]byte(nil), schema...),
		Metadata:    cloneMeta(t.meta),
		Enabled:     t.enabled,
	}
}
