// Package world implements the authoritative ECS store of core spec §3
// ("World contents") and §4.4: resources, entities and their components,
// a filter-identity-keyed match-set cache, and the deferred command buffer
// that keeps iteration snapshots coherent (spec §5).
//
// There is no ECS store in the teacher (go-dws has no ECS concept at all);
// the object/metadata-registry shape here is grounded structurally on the
// teacher's runtime object and method registries
// (internal/interp/runtime/object.go, method_registry.go — name-keyed maps
// with explicit existence checks returning typed errors) and on the
// filter/match-set discipline sketched in other_examples'
// Leopotam-go-ecs/system.go, with the exact field layout (entities, a
// filters/matches pair) following original_source/src/eval/ecs.rs.
package world

import (
	"github.com/cwbudde/starlang/internal/ast"
	"github.com/cwbudde/starlang/internal/defs"
	"github.com/cwbudde/starlang/internal/diag"
	"github.com/cwbudde/starlang/internal/value"
)

type commandKind int

const (
	cmdSpawn commandKind = iota
	cmdDelete
	cmdNewResource
)

type command struct {
	kind       commandKind
	components []*value.Struct // cmdSpawn
	entity     value.Entity    // cmdDelete
	resource   *value.Struct   // cmdNewResource
}

// World is the ECS store. The zero value is not usable; call New.
type World struct {
	defs *defs.Table

	counter uint64

	resources map[string]*value.Struct
	entities  map[value.Entity]map[string]value.Value

	// filterCache maps an entity-filter's AST identity to its current match
	// snapshot. Filters are compared by AST pointer, not structural
	// equality (core spec §3 "Filter identity"), so this cache stays sound
	// across repeated invocations of the same system.
	filterCache map[*ast.EntityFilter]map[value.Entity]struct{}
	// entityFilters is the reverse index: which filters (by AST identity)
	// each live entity currently satisfies.
	entityFilters map[value.Entity]map[*ast.EntityFilter]struct{}

	pending []command
}

// New creates an empty World bound to the program's definitions table.
func New(d *defs.Table) *World {
	return &World{
		defs:          d,
		resources:     make(map[string]*value.Struct),
		entities:      make(map[value.Entity]map[string]value.Value),
		filterCache:   make(map[*ast.EntityFilter]map[value.Entity]struct{}),
		entityFilters: make(map[value.Entity]map[*ast.EntityFilter]struct{}),
	}
}

// GetResource returns the singleton resource named name.
func (w *World) GetResource(name string) (*value.Struct, error) {
	r, ok := w.resources[name]
	if !ok {
		return nil, diag.New(diag.NameError, "no such resource %q", name)
	}
	return r, nil
}

// GetComponent returns entity's component named name.
func (w *World) GetComponent(e value.Entity, name string) (value.Value, error) {
	comps, ok := w.entities[e]
	if !ok {
		return nil, diag.New(diag.EntityError, "unknown entity %v", e)
	}
	v, ok := comps[name]
	if !ok {
		return nil, diag.New(diag.ComponentError, "entity %v has no component %q", e, name)
	}
	return v, nil
}

// HasEntity reports whether e is currently live.
func (w *World) HasEntity(e value.Entity) bool {
	_, ok := w.entities[e]
	return ok
}

// QueueSpawn enqueues a spawn command; the entity is not created until the
// next Flush (core spec §4.4 "Spawn").
func (w *World) QueueSpawn(components []*value.Struct) error {
	for _, c := range components {
		if _, err := w.defs.Component(c.Schema); err != nil {
			return diag.New(diag.TypeError, "%q is not a declared component schema", c.Schema)
		}
	}
	w.pending = append(w.pending, command{kind: cmdSpawn, components: components})
	return nil
}

// QueueDelete enqueues a delete command.
func (w *World) QueueDelete(e value.Entity) {
	w.pending = append(w.pending, command{kind: cmdDelete, entity: e})
}

// QueueNewResource enqueues a new-resource command.
func (w *World) QueueNewResource(s *value.Struct) error {
	if _, err := w.defs.Resource(s.Schema); err != nil {
		return diag.New(diag.TypeError, "%q is not a declared resource schema", s.Schema)
	}
	w.pending = append(w.pending, command{kind: cmdNewResource, resource: s})
	return nil
}

// DiscardPending drops all buffered commands without applying them (core
// spec §7 "no partial results are committed" on a fatal error).
func (w *World) DiscardPending() {
	w.pending = nil
}

// FilterEntities returns the current match snapshot for f, populating the
// cache on first touch (core spec §4.4 "Filter cache population").
func (w *World) FilterEntities(f *ast.EntityFilter) ([]value.Entity, error) {
	if _, ok := w.filterCache[f]; !ok {
		if err := w.populateFilterCache(f); err != nil {
			return nil, err
		}
	}
	matches := w.filterCache[f]
	out := make([]value.Entity, 0, len(matches))
	for e := range matches {
		out = append(out, e)
	}
	return out, nil
}

func (w *World) populateFilterCache(f *ast.EntityFilter) error {
	for _, arg := range f.Args {
		if _, err := w.defs.Component(arg.TypeName); err != nil {
			return diag.New(diag.TypeError, "%q is not a declared component schema", arg.TypeName)
		}
	}
	matches := make(map[value.Entity]struct{})
	for e, comps := range w.entities {
		if entitySatisfies(comps, f) {
			matches[e] = struct{}{}
			w.addEntityFilter(e, f)
		}
	}
	w.filterCache[f] = matches
	return nil
}

func entitySatisfies(comps map[string]value.Value, f *ast.EntityFilter) bool {
	for _, arg := range f.Args {
		if _, ok := comps[arg.TypeName]; !ok {
			return false
		}
	}
	return true
}

func (w *World) addEntityFilter(e value.Entity, f *ast.EntityFilter) {
	set, ok := w.entityFilters[e]
	if !ok {
		set = make(map[*ast.EntityFilter]struct{})
		w.entityFilters[e] = set
	}
	set[f] = struct{}{}
}

// Flush drains the pending command buffer in FIFO order, applying each
// command and keeping every touched filter cache coherent (core spec §4.4
// "flush", §5 "Ordering guarantees").
func (w *World) Flush() error {
	cmds := w.pending
	w.pending = nil
	for _, c := range cmds {
		switch c.kind {
		case cmdSpawn:
			w.applySpawn(c.components)
		case cmdDelete:
			if err := w.applyDelete(c.entity); err != nil {
				return err
			}
		case cmdNewResource:
			if err := w.applyNewResource(c.resource); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *World) applySpawn(components []*value.Struct) value.Entity {
	id := value.Entity(w.counter)
	w.counter++

	comps := make(map[string]value.Value, len(components))
	for _, c := range components {
		comps[c.Schema] = c
	}
	w.entities[id] = comps

	// Only filters already present in the cache need to be considered;
	// untouched filters populate lazily on first FilterEntities call (core
	// spec §4.4 "Spawn").
	for f, matches := range w.filterCache {
		if entitySatisfies(comps, f) {
			matches[id] = struct{}{}
			w.addEntityFilter(id, f)
		}
	}
	return id
}

func (w *World) applyDelete(e value.Entity) error {
	if !w.HasEntity(e) {
		return diag.New(diag.EntityError, "cannot delete unknown entity %v", e)
	}
	for f := range w.entityFilters[e] {
		delete(w.filterCache[f], e)
	}
	delete(w.entityFilters, e)
	delete(w.entities, e)
	return nil
}

func (w *World) applyNewResource(s *value.Struct) error {
	if _, exists := w.resources[s.Schema]; exists {
		return diag.New(diag.ConflictError, "resource %q already exists", s.Schema)
	}
	w.resources[s.Schema] = s
	return nil
}
