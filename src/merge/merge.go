// Package merge combines configuration trees.
//
// Mappings merge key by key, sequences concatenate base-first, and any other
// pairing is resolved in favour of the overlay. A pairing where one side is a
// mapping or sequence and the other is something else is a Conflict: it is
// logged at warn level and, under PolicyStrict, aborts the merge.
package merge

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Map is a configuration tree node keyed by field name.
type Map = map[string]any

// Kind classifies a tree value for merge purposes.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Policy controls what happens when a Conflict is found.
type Policy int

const (
	// PolicyOverlayWins replaces the base value with the overlay value and
	// reports the conflict.
	PolicyOverlayWins Policy = iota
	// PolicyStrict aborts the merge on the first conflict.
	PolicyStrict
)

// ErrTypeConflict is matched by every *ConflictError.
var ErrTypeConflict = errors.New("merge: type conflict")

// Conflict records a key whose base and overlay values have incompatible kinds.
type Conflict struct {
	Path    string
	Base    Kind
	Overlay Kind
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s in base, %s in overlay", c.Path, c.Base, c.Overlay)
}

// ConflictError is returned under PolicyStrict.
type ConflictError struct {
	Conflict Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("merge: type conflict at %s", e.Conflict)
}

func (e *ConflictError) Unwrap() error { return ErrTypeConflict }

type options struct {
	policy Policy
	hook   func(Conflict)
	logger *zerolog.Logger
}

// Option configures a Merge call.
type Option func(*options)

// WithPolicy sets the conflict policy. Default: PolicyOverlayWins.
func WithPolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// WithConflictHook registers fn to receive every conflict, in key order.
func WithConflictHook(fn func(Conflict)) Option {
	return func(o *options) { o.hook = fn }
}

// WithLogger routes conflict diagnostics to l instead of the global logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Merge returns a new tree holding overlay merged onto base.
// Neither input is modified; the result shares no mappings or sequences with them.
func Merge(base, overlay Map, opts ...Option) (Map, error) {
	o := options{policy: PolicyOverlayWins, logger: &log.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	return o.mergeMaps(nil, base, overlay)
}

// Apply merges every overlay onto base in order.
func Apply(base Map, overlays []Map, opts ...Option) (Map, error) {
	out := Clone(base)
	for i, ov := range overlays {
		merged, err := Merge(out, ov, opts...)
		if err != nil {
			return nil, fmt.Errorf("overlay %d: %w", i, err)
		}
		out = merged
	}
	return out, nil
}

func (o *options) mergeMaps(path []string, base, overlay Map) (Map, error) {
	out := make(Map, len(base)+len(overlay))
	for k, v := range base {
		if _, ok := overlay[k]; !ok {
			out[k] = clone(v)
		}
	}

	// Sorted so conflicts are reported in a stable order.
	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ov := overlay[k]
		bv, ok := base[k]
		if !ok {
			out[k] = clone(ov)
			continue
		}
		v, err := o.mergeValues(append(path, k), bv, ov)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (o *options) mergeValues(path []string, base, overlay any) (any, error) {
	bk, vk := kindOf(base), kindOf(overlay)
	switch {
	case bk == KindMapping && vk == KindMapping:
		return o.mergeMaps(path, asMap(base), asMap(overlay))
	case bk == KindSequence && vk == KindSequence:
		bs, vs := asSlice(base), asSlice(overlay)
		out := make([]any, 0, len(bs)+len(vs))
		for _, v := range bs {
			out = append(out, clone(v))
		}
		for _, v := range vs {
			out = append(out, clone(v))
		}
		return out, nil
	case bk != vk:
		c := Conflict{Path: strings.Join(path, "."), Base: bk, Overlay: vk}
		if o.hook != nil {
			o.hook(c)
		}
		if o.policy == PolicyStrict {
			return nil, &ConflictError{Conflict: c}
		}
		o.logger.Warn().
			Str("path", c.Path).
			Str("base", bk.String()).
			Str("overlay", vk.String()).
			Msg("merge type conflict, overlay value wins")
	}
	return clone(overlay), nil
}

// KindOf reports how Merge treats v.
func KindOf(v any) Kind { return kindOf(v) }

func kindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindScalar
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindMapping
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return KindSequence
		}
	}
	return KindScalar
}

func asMap(v any) Map {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	rv := reflect.ValueOf(v)
	out := make(Map, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// Clone deep-copies a tree.
func Clone(m Map) Map {
	if m == nil {
		return Map{}
	}
	return asMapClone(m)
}

func asMapClone(m Map) Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func clone(v any) any {
	switch kindOf(v) {
	case KindMapping:
		return asMapClone(asMap(v))
	case KindSequence:
		src := asSlice(v)
		out := make([]any, len(src))
		for i, e := range src {
			out[i] = clone(e)
		}
		return out
	}
	return v
}
