package delta

import "sync/atomic"

// EmbedHandler teaches the algebra how to compose, transform and invert
// a specific embed type's opaque value, so that a "delta" (nested
// document) or an "image" (attribute-only) embed can participate in
// compose/transform the same way a retain or insert does.
type EmbedHandler interface {
	// Compose combines a base value with an applied value. isRetain
	// distinguishes retain-over-embed (the base is being advanced past,
	// both values are embeds of this type) from insert-over-retain
	// (the base is an insert, the applied side is a retain carrying
	// embed-local edits, such as a nested delta).
	Compose(base, applied any, isRetain bool) (any, error)
	// Transform rebases applied against base; priority breaks ties the
	// same way it does for attributes.
	Transform(base, applied any, priority bool) (any, error)
	// Invert returns the value that undoes applied given the original
	// base value it was composed onto.
	Invert(applied, base any) (any, error)
}

var embedRegistry atomic.Pointer[map[string]EmbedHandler]

func init() {
	m := map[string]EmbedHandler{
		"delta": deltaEmbedHandler{},
	}
	embedRegistry.Store(&m)
}

// RegisterEmbedHandler installs h as the handler for embeds whose single
// key equals typ. Intended for use during process initialization;
// concurrent calls are safe but the registry is meant to be read-mostly,
// installed once and then consulted lock-free for the rest of the
// process's life.
func RegisterEmbedHandler(typ string, h EmbedHandler) {
	for {
		old := embedRegistry.Load()
		next := make(map[string]EmbedHandler, len(*old)+1)
		for k, v := range *old {
			next[k] = v
		}
		next[typ] = h
		if embedRegistry.CompareAndSwap(old, &next) {
			return
		}
	}
}

// lookupEmbedHandler resolves the handler for typ against a single
// consistent snapshot of the registry.
func lookupEmbedHandler(typ string) (EmbedHandler, bool) {
	m := *embedRegistry.Load()
	h, ok := m[typ]
	return h, ok
}

// deltaEmbedHandler lets a retain/insert embed carry a nested Delta
// (e.g. a table cell or a comment thread), composing, transforming and
// inverting it by recursing into the algebra itself.
type deltaEmbedHandler struct{}

func (deltaEmbedHandler) Compose(base, applied any, isRetain bool) (any, error) {
	bd, err := asDelta(base)
	if err != nil {
		return nil, err
	}
	ad, err := asDelta(applied)
	if err != nil {
		return nil, err
	}
	return Compose(bd, ad)
}

func (deltaEmbedHandler) Transform(base, applied any, priority bool) (any, error) {
	bd, err := asDelta(base)
	if err != nil {
		return nil, err
	}
	ad, err := asDelta(applied)
	if err != nil {
		return nil, err
	}
	return Transform(bd, ad, priority)
}

func (deltaEmbedHandler) Invert(applied, base any) (any, error) {
	ad, err := asDelta(applied)
	if err != nil {
		return nil, err
	}
	bd, err := asDelta(base)
	if err != nil {
		return nil, err
	}
	return Invert(ad, bd)
}

// asDelta normalizes whatever a "delta" embed's value decoded to — a
// Delta built in-process, or a []any produced by a generic JSON decode
// of the embed map — into a Delta.
func asDelta(v any) (Delta, error) {
	switch x := v.(type) {
	case Delta:
		return x, nil
	case []Op:
		return Delta(x), nil
	case []any:
		out := make(Delta, 0, len(x))
		for _, raw := range x {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, &ErrInvalidOp{Reason: "nested delta embed element is not an object"}
			}
			op, err := opFromGeneric(m)
			if err != nil {
				return nil, err
			}
			out = append(out, op)
		}
		return out, nil
	default:
		return nil, &ErrInvalidOp{Reason: "embed value is not a nested delta"}
	}
}
