package delta

// ComposeAttrs merges b onto a. A key present in b with a nil value
// removes the key from the result (the null sentinel) unless keepNulls
// is set, in which case the nil is kept verbatim — used when an integer
// retain is composed with a retain-embed, so the removal survives in the
// resulting retain for whatever that retain is later applied to. An
// insert composed with a retain passes false: the removal is realized
// on the inserted content and the null is dropped.
func ComposeAttrs(a, b Attrs, keepNulls bool) Attrs {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(Attrs, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if v == nil && !keepNulls {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TransformAttrs rebases b's attribute changes against a's. When a key
// is set by both sides, priority decides who wins: if priority is true
// a's value is kept (b's change to that key is dropped); otherwise b's
// value passes through. Keys only touched by one side always pass
// through unchanged.
func TransformAttrs(a, b Attrs, priority bool) Attrs {
	if len(b) == 0 {
		return nil
	}
	if len(a) == 0 {
		return cloneAttrs(b)
	}
	out := make(Attrs, len(b))
	for k, v := range b {
		if _, conflict := a[k]; conflict && priority {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DiffAttrs returns the attribute changes needed to turn a into b: keys
// present in b with a different (or absent in a) value, plus a null for
// every key present in a but absent from b.
func DiffAttrs(a, b Attrs) Attrs {
	out := Attrs{}
	for k, v := range b {
		if av, ok := a[k]; !ok || av != v {
			out[k] = v
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = nil
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// EqualAttrs reports whether a and b carry the same keys and values,
// treating a nil map and an empty map as equal.
func EqualAttrs(a, b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || bv != v {
			return false
		}
	}
	return true
}

func cloneAttrs(a Attrs) Attrs {
	if len(a) == 0 {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
