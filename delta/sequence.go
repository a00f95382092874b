package delta

// Delta is an ordered sequence of operations describing a change to a
// document, or — when every operation is an insert — the document's
// content itself.
type Delta []Op

// Push appends op to d, merging it into the trailing operation when
// possible and reordering a trailing delete ahead of a newly-arriving
// insert so deletes always sort after inserts at the same position.
// A zero-size op (an empty insert, or a retain/delete of 0) is dropped.
// Push never mutates d; it returns the extended sequence.
func (d Delta) Push(op Op) Delta {
	if Size(op) == 0 {
		return d
	}
	if len(d) == 0 {
		return append(Delta{}, op)
	}
	last := d[len(d)-1]

	if op.IsDelete() && last.IsDelete() && EqualAttrs(last.Attrs, op.Attrs) {
		out := make(Delta, len(d))
		copy(out, d)
		out[len(out)-1] = mergeOps(last, op)
		return out
	}

	if op.IsInsert() && last.IsDelete() {
		if len(d) >= 2 && mergeable(d[len(d)-2], op) {
			out := make(Delta, len(d))
			copy(out, d)
			out[len(out)-2] = mergeOps(d[len(out)-2], op)
			return out
		}
		out := make(Delta, len(d)+1)
		copy(out, d[:len(d)-1])
		out[len(d)-1] = op
		out[len(d)] = last
		return out
	}

	if mergeable(last, op) {
		out := make(Delta, len(d))
		copy(out, d)
		out[len(out)-1] = mergeOps(last, op)
		return out
	}

	out := make(Delta, len(d)+1)
	copy(out, d)
	out[len(d)] = op
	return out
}

func mergeable(a, b Op) bool {
	if a.Action != b.Action || !EqualAttrs(a.Attrs, b.Attrs) {
		return false
	}
	switch a.Value.(type) {
	case string:
		_, ok := b.Value.(string)
		return ok
	case int:
		_, ok := b.Value.(int)
		return ok
	default:
		return false
	}
}

func mergeOps(a, b Op) Op {
	switch av := a.Value.(type) {
	case string:
		return Op{Action: a.Action, Value: av + b.Value.(string), Attrs: a.Attrs}
	case int:
		return Op{Action: a.Action, Value: av + b.Value.(int), Attrs: a.Attrs}
	default:
		return a
	}
}

// chop drops a trailing bare retain (no attributes, not an embed): a
// no-op describing "leave the rest of the document untouched" that
// compose and transform results never need to state explicitly.
func chop(d Delta) Delta {
	if len(d) == 0 {
		return d
	}
	last := d[len(d)-1]
	if last.IsRetain() && !last.HasAttributes() && !last.IsEmbed() {
		return d[:len(d)-1]
	}
	return d
}

// Compact rebuilds d by re-pushing every operation through Push,
// producing the canonical form of a sequence that may have been
// assembled by means other than Push (for instance, decoded from JSON).
func Compact(d Delta) Delta {
	var out Delta
	for _, op := range d {
		out = out.Push(op)
	}
	return out
}

// Length returns the total number of units d spans, summing Size over
// every operation.
func (d Delta) Length() int {
	n := 0
	for _, op := range d {
		n += Size(op)
	}
	return n
}

// BaseLength returns the length of the document d must be applied to:
// the span covered by its retain and delete operations.
func (d Delta) BaseLength() int {
	n := 0
	for _, op := range d {
		if !op.IsInsert() {
			n += Size(op)
		}
	}
	return n
}

// Each calls fn for every operation in d, stopping early if fn returns
// false.
func (d Delta) Each(fn func(op Op) bool) {
	for _, op := range d {
		if !fn(op) {
			return
		}
	}
}

// Equal reports whether a and b consist of the same operations in the
// same order.
func Equal(a, b Delta) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Action != b[i].Action {
			return false
		}
		if !EqualAttrs(a[i].Attrs, b[i].Attrs) {
			return false
		}
		if !valuesEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case Embed:
		bv, ok := b.(Embed)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !valuesEqual(v, bv[k]) {
				return false
			}
		}
		return true
	case Delta:
		bv, ok := b.(Delta)
		return ok && Equal(av, bv)
	default:
		return a == b
	}
}
