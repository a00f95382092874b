package delta

// Compose returns the single change equivalent to applying a and then b
// in sequence: compose(a, b) applied to a document equals b applied to
// (a applied to that document).
//
// Walking rule: whenever b's head is an insert it is material the
// right-hand change adds and is emitted immediately, untouched by
// whatever a's head currently is. Otherwise, whenever a's head is a
// delete it is emitted immediately — a deletion a makes is unaffected
// by anything b does afterward. Once neither fast path applies, both
// heads are synchronized to the shorter of the two and combined by
// composeUnit. When one side runs out first: a's leftover operations
// (which can only be insert or retain, deletes having already drained
// via the fast path) are appended as-is; b's leftover retain or delete
// composes against an implicit retain standing in for the rest of a,
// since a shorter change retains everything past its end — so a
// trailing delete in b still deletes, and a trailing retain's
// attributes still apply. Any trailing insert still goes through the
// fast path above.
func Compose(a, b Delta) (Delta, error) {
	ra, rb := newReader(a), newReader(b)
	var out Delta

	for {
		bHead, bOk := rb.peek()
		if bOk && bHead.IsInsert() {
			out = out.Push(rb.advance(Size(bHead)))
			continue
		}

		aHead, aOk := ra.peek()
		if aOk && aHead.IsDelete() {
			out = out.Push(ra.advance(Size(aHead)))
			continue
		}

		if !aOk && !bOk {
			break
		}
		if !aOk {
			// a ran out of operations first: a shorter change implicitly
			// retains the rest of the document, so b's trailing retain
			// or delete still composes through as if against that
			// implicit retain, rather than being discarded.
			n := Size(bHead)
			y := rb.advance(n)
			x, _ := Retain(n, nil)
			result, ok, err := composeUnit(x, y, n)
			if err != nil {
				return nil, err
			}
			if ok {
				out = out.Push(result)
			}
			continue
		}
		if !bOk {
			out = out.Push(ra.advance(Size(aHead)))
			continue
		}

		n := minInt(Size(aHead), Size(bHead))
		x := ra.advance(n)
		y := rb.advance(n)
		result, ok, err := composeUnit(x, y, n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = out.Push(result)
		}
	}
	return chop(out), nil
}

// composeUnit combines a synchronized pair where x is guaranteed to be
// insert or retain (deletes are drained before reaching here) and y is
// guaranteed to be retain or delete (inserts are drained before
// reaching here too).
func composeUnit(x, y Op, n int) (Op, bool, error) {
	switch {
	case x.IsInsert() && y.IsRetain():
		attrs := ComposeAttrs(x.Attrs, y.Attrs, false)
		if y.IsEmbed() {
			ye, _ := y.Embed()
			handler, ok := lookupEmbedHandler(ye.Type())
			if !ok {
				return Op{}, false, &ErrUnknownEmbedType{Type: ye.Type()}
			}
			base := x.Value
			if xe, ok := x.Embed(); ok {
				base = xe.Value()
			}
			composed, err := handler.Compose(base, ye.Value(), false)
			if err != nil {
				return Op{}, false, err
			}
			return Op{Action: ActionInsert, Value: Embed{ye.Type(): composed}, Attrs: attrs}, true, nil
		}
		if xe, ok := x.Embed(); ok {
			op, _ := InsertEmbed(xe, attrs)
			return op, true, nil
		}
		text, _ := x.Text()
		op, _ := Insert(text, attrs)
		return op, true, nil

	case x.IsInsert() && y.IsDelete():
		return Op{}, false, nil

	case x.IsRetain() && y.IsRetain():
		switch {
		case x.IsEmbed() && y.IsEmbed():
			xe, _ := x.Embed()
			ye, _ := y.Embed()
			if xe.Type() != ye.Type() {
				return Op{}, false, &ErrEmbedTypeMismatch{Left: xe.Type(), Right: ye.Type()}
			}
			handler, ok := lookupEmbedHandler(xe.Type())
			if !ok {
				return Op{}, false, &ErrUnknownEmbedType{Type: xe.Type()}
			}
			composed, err := handler.Compose(xe.Value(), ye.Value(), true)
			if err != nil {
				return Op{}, false, err
			}
			attrs := ComposeAttrs(x.Attrs, y.Attrs, false)
			op, _ := RetainEmbed(Embed{xe.Type(): composed}, attrs)
			return op, true, nil
		case x.IsEmbed():
			xe, _ := x.Embed()
			attrs := ComposeAttrs(x.Attrs, y.Attrs, false)
			op, _ := RetainEmbed(xe, attrs)
			return op, true, nil
		case y.IsEmbed():
			ye, _ := y.Embed()
			attrs := ComposeAttrs(x.Attrs, y.Attrs, true)
			op, _ := RetainEmbed(ye, attrs)
			return op, true, nil
		default:
			attrs := ComposeAttrs(x.Attrs, y.Attrs, false)
			op, _ := Retain(n, attrs)
			return op, true, nil
		}

	case x.IsRetain() && y.IsDelete():
		op, _ := Delete(n)
		op.Attrs = y.Attrs
		return op, true, nil
	}
	return Op{}, false, nil
}
