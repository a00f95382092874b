package delta

// Transform rebases b so it still applies cleanly after a, given that
// both were produced against the same base document. priority breaks
// ties between two inserts landing at the same position: when true, a's
// insert is treated as already present and b's matching insert is
// pushed after it; when false, b's insert is pushed first.
//
// transform(a, b, priority) satisfies compose(a, transform(a, b, priority))
// == compose(b, transform(b, a, !priority)) for well-formed a and b.
func Transform(a, b Delta, priority bool) (Delta, error) {
	ra, rb := newReader(a), newReader(b)
	var out Delta

	for {
		aHead, aOk := ra.peek()
		bHead, bOk := rb.peek()

		if !aOk && !bOk {
			break
		}

		if aOk && aHead.IsInsert() && (priority || !bOk || !bHead.IsInsert()) {
			n := Size(aHead)
			ra.advance(n)
			r, _ := Retain(n, nil)
			out = out.Push(r)
			continue
		}
		if bOk && bHead.IsInsert() {
			out = out.Push(rb.advance(Size(bHead)))
			continue
		}

		if !bOk {
			// a's remaining retain/delete has nothing left in b to
			// rebase; the walk ends here.
			break
		}
		if !aOk {
			out = out.Push(rb.advance(Size(bHead)))
			continue
		}

		n := minInt(Size(aHead), Size(bHead))
		x := ra.advance(n)
		y := rb.advance(n)
		result, ok, err := transformUnit(x, y, n, priority)
		if err != nil {
			return nil, err
		}
		if ok {
			out = out.Push(result)
		}
	}
	return chop(out), nil
}

// transformUnit combines a synchronized pair where neither x nor y is
// an insert (both fast paths above have already drained those).
func transformUnit(x, y Op, n int, priority bool) (Op, bool, error) {
	if x.IsDelete() {
		return Op{}, false, nil
	}
	if y.IsDelete() {
		return y, true, nil
	}

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
		transformed, err := handler.Transform(xe.Value(), ye.Value(), priority)
		if err != nil {
			return Op{}, false, err
		}
		attrs := TransformAttrs(x.Attrs, y.Attrs, priority)
		op, _ := RetainEmbed(Embed{xe.Type(): transformed}, attrs)
		return op, true, nil
	case y.IsEmbed():
		ye, _ := y.Embed()
		attrs := TransformAttrs(x.Attrs, y.Attrs, priority)
		op, _ := RetainEmbed(ye, attrs)
		return op, true, nil
	default:
		attrs := TransformAttrs(x.Attrs, y.Attrs, priority)
		op, _ := Retain(n, attrs)
		return op, true, nil
	}
}

// TransformPosition rebases a single cursor offset across change,
// moving it past inserts and pulling it back over deletes the same way
// the operations themselves would shift surrounding content. priority
// decides the outcome when index sits exactly at an insert's boundary:
// true leaves it in front of that insert, false carries it past.
func TransformPosition(index int, change Delta, priority bool) int {
	offset := 0
	for _, op := range change {
		if offset > index {
			break
		}
		length := Size(op)
		switch {
		case op.IsDelete():
			index -= minInt(length, index-offset)
			continue
		case op.IsInsert() && (offset < index || !priority):
			index += length
		}
		offset += length
	}
	return index
}
