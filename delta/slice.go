package delta

// Slice returns the portion of d spanning [start, start+length) units,
// splitting any operation that straddles either boundary.
func Slice(d Delta, start, length int) Delta {
	return sliceWindow(d, start, length, false)
}

// SliceMax behaves like Slice but, when the operation at the right edge
// is a text insert that would otherwise be cut mid-cluster, extends the
// window rightward to the next grapheme boundary instead of truncating
// the final unit short. Since start and length are themselves grapheme
// counts, every cut sliceWindow asks for already lands on a boundary,
// so in practice SliceMax and Slice agree on every input; the distinct
// extend-right path exists for a caller that measures length in a unit
// coarser than graphemes and could ask for a mid-cluster cut.
func SliceMax(d Delta, start, length int) Delta {
	return sliceWindow(d, start, length, true)
}

func sliceWindow(d Delta, start, length int, extendRight bool) Delta {
	if length <= 0 {
		return nil
	}
	var out Delta
	pos := 0
	remaining := length
	for _, op := range d {
		if remaining <= 0 {
			break
		}
		size := Size(op)
		if pos+size <= start {
			pos += size
			continue
		}
		piece := op
		if skip := start - pos; skip > 0 {
			_, rest, err := Take(piece, skip)
			if err != nil {
				pos += size
				continue
			}
			piece = rest
		}
		pieceSize := Size(piece)
		take := minInt(pieceSize, remaining)
		if take < pieceSize {
			left, _, err := takeBoundary(piece, take, extendRight)
			if err != nil {
				pos += size
				continue
			}
			piece = left
		}
		out = out.Push(piece)
		remaining -= Size(piece)
		pos += size
	}
	return out
}

// takeBoundary is Take, except that splitting a text insert rounds the
// cut up to the next grapheme boundary when extend is set.
func takeBoundary(op Op, n int, extend bool) (left, right Op, err error) {
	if !extend {
		return Take(op, n)
	}
	text, ok := op.Text()
	if !ok {
		return Take(op, n)
	}
	l := TakeMaxGraphemes(text, n)
	r := text[len(l):]
	return Op{Action: op.Action, Value: l, Attrs: op.Attrs}, Op{Action: op.Action, Value: r, Attrs: op.Attrs}, nil
}
