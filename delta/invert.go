package delta

// Invert returns the change that, applied after change, restores a
// document to the state it was in before change was applied. base is
// the document change was applied to (an all-insert Delta).
//
// Invert(change, base) applied after change always reproduces base: for
// any document d, Apply(Apply(d, change), Invert(change, base)) == d
// when base equals d's content as a Delta.
func Invert(change Delta, base Delta) (Delta, error) {
	var inverted Delta
	baseIndex := 0

	for _, op := range change {
		switch {
		case op.IsInsert():
			del, err := Delete(Size(op))
			if err != nil {
				return nil, err
			}
			inverted = inverted.Push(del)

		case op.IsRetain() && !op.HasAttributes() && !op.IsEmbed():
			r, err := Retain(Size(op), nil)
			if err != nil {
				return nil, err
			}
			inverted = inverted.Push(r)
			baseIndex += Size(op)

		default:
			length := Size(op)
			slice := Slice(base, baseIndex, length)
			for _, baseOp := range slice {
				switch {
				case op.IsDelete():
					inverted = inverted.Push(baseOp)
				case op.IsEmbed():
					baseEmbed, ok := baseOp.Embed()
					if !ok {
						return nil, &ErrInvalidOp{Reason: "retain-embed inverts against a non-embed base unit"}
					}
					opEmbed, _ := op.Embed()
					if baseEmbed.Type() != opEmbed.Type() {
						return nil, &ErrEmbedTypeMismatch{Left: opEmbed.Type(), Right: baseEmbed.Type()}
					}
					handler, ok := lookupEmbedHandler(opEmbed.Type())
					if !ok {
						return nil, &ErrUnknownEmbedType{Type: opEmbed.Type()}
					}
					invertedValue, err := handler.Invert(opEmbed.Value(), baseEmbed.Value())
					if err != nil {
						return nil, err
					}
					attrs := InvertAttrs(op.Attrs, baseOp.Attrs)
					r, err := RetainEmbed(Embed{opEmbed.Type(): invertedValue}, attrs)
					if err != nil {
						return nil, err
					}
					inverted = inverted.Push(r)
				default:
					attrs := InvertAttrs(op.Attrs, baseOp.Attrs)
					r, err := Retain(Size(baseOp), attrs)
					if err != nil {
						return nil, err
					}
					inverted = inverted.Push(r)
				}
			}
			baseIndex += length
		}
	}
	return inverted, nil
}

// InvertAttrs returns the attribute edit that undoes applying attr onto
// a unit that previously carried base: every key attr touches reverts
// to its value in base, or is removed (the null sentinel) if base never
// set it. Keys base carries but attr never touched are left alone.
func InvertAttrs(attr, base Attrs) Attrs {
	if len(attr) == 0 {
		return nil
	}
	out := make(Attrs, len(attr))
	for k := range attr {
		if bv, ok := base[k]; ok {
			out[k] = bv
		} else {
			out[k] = nil
		}
	}
	return out
}
