package delta

import "testing"

func TestPush_MergesAdjacentInserts(t *testing.T) {
	var d Delta
	d = d.Push(mustOp(Insert("Hello", nil)))
	d = d.Push(mustOp(Insert(" World", nil)))
	if len(d) != 1 {
		t.Fatalf("len(d) = %d, want 1", len(d))
	}
	if text, _ := d[0].Text(); text != "Hello World" {
		t.Fatalf("d[0] text = %q, want %q", text, "Hello World")
	}
}

func TestPush_InsertJumpsAheadOfTrailingDelete(t *testing.T) {
	var d Delta
	d = d.Push(mustOp(Delete(3)))
	d = d.Push(mustOp(Insert("X", nil)))
	if len(d) != 2 {
		t.Fatalf("len(d) = %d, want 2", len(d))
	}
	if !d[0].IsInsert() || !d[1].IsDelete() {
		t.Fatalf("d = %#v, want [insert, delete]", d)
	}
}

func TestPush_DropsZeroLengthOps(t *testing.T) {
	var d Delta
	d = d.Push(mustOp(Insert("Hi", nil)))
	d = d.Push(Op{Action: ActionRetain, Value: 0})
	if len(d) != 1 {
		t.Fatalf("len(d) = %d, want 1 (zero-length retain should be dropped)", len(d))
	}
}

func TestCompact_ProducesCanonicalForm(t *testing.T) {
	raw := Delta{
		mustOp(Insert("Hello", nil)),
		mustOp(Insert(" World", nil)),
		mustOp(Retain(3, nil)),
		mustOp(Retain(2, nil)),
	}
	got := Compact(raw)
	want := Delta{
		mustOp(Insert("Hello World", nil)),
		mustOp(Retain(5, nil)),
	}
	if !Equal(got, want) {
		t.Fatalf("Compact() = %#v, want %#v", got, want)
	}
}

func TestDelta_Length(t *testing.T) {
	d := Delta{
		mustOp(Insert("Hi", nil)),
		mustOp(Retain(3, nil)),
		mustOp(Delete(2)),
	}
	if got := d.Length(); got != 7 {
		t.Fatalf("Length() = %d, want 7", got)
	}
	if got := d.BaseLength(); got != 5 {
		t.Fatalf("BaseLength() = %d, want 5", got)
	}
}

func TestDeltaEmbedHandler_RecursesIntoNestedDelta(t *testing.T) {
	nested := Delta{mustOp(Insert("cell", nil))}
	edit := Delta{mustOp(Retain(4, nil)), mustOp(Insert(" two", nil))}
	a := Delta{mustOp(InsertEmbed(Embed{"delta": nested}, nil))}
	b := Delta{mustOp(RetainEmbed(Embed{"delta": edit}, nil))}

	got, err := Compose(a, b)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	e, ok := got[0].Embed()
	if !ok || e.Type() != "delta" {
		t.Fatalf("got[0] = %#v, want a delta embed", got[0])
	}
	nestedResult, ok := e.Value().(Delta)
	if !ok {
		t.Fatalf("nested value is %T, want Delta", e.Value())
	}
	if PlainText(nestedResult) != "cell two" {
		t.Fatalf("nested delta = %q, want %q", PlainText(nestedResult), "cell two")
	}
}
