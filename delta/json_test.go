package delta

import (
	"encoding/json"
	"testing"
)

func TestOpJSON_RoundTrip(t *testing.T) {
	op, _ := Insert("Hello", Attrs{"bold": true})
	data, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Op
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !valuesEqual(op.Value, got.Value) || !EqualAttrs(op.Attrs, got.Attrs) || op.Action != got.Action {
		t.Fatalf("round trip mismatch: got %#v, want %#v", got, op)
	}
}

func TestOpJSON_WireShape(t *testing.T) {
	op, _ := Retain(5, Attrs{"color": "red"})
	data, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := generic["retain"]; !ok {
		t.Fatalf("wire shape missing \"retain\" key: %s", data)
	}
	attrs, ok := generic["attributes"].(map[string]any)
	if !ok || attrs["color"] != "red" {
		t.Fatalf("wire shape missing attributes.color: %s", data)
	}
}

func TestOpJSON_OmitsAttributesWhenAbsent(t *testing.T) {
	op, _ := Delete(3)
	data, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := generic["attributes"]; ok {
		t.Fatalf("attributes key should be omitted when empty: %s", data)
	}
}

func TestDeltaJSON_Decode(t *testing.T) {
	raw := `[{"insert":"Hi"},{"retain":2,"attributes":{"bold":true}},{"delete":3}]`
	var d Delta
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(d) != 3 {
		t.Fatalf("len(d) = %d, want 3", len(d))
	}
	if text, ok := d[0].Text(); !ok || text != "Hi" {
		t.Fatalf("d[0] = %#v, want insert(\"Hi\")", d[0])
	}
	if n, ok := d[1].Len(); !ok || n != 2 || !d[1].Attrs["bold"].(bool) {
		t.Fatalf("d[1] = %#v, want retain(2, {bold:true})", d[1])
	}
	if n, ok := d[2].Len(); !ok || n != 3 || !d[2].IsDelete() {
		t.Fatalf("d[2] = %#v, want delete(3)", d[2])
	}
}

func TestOpJSON_EmbedShape(t *testing.T) {
	op, _ := InsertEmbed(Embed{"image": "https://example.com/a.png"}, nil)
	data, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Op
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	e, ok := got.Embed()
	if !ok || e.Type() != "image" || e.Value() != "https://example.com/a.png" {
		t.Fatalf("round-tripped embed = %#v", got)
	}
}
