package cache

import "testing"

func TestRoomKeyAndNamesKey_Distinct(t *testing.T) {
	if got, want := roomKey("doc1"), "presence:room:doc1"; got != want {
		t.Fatalf("roomKey() = %q, want %q", got, want)
	}
	if got, want := namesKey("doc1"), "presence:room:names:doc1"; got != want {
		t.Fatalf("namesKey() = %q, want %q", got, want)
	}
	if roomKey("doc1") == namesKey("doc1") {
		t.Fatalf("roomKey and namesKey collided for the same docID")
	}
}
