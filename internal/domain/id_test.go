package domain

import (
	"encoding/json"
	"testing"
)

func TestEntityIDPacking(t *testing.T) {
	id := PackEntityID(OwnerRemote, 123456)

	if id.OwnerPart() != OwnerRemote {
		t.Errorf("owner = %v, want REMOTE", id.OwnerPart())
	}
	if id.Seq() != 123456 {
		t.Errorf("seq = %d, want 123456", id.Seq())
	}
	if id == NoEntity {
		t.Error("packed id collides with NoEntity")
	}
}

// ID ходят по проводу строками: JS теряет точность на больших числах
func TestEntityIDJSON(t *testing.T) {
	id := PackEntityID(OwnerPlayer, 42)

	raw, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if raw[0] != '"' {
		t.Fatalf("id serialized as a number: %s", raw)
	}

	var back EntityID
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != id {
		t.Errorf("round trip: %v != %v", back, id)
	}
}
