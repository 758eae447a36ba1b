package bpe

import (
	"encoding/json"
	"testing"
)

func TestVocabulary_AddKeepsFirstValue(t *testing.T) {
	v := NewVocabulary()

	if !v.Add("héllo") {
		t.Fatal("Add returned false for a new key")
	}

	if n, _ := v.Get("héllo"); n != 5 {
		t.Errorf("Get(héllo) = %d; want 5 characters", n)
	}

	if v.Put("héllo", 99) {
		t.Error("Put returned true for an existing key")
	}

	if n, _ := v.Get("héllo"); n != 5 {
		t.Errorf("existing value changed to %d", n)
	}
}

func TestVocabulary_JSONPreservesInsertionOrder(t *testing.T) {
	v := NewVocabulary()
	for _, tok := range []string{"c", "a", "bb"} {
		v.Add(tok)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if got, want := string(data), `{"c":1,"a":1,"bb":2}`; got != want {
		t.Errorf("Marshal = %s; want %s", got, want)
	}

	var back Vocabulary
	if err := json.Unmarshal([]byte(`{"zz":2,"y":1,"xxx":3}`), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	keys := back.Keys()
	if len(keys) != 3 || keys[0] != "zz" || keys[1] != "y" || keys[2] != "xxx" {
		t.Errorf("Keys() = %v; want [zz y xxx]", keys)
	}
}

func TestVocabulary_NilSafe(t *testing.T) {
	var v *Vocabulary

	if v.Len() != 0 || v.Has("a") {
		t.Error("nil vocabulary should be empty")
	}

	for range v.All() {
		t.Fatal("nil vocabulary yielded an entry")
	}
}

func TestVocabulary_CloneIsIndependent(t *testing.T) {
	v := NewVocabulary()
	v.Add("a")

	c := v.Clone()
	c.Add("b")

	if v.Has("b") {
		t.Error("Clone shares state with original")
	}

	if c.Len() != 2 {
		t.Errorf("clone Len() = %d; want 2", c.Len())
	}
}

func TestSeedVocabulary_FirstSeenOrder(t *testing.T) {
	v := seedVocabulary(Sequence{"ba", "c", "ab"})

	keys := v.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Errorf("Keys() = %v; want [b a c]", keys)
	}
}
