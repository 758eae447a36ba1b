package bpe

import (
	"encoding/json"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Vocabulary maps tokens to the number of characters they cover. It keeps
// insertion order so that persisted output diffs stay stable.
//
// The stored value is the token's character length, not its training
// frequency. Segment relies on it as a priority.
type Vocabulary struct {
	om *orderedmap.OrderedMap[string, int]
}

// NewVocabulary returns an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{om: orderedmap.New[string, int]()}
}

// Add inserts tok with its character length unless it is already present.
// It reports whether tok was inserted. Existing entries are never modified.
func (v *Vocabulary) Add(tok string) bool {
	return v.Put(tok, charLen(tok))
}

// Put inserts tok with an explicit stored value unless tok is already
// present. Loaders use it to restore persisted values verbatim.
func (v *Vocabulary) Put(tok string, length int) bool {
	if v.om == nil {
		v.om = orderedmap.New[string, int]()
	}
	if _, ok := v.om.Get(tok); ok {
		return false
	}
	v.om.Set(tok, length)

	return true
}

// Get returns the stored value for tok.
func (v *Vocabulary) Get(tok string) (int, bool) {
	if v == nil || v.om == nil {
		return 0, false
	}

	return v.om.Get(tok)
}

// Has reports whether tok is a key.
func (v *Vocabulary) Has(tok string) bool {
	_, ok := v.Get(tok)
	return ok
}

// Len returns the number of entries.
func (v *Vocabulary) Len() int {
	if v == nil || v.om == nil {
		return 0
	}

	return v.om.Len()
}

// All iterates entries in insertion order.
func (v *Vocabulary) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		if v == nil || v.om == nil {
			return
		}
		for pair := v.om.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Keys returns the tokens in insertion order.
func (v *Vocabulary) Keys() []string {
	keys := make([]string, 0, v.Len())
	for tok := range v.All() {
		keys = append(keys, tok)
	}

	return keys
}

// Clone returns an independent copy with the same order.
func (v *Vocabulary) Clone() *Vocabulary {
	c := NewVocabulary()
	for tok, n := range v.All() {
		c.om.Set(tok, n)
	}

	return c
}

// MarshalJSON writes the vocabulary as a JSON object in insertion order.
func (v *Vocabulary) MarshalJSON() ([]byte, error) {
	if v == nil || v.om == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(v.om)
}

// UnmarshalJSON replaces the contents of v with a JSON object, keeping the
// key order of the input.
func (v *Vocabulary) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, int]()
	if err := json.Unmarshal(data, &om); err != nil {
		return err
	}
	v.om = om

	return nil
}

// seedVocabulary collects the distinct characters of seq in first-seen order.
func seedVocabulary(seq Sequence) *Vocabulary {
	v := NewVocabulary()
	for _, tok := range seq {
		for _, ch := range Chars(tok) {
			v.Add(ch)
		}
	}

	return v
}
