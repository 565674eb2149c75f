package marketplace

import (
	"encoding/json"
	"strconv"
)

// SourceID is a record identifier as it appears in a catalog document:
// a JSON string or a JSON number, possibly absent.
type SourceID string

func (s *SourceID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = SourceID(v)
		return nil
	}
	*s = SourceID(b)
	return nil
}

// Numeric reports the identifier as an integer when the source already
// supplied a numeric one.
func (s SourceID) Numeric() (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(string(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// identityAssigner guarantees a stable unique numeric identity for
// every catalog record. The counter only moves forward for the
// lifetime of the process, so no identity is ever reused across
// reloads.
type identityAssigner struct {
	next     int64
	bySource map[string]int64
}

func newIdentityAssigner() *identityAssigner {
	return &identityAssigner{next: 1, bySource: make(map[string]int64)}
}

// assign stamps a numeric identity onto every record of a freshly
// loaded catalog. When the source already numbers all of its records,
// those identifiers are adopted unchanged and no translation map is
// kept; otherwise each record gets the next counter value in source
// order and original->assigned is recorded.
func (a *identityAssigner) assign(src []SourceProduct) []Product {
	out := make([]Product, 0, len(src))

	if maxID, ok := allNumeric(src); ok {
		a.bySource = make(map[string]int64)
		if maxID >= a.next {
			a.next = maxID + 1
		}
		for i := range src {
			p := src[i].Product
			p.ID, _ = src[i].RawID.Numeric()
			p.SourceID = string(src[i].RawID)
			out = append(out, p)
		}
		return out
	}

	for i := range src {
		raw := src[i].RawID
		if raw == "" {
			// absent identifier: placeholder derived from the counter
			raw = SourceID("record-" + strconv.FormatInt(a.next, 10))
		}
		p := src[i].Product
		p.ID = a.next
		p.SourceID = string(raw)
		a.bySource[string(raw)] = a.next
		a.next++
		out = append(out, p)
	}
	return out
}

// lookup translates an original source identifier to its assigned
// identity.
func (a *identityAssigner) lookup(source string) (int64, bool) {
	id, ok := a.bySource[source]
	return id, ok
}

// ensure returns the assigned identity for a source identifier,
// minting and recording a fresh one if the identifier was never seen.
// Repeated lookups of the same unknown identifier therefore stay
// stable.
func (a *identityAssigner) ensure(source string) int64 {
	if n, ok := SourceID(source).Numeric(); ok {
		return n
	}
	if id, ok := a.bySource[source]; ok {
		return id
	}
	id := a.mint()
	a.bySource[source] = id
	return id
}

// mint hands out the next identity without recording a translation.
func (a *identityAssigner) mint() int64 {
	id := a.next
	a.next++
	return id
}

func allNumeric(src []SourceProduct) (maxID int64, ok bool) {
	if len(src) == 0 {
		return 0, false
	}
	for i := range src {
		n, numeric := src[i].RawID.Numeric()
		if !numeric {
			return 0, false
		}
		if n > maxID {
			maxID = n
		}
	}
	return maxID, true
}
