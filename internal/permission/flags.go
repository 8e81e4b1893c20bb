package permission

import (
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
	"go.mongodb.org/mongo-driver/bson"
)

// State is the effect a single record has on a key. Unset means the record expresses no opinion and
// resolution continues with the next record.
type State uint8

const (
	Unset State = iota
	Allow
	Deny
)

func StateOf(allowed bool) State {
	if allowed {
		return Allow
	}
	return Deny
}

func (s State) Decided() bool {
	return s == Allow || s == Deny
}

func (s State) String() string {
	switch s {
	case Allow:
		return "ALLOW"
	case Deny:
		return "DENY"
	default:
		return "UNSET"
	}
}

// Flags holds the explicitly set keys of a role or override. Keys missing from the map are Unset.
// Stored as a document of name -> bool.
type Flags map[Key]State

// FlagsFromMap converts a name -> bool document into Flags, rejecting names outside allowed.
func FlagsFromMap(m map[string]bool, allowed KeySet) (Flags, error) {
	f := make(Flags, len(m))
	for name, v := range m {
		k, ok := ParseKey(name)
		if !ok || !allowed.Contains(k) {
			return nil, fmt.Errorf("permission %q is not allowed here", name)
		}
		f[k] = StateOf(v)
	}
	return f, nil
}

func (f Flags) Get(k Key) State {
	return f[k]
}

// Set updates k, deleting the entry when s is Unset.
func (f Flags) Set(k Key, s State) {
	if s.Decided() {
		f[k] = s
	} else {
		delete(f, k)
	}
}

func (f Flags) Clone() Flags {
	c := make(Flags, len(f))
	for k, s := range f {
		c[k] = s
	}
	return c
}

// Allowed lists the keys set to Allow, in key order.
func (f Flags) Allowed() []Key {
	var keys []Key
	for k, s := range f {
		if s == Allow {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func (f Flags) ToMap() map[string]bool {
	m := make(map[string]bool, len(f))
	for k, s := range f {
		if s.Decided() {
			m[k.String()] = s == Allow
		}
	}
	return m
}

func (f Flags) MarshalBSON() ([]byte, error) {
	return bson.Marshal(f.ToMap())
}

func (f *Flags) UnmarshalBSON(data []byte) error {
	var m map[string]bool
	if err := bson.Unmarshal(data, &m); err != nil {
		return err
	}
	*f = fromStored(m)
	return nil
}

func (f Flags) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(f.ToMap())
}

func (f *Flags) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := sonic.Unmarshal(data, &m); err != nil {
		return err
	}
	*f = fromStored(m)
	return nil
}

// fromStored drops names this build does not know, so a newer writer cannot break older readers.
func fromStored(m map[string]bool) Flags {
	f := make(Flags, len(m))
	for name, v := range m {
		if k, ok := ParseKey(name); ok {
			f[k] = StateOf(v)
		}
	}
	return f
}

// Overrides maps a role ID to the flags that role has overridden on a channel or category.
type Overrides map[string]Flags

// Resolve walks roleIds in the given order and returns the first explicit state for k.
// The order is the caller's, not the role hierarchy.
func (o Overrides) Resolve(roleIds []string, k Key) State {
	if len(o) == 0 {
		return Unset
	}
	for _, id := range roleIds {
		if s := o[id].Get(k); s.Decided() {
			return s
		}
	}
	return Unset
}
