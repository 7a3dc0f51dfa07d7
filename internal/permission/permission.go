package permission

import (
	"errors"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// ErrOverlap reports overrides that allow and deny the same permission.
var ErrOverlap = errors.New("permission is both allowed and denied")

// Permission is an opaque "<resource>:<action>" identifier.
type Permission string

// Resource returns the part before the first colon, or the whole value
// when there is none.
func (p Permission) Resource() string {
	resource, _, _ := strings.Cut(string(p), ":")
	return resource
}

// Action returns the part after the first colon.
func (p Permission) Action() string {
	_, action, _ := strings.Cut(string(p), ":")
	return action
}

// Set is an unordered collection of permissions.
type Set map[Permission]struct{}

func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// SetOf builds a Set from raw strings. Ids are kept byte for byte; only
// empty strings are skipped.
func SetOf(perms ...string) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		if p != "" {
			s[Permission(p)] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for p := range s {
		c[p] = struct{}{}
	}
	return c
}

// Union returns a new set holding the members of s and every other set.
func (s Set) Union(others ...Set) Set {
	u := s.Clone()
	for _, o := range others {
		for p := range o {
			u[p] = struct{}{}
		}
	}
	return u
}

// Difference returns the members of s that are not in o.
func (s Set) Difference(o Set) Set {
	d := make(Set)
	for p := range s {
		if !o.Has(p) {
			d[p] = struct{}{}
		}
	}
	return d
}

func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if !o.Has(p) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the members as sorted strings.
func (s Set) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, p := range sorted {
		out[i] = string(p)
	}
	return out
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SetOf(raw...)
	return nil
}

// Role is a named permission baseline. Level is informational only.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Permissions Set    `json:"permissions"`
}

// Overrides are the per-user explicit grants and revocations.
type Overrides struct {
	Allowed Set `json:"allowed"`
	Denied  Set `json:"denied"`
}

// EmptyOverrides is the pure role-based starting point.
func EmptyOverrides() Overrides {
	return Overrides{Allowed: make(Set), Denied: make(Set)}
}

func (o Overrides) Clone() Overrides {
	return Overrides{Allowed: o.Allowed.Clone(), Denied: o.Denied.Clone()}
}

func (o Overrides) Equal(other Overrides) bool {
	return o.Allowed.Equal(other.Allowed) && o.Denied.Equal(other.Denied)
}

// Validate checks that no permission is both allowed and denied.
func (o Overrides) Validate() error {
	for p := range o.Allowed {
		if o.Denied.Has(p) {
			return ErrOverlap
		}
	}
	return nil
}
