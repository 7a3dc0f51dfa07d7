package permission

import "sort"

// Group holds the permissions sharing one resource prefix.
type Group struct {
	Resource    string
	Permissions []Permission
}

// Catalog is every permission known to the editor: all role baselines plus
// whatever the user's overrides mention.
func Catalog(roles []Role, overrides ...Overrides) Set {
	all := make(Set)
	for _, r := range roles {
		all = all.Union(r.Permissions)
	}
	for _, o := range overrides {
		all = all.Union(o.Allowed, o.Denied)
	}
	return all
}

// GroupByResource splits s into groups ordered by resource name.
func GroupByResource(s Set) []Group {
	byResource := make(map[string][]Permission)
	for _, p := range s.Sorted() {
		byResource[p.Resource()] = append(byResource[p.Resource()], p)
	}

	groups := make([]Group, 0, len(byResource))
	for resource, perms := range byResource {
		groups = append(groups, Group{Resource: resource, Permissions: perms})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Resource < groups[j].Resource })

	return groups
}

// InResource returns the members of s whose resource matches.
func InResource(s Set, resource string) []Permission {
	var out []Permission
	for _, p := range s.Sorted() {
		if p.Resource() == resource {
			out = append(out, p)
		}
	}
	return out
}
