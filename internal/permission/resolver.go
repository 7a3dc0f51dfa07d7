package permission

// Source tells where an effective decision came from.
type Source string

const (
	SourceRole Source = "role"
	SourceUser Source = "user"
	SourceNone Source = "none"
)

// State is the position of one permission in the per-user state machine.
type State string

const (
	StateRoleGranted State = "role_granted"
	StateUserAllowed State = "user_allowed"
	StateUserDenied  State = "user_denied"
	StateNeither     State = "neither"
)

// View is the resolved status of a single permission.
type View struct {
	Permission        Permission `json:"permission"`
	HasPermission     bool       `json:"has_permission"`
	Source            Source     `json:"source"`
	RoleHasPermission bool       `json:"role_has_permission"`
}

// Status resolves p against the role baseline and the user's overrides.
// Denied beats allowed, allowed beats the role.
func Status(p Permission, role Set, o Overrides) View {
	view := View{Permission: p, RoleHasPermission: role.Has(p)}

	switch {
	case o.Denied.Has(p):
		view.HasPermission, view.Source = false, SourceUser
	case o.Allowed.Has(p):
		view.HasPermission, view.Source = true, SourceUser
	case view.RoleHasPermission:
		view.HasPermission, view.Source = true, SourceRole
	default:
		view.HasPermission, view.Source = false, SourceNone
	}

	return view
}

// StateOf reports which of the four states p is in.
func StateOf(p Permission, role Set, o Overrides) State {
	switch {
	case o.Denied.Has(p):
		return StateUserDenied
	case o.Allowed.Has(p):
		return StateUserAllowed
	case role.Has(p):
		return StateRoleGranted
	default:
		return StateNeither
	}
}

// Toggle returns overrides under which p resolves to enabled. Only p's
// entries change and o is left untouched. An explicit override is kept only
// when the role baseline disagrees with the desired state, so enabling a
// role-granted permission drops any earlier explicit allow.
func Toggle(p Permission, enabled bool, role Set, o Overrides) Overrides {
	next := o.Clone()
	delete(next.Allowed, p)
	delete(next.Denied, p)

	roleHas := role.Has(p)
	switch {
	case enabled && !roleHas:
		next.Allowed[p] = struct{}{}
	case !enabled && roleHas:
		next.Denied[p] = struct{}{}
	}

	return next
}

// BulkSetGroup applies Toggle to every permission in perms.
func BulkSetGroup(perms []Permission, enabled bool, role Set, o Overrides) Overrides {
	next := o.Clone()
	for _, p := range perms {
		next = Toggle(p, enabled, role, next)
	}
	return next
}

// Effective returns every permission the user ends up holding.
func Effective(role Set, o Overrides) Set {
	out := make(Set)
	for p := range role.Union(o.Allowed) {
		if Status(p, role, o).HasPermission {
			out[p] = struct{}{}
		}
	}
	return out
}

// Payload is the wire form stored by the backend on save.
type Payload struct {
	Allowed []string `json:"allowed"`
	Denied  []string `json:"denied"`
}

// SerializeForSave produces duplicate-free, sorted lists.
func SerializeForSave(o Overrides) Payload {
	return Payload{Allowed: o.Allowed.Strings(), Denied: o.Denied.Strings()}
}

// FromPayload builds overrides from wire lists. An entry present in both
// lists is kept only as denied, which is how Status already resolves it.
func FromPayload(payload Payload) Overrides {
	o := Overrides{Allowed: SetOf(payload.Allowed...), Denied: SetOf(payload.Denied...)}
	for p := range o.Denied {
		delete(o.Allowed, p)
	}
	return o
}
