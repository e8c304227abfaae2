package access

// Guard decides whether an actor may read or write an application record,
// given the record's owning customer id. It is pure: no store access, no side
// effects, so it is unit-testable in isolation.
//
// Policy:
//   - Customers may touch only their own records.
//   - Employees and admins may touch any record.
//   - Anything else (absent actor, unknown role) is denied.
//
// The caller translates a false result into a forbidden error; the guard
// itself never constructs errors.
type Guard struct{}

func NewGuard() Guard { return Guard{} }

// CanRead reports whether the actor may view the record owned by ownerID.
func (Guard) CanRead(actor Actor, ownerID string) bool {
	return allowed(actor, ownerID)
}

// CanWrite reports whether the actor may mutate the record owned by ownerID.
// Read and write policy are currently identical; they are separate methods
// because the write path is expected to tighten independently.
func (Guard) CanWrite(actor Actor, ownerID string) bool {
	return allowed(actor, ownerID)
}

func allowed(actor Actor, ownerID string) bool {
	if !actor.Valid() {
		return false
	}
	switch actor.Role {
	case RoleCustomer:
		return actor.ID == ownerID
	case RoleEmployee, RoleAdmin:
		return true
	default:
		return false
	}
}
