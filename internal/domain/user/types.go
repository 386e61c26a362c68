package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanViewAllOrders reports whether the role may read every user's orders.
// Customers only ever see their own; the order listing applies this as a
// read-time filter, not a separate persistence path.
func (r Role) CanViewAllOrders() bool {
	return r == RoleSeller || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
