package enums

type UserRole string

const (
	RoleCustomer   UserRole = "CUSTOMER"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role grants access to the back office.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
