package domain

// DashboardVariant names the dashboard rendered for a role.
type DashboardVariant string

const (
	DashboardDonor      DashboardVariant = "donor"
	DashboardNGO        DashboardVariant = "ngo"
	DashboardAdmin      DashboardVariant = "admin"
	DashboardSuperAdmin DashboardVariant = "super_admin"
)

// ResolveDashboard maps a role to its dashboard. Unrecognised roles get the
// donor dashboard, the most restrictive one.
func ResolveDashboard(role Role) DashboardVariant {
	switch role {
	case RoleNGO:
		return DashboardNGO
	case RoleAdmin:
		return DashboardAdmin
	case RoleSuperAdmin:
		return DashboardSuperAdmin
	default:
		return DashboardDonor
	}
}

// CanAccess reports whether actual satisfies required. An empty required role
// only demands an authenticated session, which callers check separately.
func CanAccess(required, actual Role) bool {
	return required == "" || required == actual
}
