package models

// Role is an employee's job function. It is the single definition of the
// role vocabulary; the authorization matrix, seed data and request
// validation all reference this set.
type Role string

const (
	RoleShipper              Role = "Airdrop_Shipper"
	RoleCashier              Role = "Airdrop_Cashier"
	RoleManager              Role = "Airdrop_Manager"
	RoleSupervisor           Role = "Airdrop_Supervisor"
	RoleAdmin                Role = "Airdrop_Admin"
	RoleMasterAdmin          Role = "Airdrop_Master_Admin"
	RoleOperationsSupervisor Role = "Airdrop_Operations_Supervisor"
	RoleGenericAdmin         Role = "Admin"
)

// AllRoles lists every valid role. Order matters for admin screens.
func AllRoles() []Role {
	return []Role{
		RoleShipper,
		RoleCashier,
		RoleManager,
		RoleSupervisor,
		RoleAdmin,
		RoleMasterAdmin,
		RoleOperationsSupervisor,
		RoleGenericAdmin,
	}
}

// Valid reports whether r is one of the enumerated roles. Unknown roles
// must never be granted access anywhere.
func (r Role) Valid() bool {
	switch r {
	case RoleShipper, RoleCashier, RoleManager, RoleSupervisor,
		RoleAdmin, RoleMasterAdmin, RoleOperationsSupervisor, RoleGenericAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
