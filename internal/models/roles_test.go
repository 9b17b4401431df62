package models

import "testing"

func TestRoleValid(t *testing.T) {
	for _, role := range AllRoles() {
		if !role.Valid() {
			t.Errorf("Role %q should be valid", role)
		}
	}

	invalid := []Role{"", "airdrop_shipper", "Warehouse_Gremlin", "ADMIN"}
	for _, role := range invalid {
		if role.Valid() {
			t.Errorf("Role %q should not be valid", role)
		}
	}
}

func TestAllRolesHasNoDuplicates(t *testing.T) {
	seen := make(map[Role]bool)
	for _, role := range AllRoles() {
		if seen[role] {
			t.Errorf("Role %q listed twice", role)
		}
		seen[role] = true
	}
}
