package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Full back-office access
	RoleManager  Role = "manager"  // Can run payroll and approve leave/attendance
	RoleEmployee Role = "employee" // Self-service attendance and leave only
)

var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// CanManage reports whether the role may use the admin portal.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}
