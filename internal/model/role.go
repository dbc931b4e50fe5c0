package model

// Role represents a named set of privileges
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleManager = "MANAGER"
	RoleViewer  = "VIEWER"
)

// DefaultRoles defines the roles seeded at boot. Admins are flagged on the
// user record (IsAdmin), not modeled as a role.
var DefaultRoles = []Role{
	{
		Code:        RoleManager,
		Name:        "مدير مزرعة",
		Description: "Full department access without user management",
	},
	{
		Code:        RoleViewer,
		Name:        "مشاهد",
		Description: "Read-only access to all departments",
	},
}

// PrivilegeCodes returns the flat capability tags of the role.
func (r *Role) PrivilegeCodes() []string {
	codes := make([]string, len(r.Privileges))
	for i, p := range r.Privileges {
		codes[i] = p.Code
	}
	return codes
}
