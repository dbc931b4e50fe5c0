package model

// Privilege represents a capability tag that can be assigned to roles
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "add_workers"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // Arabic display label
}

// Default privileges, one view/add/edit/delete group per department
var DefaultPrivileges = []Privilege{
	// Workers
	{Code: "view_workers", Name: "عرض العمال"},
	{Code: "add_workers", Name: "إضافة العمال"},
	{Code: "edit_workers", Name: "تعديل العمال"},
	{Code: "delete_workers", Name: "حذف العمال"},
	// Attendance
	{Code: "view_attendance", Name: "عرض الحضور"},
	{Code: "add_attendance", Name: "تسجيل الحضور"},
	{Code: "edit_attendance", Name: "تعديل الحضور"},
	{Code: "delete_attendance", Name: "حذف الحضور"},
	// Production
	{Code: "view_production", Name: "عرض الإنتاج"},
	{Code: "add_production", Name: "إضافة الإنتاج"},
	{Code: "edit_production", Name: "تعديل الإنتاج"},
	{Code: "delete_production", Name: "حذف الإنتاج"},
	// Sales
	{Code: "view_sales", Name: "عرض المبيعات"},
	{Code: "add_sales", Name: "إضافة المبيعات"},
	{Code: "edit_sales", Name: "تعديل المبيعات"},
	{Code: "delete_sales", Name: "حذف المبيعات"},
	// Fuel
	{Code: "view_fuel", Name: "عرض الوقود"},
	{Code: "add_fuel", Name: "إضافة الوقود"},
	// Medicines and pesticides
	{Code: "view_medicines", Name: "عرض الأدوية"},
	{Code: "add_medicines", Name: "إضافة الأدوية"},
	// Fertilizers
	{Code: "view_fertilizers", Name: "عرض الأسمدة"},
	{Code: "add_fertilizers", Name: "إضافة الأسمدة"},
	// Consumption
	{Code: "view_consumption", Name: "عرض الاستهلاك"},
	{Code: "add_consumption", Name: "تسجيل الاستهلاك"},
	// Accounting
	{Code: "view_accounting", Name: "عرض المحاسبة"},
	{Code: "add_accounting", Name: "إضافة معاملة محاسبية"},
	{Code: "edit_accounting", Name: "تعديل المحاسبة"},
	{Code: "delete_accounting", Name: "حذف المحاسبة"},
	// Reports
	{Code: "view_reports", Name: "عرض التقارير"},
	// Dashboard
	{Code: "view_dashboard", Name: "عرض لوحة التحكم"},
	// Settings (users, roles, product types)
	{Code: "manage_users", Name: "إدارة المستخدمين"},
	{Code: "manage_roles", Name: "إدارة الأدوار"},
	{Code: "manage_settings", Name: "إدارة الإعدادات"},
}
