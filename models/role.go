package models

const (
	RoleAdmin        = "admin"
	RoleCustomer     = "customer"
	RoleProfessional = "professional"
)

type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(80);uniqueIndex;not null"`
	Description string `json:"description"`
}

// DefaultRoles are seeded on startup.
func DefaultRoles() []Role {
	return []Role{
		{Name: RoleAdmin, Description: "Superuser"},
		{Name: RoleCustomer, Description: "Customer user"},
		{Name: RoleProfessional, Description: "Professional user"},
	}
}
