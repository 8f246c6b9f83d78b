package models

import (
	"time"
)

// Account is the authenticatable identity. Profiles hang off it one-to-one.
type Account struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null"`
	Roles     []Role    `json:"roles,omitempty" gorm:"many2many:account_roles;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRole reports whether the account holds any of the given roles.
func (a *Account) HasRole(names ...string) bool {
	for _, r := range a.Roles {
		for _, n := range names {
			if r.Name == n {
				return true
			}
		}
	}
	return false
}

func (a *Account) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		names = append(names, r.Name)
	}
	return names
}

// PrimaryRole picks the role tag reported at login. Customer and professional
// win over admin so a dual-role account lands in its marketplace view.
func (a *Account) PrimaryRole() string {
	for _, name := range []string{RoleCustomer, RoleProfessional, RoleAdmin} {
		if a.HasRole(name) {
			return name
		}
	}
	return ""
}
