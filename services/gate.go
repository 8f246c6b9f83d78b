package services

import (
	"context"
	"errors"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"gorm.io/gorm"
)

// Identity is the authorised caller with whichever profiles it owns.
type Identity struct {
	Account      *models.Account             `json:"account"`
	Customer     *models.CustomerProfile     `json:"customer,omitempty"`
	Professional *models.ProfessionalProfile `json:"professional,omitempty"`
}

// Gate decides whether an account may act under a set of roles. Every call
// reads the current account and profile state; nothing is cached.
type Gate struct {
	DB *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{DB: db}
}

// Authorize loads the account and checks it against roles. The account must
// hold at least one of roles; with no roles any active account passes. For
// each required customer or professional role the account holds, the matching
// profile must exist and be both active and approved.
func (g *Gate) Authorize(ctx context.Context, accountID uint, roles ...string) (*Identity, error) {
	return authorize(g.DB.WithContext(ctx), accountID, roles)
}

func authorize(tx *gorm.DB, accountID uint, roles []string) (*Identity, error) {
	var account models.Account
	err := tx.Preload("Roles").First(&account, accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.Unauthenticated("account not found")
	}
	if err != nil {
		return nil, utils.StorageError("load account", err)
	}

	if !account.Active {
		return nil, utils.Unauthorized("account is inactive")
	}
	if len(roles) > 0 && !account.HasRole(roles...) {
		return nil, utils.Unauthorized("insufficient role")
	}

	id := &Identity{Account: &account}
	if account.HasRole(models.RoleCustomer) {
		var c models.CustomerProfile
		if err := tx.Where("account_id = ?", account.ID).Take(&c).Error; err == nil {
			id.Customer = &c
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.StorageError("load customer profile", err)
		}
	}
	if account.HasRole(models.RoleProfessional) {
		var p models.ProfessionalProfile
		if err := tx.Where("account_id = ?", account.ID).Take(&p).Error; err == nil {
			id.Professional = &p
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.StorageError("load professional profile", err)
		}
	}

	for _, role := range roles {
		if !account.HasRole(role) {
			continue
		}
		if err := id.checkProfile(role); err != nil {
			return nil, err
		}
	}
	return id, nil
}

func (id *Identity) checkProfile(role string) error {
	switch role {
	case models.RoleCustomer:
		switch {
		case id.Customer == nil:
			return utils.Unauthorized("customer profile not found")
		case !id.Customer.IsActive:
			return utils.Unauthorized("customer account is blocked")
		case !id.Customer.IsApproved:
			return utils.Unauthorized("customer account is not approved")
		}
	case models.RoleProfessional:
		switch {
		case id.Professional == nil:
			return utils.Unauthorized("professional profile not found")
		case !id.Professional.IsActive:
			return utils.Unauthorized("professional account is blocked")
		case !id.Professional.IsApproved:
			return utils.Unauthorized("professional account is not approved yet")
		}
	}
	return nil
}
