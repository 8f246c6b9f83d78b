package services

import (
	"testing"

	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateUnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.gate.Authorize(f.ctx, 999, models.RoleAdmin)
	assert.True(t, utils.IsKind(err, utils.KindUnauthenticated))
}

func TestGateRoleMembership(t *testing.T) {
	f := newFixture(t)
	admin := f.admin("admin@example.com")
	c := f.customer("c@example.com")

	id, err := f.gate.Authorize(f.ctx, admin.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, id.Customer)
	assert.Nil(t, id.Professional)

	_, err = f.gate.Authorize(f.ctx, c.AccountID, models.RoleAdmin)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	assert.EqualError(t, err, "insufficient role")

	id, err = f.gate.Authorize(f.ctx, c.AccountID, models.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, id.Customer)
	assert.Equal(t, c.ID, id.Customer.ID)

	// any role in the list is enough
	_, err = f.gate.Authorize(f.ctx, c.AccountID, models.RoleAdmin, models.RoleCustomer)
	assert.NoError(t, err)

	// no roles: any active account
	_, err = f.gate.Authorize(f.ctx, c.AccountID)
	assert.NoError(t, err)
}

func TestGateInactiveAccount(t *testing.T) {
	f := newFixture(t)
	admin := f.admin("admin@example.com")
	require.NoError(t, f.db.Model(admin).Update("active", false).Error)

	_, err := f.gate.Authorize(f.ctx, admin.ID, models.RoleAdmin)
	assert.True(t, utils.IsKind(err, utils.KindUnauthorized))
	assert.EqualError(t, err, "account is inactive")
}

func TestGateProfileState(t *testing.T) {
	f := newFixture(t)
	p := f.professional("p@example.com", false)
	c := f.customer("c@example.com")

	_, err := f.gate.Authorize(f.ctx, p.AccountID, models.RoleProfessional)
	assert.EqualError(t, err, "professional account is not approved yet")

	require.NoError(t, f.pros.SetApproval(f.ctx, p.ID, true))
	id, err := f.gate.Authorize(f.ctx, p.AccountID, models.RoleProfessional)
	require.NoError(t, err)
	assert.True(t, id.Professional.IsApproved)

	require.NoError(t, f.db.Model(&models.ProfessionalProfile{}).Where("id = ?", p.ID).Update("is_active", false).Error)
	_, err = f.gate.Authorize(f.ctx, p.AccountID, models.RoleProfessional)
	assert.EqualError(t, err, "professional account is blocked")

	require.NoError(t, f.custs.SetActive(f.ctx, c.ID, false))
	_, err = f.gate.Authorize(f.ctx, c.AccountID, models.RoleCustomer)
	assert.EqualError(t, err, "customer account is blocked")

	require.NoError(t, f.custs.SetActive(f.ctx, c.ID, true))
	require.NoError(t, f.db.Model(&models.CustomerProfile{}).Where("id = ?", c.ID).Update("is_approved", false).Error)
	_, err = f.gate.Authorize(f.ctx, c.AccountID, models.RoleCustomer)
	assert.EqualError(t, err, "customer account is not approved")
}

func TestGateMissingProfile(t *testing.T) {
	f := newFixture(t)
	var role models.Role
	require.NoError(t, f.db.Where("name = ?", models.RoleCustomer).First(&role).Error)

	hash, err := testHasher.Hash(testPassword)
	require.NoError(t, err)
	acct := models.Account{Email: "bare@example.com", Password: hash, Active: true, Roles: []models.Role{role}}
	require.NoError(t, f.db.Create(&acct).Error)

	_, err = f.gate.Authorize(f.ctx, acct.ID, models.RoleCustomer)
	assert.EqualError(t, err, "customer profile not found")
}
