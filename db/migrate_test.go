package db_test

import (
	"testing"

	"github.com/meinhoongagan/household-services/db"
	"github.com/meinhoongagan/household-services/db/dbtest"
	"github.com/meinhoongagan/household-services/models"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedIsIdempotent(t *testing.T) {
	conn := dbtest.New(t)
	hasher := utils.NewPasswordHasher(bcrypt.MinCost)

	require.NoError(t, db.SeedRoles(conn))
	require.NoError(t, db.SeedAdmin(conn, hasher, "admin@example.com", "pw"))
	require.NoError(t, db.SeedAdmin(conn, hasher, "admin@example.com", "pw"))

	var roles int64
	conn.Model(&models.Role{}).Count(&roles)
	assert.Equal(t, int64(3), roles)

	var admins []models.Account
	require.NoError(t, conn.Preload("Roles").Where("email = ?", "admin@example.com").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].Active)
	assert.True(t, admins[0].HasRole(models.RoleAdmin))
	assert.True(t, hasher.Check(admins[0].Password, "pw"))
}

func TestSeedAdminSkipsWithoutPassword(t *testing.T) {
	conn := dbtest.New(t)
	require.NoError(t, db.SeedAdmin(conn, utils.NewPasswordHasher(bcrypt.MinCost), "admin@example.com", ""))

	var n int64
	conn.Model(&models.Account{}).Count(&n)
	assert.Zero(t, n)
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite", ""} {
		d, err := db.Dialector(driver, "dsn")
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}
	_, err := db.Dialector("oracle", "dsn")
	assert.Error(t, err)
}

func TestUniqueViolationIsTranslated(t *testing.T) {
	conn := dbtest.New(t)
	require.NoError(t, conn.Create(&models.Account{Email: "a@example.com", Password: "x", Active: true}).Error)

	err := conn.Create(&models.Account{Email: "a@example.com", Password: "y", Active: true}).Error
	require.Error(t, err)
	assert.True(t, utils.IsDuplicateKey(err))
	assert.True(t, utils.IsKind(utils.FromDB(err, ""), utils.KindConflict))
}
