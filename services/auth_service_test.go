package services

import (
	"testing"
	"time"

	"hotel-marketplace/models"
	"hotel-marketplace/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testSecret, time.Hour)

	session, err := svc.Register("alice", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMerchant, session.User.Role)
	assert.NotEqual(t, "secret1", session.User.Password)

	claims, err := utils.ParseToken(testSecret, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleMerchant, claims.Role)

	_, err = svc.Register("alice", "another1", "merchant")
	assert.True(t, IsKind(err, KindConflict))

	_, err = svc.Login("alice", "wrong-pass")
	assert.True(t, IsKind(err, KindUnauthorized))
	_, err = svc.Login("nobody", "secret1")
	assert.True(t, IsKind(err, KindUnauthorized))

	logged, err := svc.Login("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, logged.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testSecret, time.Hour)

	_, err := svc.Register("bob", "123", "")
	assert.True(t, IsKind(err, KindBadRequest))
	_, err = svc.Register("bob", "123456", "superuser")
	assert.True(t, IsKind(err, KindBadRequest))
	_, err = svc.Register("", "123456", "")
	assert.True(t, IsKind(err, KindBadRequest))
}

func TestUpdateProfileReissuesToken(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testSecret, time.Hour)
	a, err := svc.Register("alice", "secret1", "")
	require.NoError(t, err)
	_, err = svc.Register("bob", "secret1", "")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(a.User.ID, "bob")
	assert.True(t, IsKind(err, KindConflict))

	renamed, err := svc.UpdateProfile(a.User.ID, "alice2")
	require.NoError(t, err)
	claims, err := utils.ParseToken(testSecret, renamed.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice2", claims.Username)
}

func TestChangePassword(t *testing.T) {
	svc := NewAuthService(newTestDB(t), testSecret, time.Hour)
	a, err := svc.Register("alice", "secret1", "")
	require.NoError(t, err)

	err = svc.ChangePassword(a.User.ID, "wrong", "newsecret")
	assert.True(t, IsKind(err, KindBadRequest))
	require.NoError(t, svc.ChangePassword(a.User.ID, "secret1", "newsecret"))

	_, err = svc.Login("alice", "secret1")
	assert.True(t, IsKind(err, KindUnauthorized))
	_, err = svc.Login("alice", "newsecret")
	assert.NoError(t, err)
}

func TestRegisterAdminRespectsSignupSwitch(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret, time.Hour)

	session, err := svc.Register("root1", "secret1", "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, session.User.Role)

	svc.AdminSignup = false
	_, err = svc.Register("root2", "secret1", "ADMIN")
	assert.True(t, IsKind(err, KindForbidden))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "root2").Count(&count).Error)
	assert.Zero(t, count)

	merchant, err := svc.Register("shop1", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMerchant, merchant.User.Role)
}
