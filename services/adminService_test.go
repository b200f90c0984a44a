package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Kariqs/aroena-api/testutils"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(t *testing.T) *AdminService {
	t.Helper()
	db := testutils.SetupDB(t)
	return NewAdminService(db, utils.NewTokenManager("test-secret", time.Hour), utils.NewMemoryRevocationStore())
}

func TestAdminService_CreateAndLogin(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	admin, err := admins.CreateAdmin(ctx, " Manager@Aroena.rw ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "manager@aroena.rw", admin.Email)
	assert.NotEqual(t, "secret123", admin.Password)

	result, err := admins.Login(ctx, "manager@aroena.rw", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, admin.ID, result.Admin.ID)
	assert.Equal(t, "manager@aroena.rw", result.Admin.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

	claims, err := admins.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.ID)
}

func TestAdminService_DuplicateEmailIsBadRequest(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	_, err := admins.CreateAdmin(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)

	_, err = admins.CreateAdmin(ctx, "OWNER@aroena.rw", "another1")
	requireKind(t, err, KindBadRequest)

	list, err := admins.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdminService_LoginFailuresAreIndistinguishable(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	_, err := admins.CreateAdmin(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)

	_, wrongPassword := admins.Login(ctx, "owner@aroena.rw", "wrong-password")
	_, unknownEmail := admins.Login(ctx, "ghost@aroena.rw", "secret123")

	requireKind(t, wrongPassword, KindUnauthorized)
	requireKind(t, unknownEmail, KindUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAdminService_LogoutRevokesToken(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	_, err := admins.CreateAdmin(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)
	result, err := admins.Login(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)

	claims, err := admins.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	require.NoError(t, admins.Logout(ctx, claims))

	_, err = admins.Authenticate(ctx, result.Token)
	requireKind(t, err, KindUnauthorized)

	_, err = admins.Authenticate(ctx, "not-a-token")
	requireKind(t, err, KindUnauthorized)
}

func TestAdminService_ListAndDelete(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	first, err := admins.CreateAdmin(ctx, "a@aroena.rw", "secret123")
	require.NoError(t, err)
	_, err = admins.CreateAdmin(ctx, "b@aroena.rw", "secret123")
	require.NoError(t, err)

	list, err := admins.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a@aroena.rw", list[0].Email)

	require.NoError(t, admins.DeleteAdmin(ctx, first.ID))
	requireKind(t, admins.DeleteAdmin(ctx, first.ID), KindNotFound)
}

func TestAdminService_RefusesToDeleteLastAdmin(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	only, err := admins.CreateAdmin(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)

	assert.ErrorIs(t, admins.DeleteAdmin(ctx, only.ID), ErrLastAdmin)
	requireKind(t, admins.DeleteAdmin(ctx, only.ID+1), KindNotFound)

	list, err := admins.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAdminService_DeletedAdminTokenRejected(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	_, err := admins.CreateAdmin(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)
	leaving, err := admins.CreateAdmin(ctx, "leaving@aroena.rw", "secret123")
	require.NoError(t, err)

	result, err := admins.Login(ctx, "leaving@aroena.rw", "secret123")
	require.NoError(t, err)
	_, err = admins.Authenticate(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, admins.DeleteAdmin(ctx, leaving.ID))

	_, err = admins.Authenticate(ctx, result.Token)
	requireKind(t, err, KindUnauthorized)
}

func TestAdminService_BootstrapAdmin(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	_, err := admins.BootstrapAdmin(ctx, "", "secret123")
	requireKind(t, err, KindBadRequest)

	first, err := admins.BootstrapAdmin(ctx, "owner@aroena.rw", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "owner@aroena.rw", first.Email)

	_, err = admins.BootstrapAdmin(ctx, "second@aroena.rw", "secret123")
	assert.ErrorIs(t, err, ErrAdminRequired)
}

func TestAdminService_BootstrapAdminConcurrent(t *testing.T) {
	admins := newTestAdminService(t)
	ctx := context.Background()

	const callers = 8
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		refused   atomic.Int32
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := admins.BootstrapAdmin(ctx, fmt.Sprintf("owner%d@aroena.rw", i), "secret123")
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ErrAdminRequired):
				refused.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(callers-1), refused.Load())

	list, err := admins.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
