package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymgate/internal/token"
)

func newTestService(accessTTL, refreshTTL time.Duration) *token.Service {
	return token.NewService(token.Config{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	})
}

func TestIssuePair_AccessRoundTrip(t *testing.T) {
	svc := newTestService(15*time.Minute, 7*24*time.Hour)

	pair, err := svc.IssuePair("user-1", "ana@gym.test", "member", "gym-9", "loc-2")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	cl, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "user-1", cl.Subject)
	require.Equal(t, "ana@gym.test", cl.Email)
	require.Equal(t, "member", cl.Role)
	require.Equal(t, "gym-9", cl.GymID)
	require.Equal(t, "loc-2", cl.GymLocationID)
}

func TestIssuePair_RefreshCarriesOnlySubject(t *testing.T) {
	svc := newTestService(15*time.Minute, 7*24*time.Hour)

	pair, err := svc.IssuePair("user-2", "leo@gym.test", "admin", "", "")
	require.NoError(t, err)

	cl, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "user-2", cl.Subject)
	require.Empty(t, cl.Email)
	require.Empty(t, cl.Role)
}

func TestVerify_CrossSecretRejection(t *testing.T) {
	svc := newTestService(15*time.Minute, 7*24*time.Hour)

	pair, err := svc.IssuePair("user-3", "mia@gym.test", "staff", "", "")
	require.NoError(t, err)

	// Un refresh jamás valida como access y viceversa.
	_, err = svc.VerifyAccess(pair.RefreshToken)
	require.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = svc.VerifyRefresh(pair.AccessToken)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := newTestService(-1*time.Minute, 7*24*time.Hour)

	pair, err := svc.IssuePair("user-4", "tom@gym.test", "member", "", "")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, token.ErrInvalidToken)

	// El refresh del mismo par sigue vivo.
	_, err = svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
}

func TestVerifyAccess_Garbage(t *testing.T) {
	svc := newTestService(15*time.Minute, 7*24*time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.VerifyAccess(raw)
		require.ErrorIs(t, err, token.ErrInvalidToken, "raw=%q", raw)
	}
}

func TestVerify_DifferentSigningServiceRejected(t *testing.T) {
	svc := newTestService(15*time.Minute, 7*24*time.Hour)
	other := token.NewService(token.Config{
		AccessSecret:  []byte("another-access-secret"),
		RefreshSecret: []byte("another-refresh-secret"),
	})

	pair, err := other.IssuePair("user-5", "eva@gym.test", "member", "", "")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}
