package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candyland-dev/candyland-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "candyland", ExpiresIn: "1h"}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	subject := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		SubjectID: subject,
		Realm:     RealmStaff,
		Email:     "admin@candyland.test",
		RoleName:  "admin",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.SubjectID)
	assert.Equal(t, RealmStaff, claims.Realm)
	assert.Equal(t, "admin@candyland.test", claims.Email)
	assert.Equal(t, "admin", claims.RoleName)
	assert.Equal(t, "candyland", claims.Issuer)
}

func TestMintAccessTokenValidation(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{SubjectID: uuid.New(), Realm: RealmClient}

	t.Run("missing secret", func(t *testing.T) {
		bad := cfg
		bad.Secret = ""
		_, err := MintAccessToken(bad, time.Now(), payload)
		assert.Error(t, err)
	})

	t.Run("missing issuer", func(t *testing.T) {
		bad := cfg
		bad.Issuer = ""
		_, err := MintAccessToken(bad, time.Now(), payload)
		assert.Error(t, err)
	})

	t.Run("invalid realm", func(t *testing.T) {
		p := payload
		p.Realm = Realm("bogus")
		_, err := MintAccessToken(cfg, time.Now(), p)
		assert.Error(t, err)
	})

	t.Run("nil subject", func(t *testing.T) {
		p := payload
		p.SubjectID = uuid.Nil
		_, err := MintAccessToken(cfg, time.Now(), p)
		assert.Error(t, err)
	})
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		SubjectID: uuid.New(),
		Realm:     RealmClient,
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.Error(t, err)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		SubjectID: uuid.New(),
		Realm:     RealmClient,
	})
	require.NoError(t, err)

	other := cfg
	other.Secret = "another-secret"
	_, err = ParseAccessToken(other, token)
	assert.Error(t, err)
}
