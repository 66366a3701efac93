package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"campusgate/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AuthRecord{}, &domain.LostfoundItem{}))
	return db
}

func sampleRecord(cardnum, platform, tokenHash string) *domain.AuthRecord {
	now := time.Now().UTC()
	return &domain.AuthRecord{
		Cardnum:           cardnum,
		Platform:          platform,
		TokenHash:         tokenHash,
		TokenEncrypted:    "tok-ct",
		PasswordEncrypted: "pw-ct",
		PasswordHash:      "pw-hash",
		Name:              "Zhang San",
		Schoolnum:         "71118000",
		Registered:        now,
		LastInvoked:       now,
	}
}

func TestCredentialRepository_InsertAndFind(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("21318000", "app", "hash-a")))

	rec, err := repo.FindByCardnumPlatform(ctx, "21318000", "app")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "hash-a", rec.TokenHash)

	rec, err = repo.FindByTokenHash(ctx, "hash-a")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "21318000", rec.Cardnum)
}

func TestCredentialRepository_MissIsNilNotError(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	rec, err := repo.FindByCardnumPlatform(ctx, "nobody", "app")
	assert.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = repo.FindByTokenHash(ctx, "no-such-hash")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCredentialRepository_OneRecordPerCardnumPlatform(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("21318000", "app", "hash-a")))
	// Same person on another platform is fine.
	require.NoError(t, repo.Insert(ctx, sampleRecord("21318000", "web", "hash-b")))
	// Same pair again violates the unique index.
	assert.Error(t, repo.Insert(ctx, sampleRecord("21318000", "app", "hash-c")))
}

func TestCredentialRepository_UpdateSecrets(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("21318000", "app", "hash-a")))

	err := repo.UpdateSecrets(ctx, "21318000", "app", map[string]any{
		"token_encrypted":     "tok-ct-2",
		"password_encrypted":  "pw-ct-2",
		"password_hash":       "pw-hash-2",
		"gpassword_encrypted": "",
	})
	require.NoError(t, err)

	rec, err := repo.FindByCardnumPlatform(ctx, "21318000", "app")
	require.NoError(t, err)
	assert.Equal(t, "tok-ct-2", rec.TokenEncrypted)
	assert.Equal(t, "pw-hash-2", rec.PasswordHash)
	// Token hash survives a secret rewrite.
	assert.Equal(t, "hash-a", rec.TokenHash)
}

func TestCredentialRepository_Remove(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("21318000", "app", "hash-a")))
	require.NoError(t, repo.Remove(ctx, "21318000", "app"))

	rec, err := repo.FindByCardnumPlatform(ctx, "21318000", "app")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCredentialRepository_RemoveByTokenHash(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleRecord("21318000", "app", "hash-a")))
	require.NoError(t, repo.RemoveByTokenHash(ctx, "hash-a"))

	rec, err := repo.FindByTokenHash(ctx, "hash-a")
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCredentialRepository_TouchLastInvoked(t *testing.T) {
	repo := NewCredentialRepository(openTestDB(t))
	ctx := context.Background()

	rec := sampleRecord("21318000", "app", "hash-a")
	rec.LastInvoked = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Insert(ctx, rec))

	later := time.Now().UTC()
	require.NoError(t, repo.TouchLastInvoked(ctx, "hash-a", later))

	got, err := repo.FindByTokenHash(ctx, "hash-a")
	require.NoError(t, err)
	assert.True(t, got.LastInvoked.After(rec.Registered.Add(-time.Minute)))
	assert.WithinDuration(t, later, got.LastInvoked, time.Second)
}
