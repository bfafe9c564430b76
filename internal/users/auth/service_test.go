// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/blob"
	"github.com/taibuivan/vidtube/internal/platform/sec"
	"github.com/taibuivan/vidtube/pkg/uuidv7"
)

func TestMain(m *testing.M) {
	sec.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

// # Fakes

type memoryUsers struct {
	mu        sync.Mutex
	byID      map[string]User
	failWrite bool
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: make(map[string]User)}
}

func (repo *memoryUsers) FindByID(_ context.Context, id string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repo *memoryUsers) FindByIdentifier(_ context.Context, identifier string) (*User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.byID {
		if user.Username == identifier || user.Email == identifier {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.byID {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repo *memoryUsers) Create(_ context.Context, user *User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.failWrite {
		return apperr.Internal(assert.AnError)
	}
	repo.byID[user.ID] = *user
	return nil
}

func (repo *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	return repo.mutate(userID, func(user *User) { user.PasswordHash = newHash })
}

func (repo *memoryUsers) SetRefreshTokenHash(_ context.Context, userID, tokenHash string) error {
	return repo.mutate(userID, func(user *User) { user.RefreshTokenHash = tokenHash })
}

func (repo *memoryUsers) ClearRefreshTokenHash(_ context.Context, userID string) error {
	return repo.mutate(userID, func(user *User) { user.RefreshTokenHash = "" })
}

func (repo *memoryUsers) RotateRefreshTokenHash(_ context.Context, userID, oldHash, newHash string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.byID[userID]
	if !ok || user.RefreshTokenHash != oldHash {
		return false, nil
	}
	user.RefreshTokenHash = newHash
	repo.byID[userID] = user
	return true, nil
}

func (repo *memoryUsers) mutate(userID string, apply func(*User)) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	apply(&user)
	repo.byID[userID] = user
	return nil
}

// # Fixtures

type fixture struct {
	service *Service
	users   *memoryUsers
	blobs   *blob.MemoryStore
	codec   *sec.TokenCodec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	codec, err := sec.NewTokenCodec(
		"access-secret-access-secret-access-secret",
		"refresh-secret-refresh-secret-refresh-secret",
		15*time.Minute, 240*time.Hour, "vidtube.test",
	)
	require.NoError(t, err)

	users := newMemoryUsers()
	blobs := blob.NewMemoryStore(0)
	return &fixture{service: NewService(users, codec, blobs), users: users, blobs: blobs, codec: codec}
}

// seed registers an identity directly in the store and returns its id.
func (f *fixture) seed(t *testing.T, username, email, password string) string {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	id := uuidv7.New()
	require.NoError(t, f.users.Create(context.Background(), &User{
		ID: id, Username: username, Email: email, FullName: username, PasswordHash: hash,
	}))
	return id
}

func spool(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o600))
	return path
}

// # Register

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.Register(ctx, RegisterInput{
		Username:   "  Alice ",
		Email:      "Alice@Example.com",
		FullName:   "Alice",
		Password:   "correct horse",
		AvatarPath: spool(t, "a.png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, f.blobs.Exists(user.AvatarURL))
	assert.Empty(t, user.CoverURL)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = f.service.Register(ctx, RegisterInput{
		Username: "alice", Email: "other@example.com", FullName: "A", Password: "correct horse",
		AvatarPath: spool(t, "b.png"),
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}

func TestRegister_AvatarRequired(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "bob@example.com", FullName: "Bob", Password: "correct horse",
	})
	assert.True(t, apperr.IsCode(err, apperr.CodeValidation))
}

func TestRegister_InsertFailureReleasesBlobs(t *testing.T) {
	f := newFixture(t)
	f.users.failWrite = true

	_, err := f.service.Register(context.Background(), RegisterInput{
		Username: "carol", Email: "carol@example.com", FullName: "Carol", Password: "correct horse",
		AvatarPath: spool(t, "a.png"),
		CoverPath:  spool(t, "c.png"),
	})
	require.Error(t, err)
	assert.Zero(t, f.blobs.Len())
	assert.Len(t, f.blobs.Deleted, 2)
}

// # Login

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seed(t, "dave", "dave@example.com", "correct horse")

	tests := []struct {
		name       string
		identifier string
		password   string
		code       string
	}{
		{"by username", "dave", "correct horse", ""},
		{"by email, mixed case", "DAVE@example.com", "correct horse", ""},
		{"unknown user", "nobody", "correct horse", apperr.CodeNotFound},
		{"wrong password", "dave", "wrong", apperr.CodeUnauthorized},
		{"missing identifier", "", "x", apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := f.service.Login(ctx, tt.identifier, tt.password)
			if tt.code != "" {
				assert.True(t, apperr.IsCode(err, tt.code), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, session.User.ID)

			subject, err := f.codec.Verify(session.AccessToken, sec.KindAccess)
			require.NoError(t, err)
			assert.Equal(t, id, subject)
		})
	}
}

// # Refresh

func TestRefresh_RotationRejectsReuse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "erin", "erin@example.com", "correct horse")

	first, err := f.service.Login(ctx, "erin", "correct horse")
	require.NoError(t, err)

	second, err := f.service.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.service.Refresh(ctx, first.RefreshToken)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	third, err := f.service.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, third.AccessToken)
}

func TestRefresh_SupersededByLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "frank", "frank@example.com", "correct horse")

	first, err := f.service.Login(ctx, "frank", "correct horse")
	require.NoError(t, err)
	_, err = f.service.Login(ctx, "frank", "correct horse")
	require.NoError(t, err)

	_, err = f.service.Refresh(ctx, first.RefreshToken)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
}

func TestRefresh_RejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seed(t, "gina", "gina@example.com", "correct horse")

	session, err := f.service.Login(ctx, "gina", "correct horse")
	require.NoError(t, err)

	ghost, _, err := f.codec.IssueRefreshToken(uuidv7.New())
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"access token": session.AccessToken,
		"unknown user": ghost,
		"never stored": mustIssueRefresh(t, f.codec, id),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.service.Refresh(ctx, token)
			assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized), "got %v", err)
		})
	}
}

func TestRefresh_ConcurrentExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "hank", "hank@example.com", "correct horse")

	session, err := f.service.Login(ctx, "hank", "correct horse")
	require.NoError(t, err)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.Refresh(ctx, session.RefreshToken); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

// # Logout & Password

func TestLogout_InvalidatesRefreshAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seed(t, "ivy", "ivy@example.com", "correct horse")

	session, err := f.service.Login(ctx, "ivy", "correct horse")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, id))
	require.NoError(t, f.service.Logout(ctx, id))

	_, err = f.service.Refresh(ctx, session.RefreshToken)
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	assert.True(t, apperr.IsCode(f.service.Logout(ctx, ""), apperr.CodeUnauthorized))
}

func TestChangePassword_KeepsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seed(t, "jack", "jack@example.com", "correct horse")

	session, err := f.service.Login(ctx, "jack", "correct horse")
	require.NoError(t, err)

	err = f.service.ChangePassword(ctx, id, "wrong horse", "battery staple")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	require.NoError(t, f.service.ChangePassword(ctx, id, "correct horse", "battery staple"))

	_, err = f.service.Login(ctx, "jack", "correct horse")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	_, err = f.service.Refresh(ctx, session.RefreshToken)
	assert.NoError(t, err)
}

func TestChangePassword_SameAsOld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.seed(t, "kate", "kate@example.com", "correct horse")

	err := f.service.ChangePassword(ctx, id, "wrong horse", "wrong horse")
	assert.True(t, apperr.IsCode(err, apperr.CodeUnauthorized))

	require.NoError(t, f.service.ChangePassword(ctx, id, "correct horse", "correct horse"))

	_, err = f.service.Login(ctx, "kate", "correct horse")
	assert.NoError(t, err)
}

func mustIssueRefresh(t *testing.T, codec *sec.TokenCodec, id string) string {
	t.Helper()
	token, _, err := codec.IssueRefreshToken(id)
	require.NoError(t, err)
	return token
}
