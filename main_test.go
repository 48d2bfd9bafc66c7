package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akhand-data/akhanddatabackend/config"
	"github.com/akhand-data/akhanddatabackend/models"
)

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Count() (int64, error) {
	return int64(len(f.users)), nil
}

func TestBootstrapOperatorCreatesFirstAccount(t *testing.T) {
	repo := &fakeUserRepo{}
	cfg := config.Config{AdminUsername: "admin", AdminPassword: "s3cret"}

	require.NoError(t, bootstrapOperator(repo, cfg))
	require.Len(t, repo.users, 1)
	assert.Equal(t, "admin", repo.users[0].Username)
	assert.True(t, repo.users[0].CheckPassword("s3cret"))
}

func TestBootstrapOperatorSkipsWhenAccountExists(t *testing.T) {
	existing := &models.User{Username: "operator"}
	require.NoError(t, existing.SetPassword("old"))
	repo := &fakeUserRepo{users: []*models.User{existing}}
	cfg := config.Config{AdminUsername: "admin", AdminPassword: "s3cret"}

	require.NoError(t, bootstrapOperator(repo, cfg))
	// any existing account suppresses bootstrap, even under another name
	assert.Len(t, repo.users, 1)
}
