package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"cherishedwords/internal/database"
	"cherishedwords/internal/models"
	"cherishedwords/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRepos(t *testing.T) map[string]repositories.UserRepository {
	db, err := database.Open(database.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	return map[string]repositories.UserRepository{
		"gorm": repositories.NewGORMUserRepository(db),
		"mock": repositories.NewMockUserRepository(),
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	for name, repo := range userRepos(t) {
		t.Run(name, func(t *testing.T) {
			u := &models.User{Email: "ana@example.com", Password: "hash"}
			require.NoError(t, repo.Create(ctx, u))
			assert.NotEmpty(t, u.ID)

			byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
			require.NoError(t, err)
			assert.Equal(t, u.ID, byEmail.ID)

			byID, err := repo.GetByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", byID.Email)

			_, err = repo.GetByEmail(ctx, "nobody@example.com")
			assert.ErrorIs(t, err, repositories.ErrUserNotFound)

			err = repo.Create(ctx, &models.User{Email: "ana@example.com", Password: "other"})
			assert.Error(t, err)
		})
	}
}
