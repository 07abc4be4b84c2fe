package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pingup/network/pkg/internal/database"
	"github.com/pingup/network/pkg/internal/models"
	"github.com/pingup/network/pkg/internal/uploader"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Driver: database.DriverSqlite,
		Dsn:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	t.Cleanup(func() {
		if raw, err := db.DB(); err == nil {
			_ = raw.Close()
		}
	})
	return db
}

func registerUser(t *testing.T, accounts *AccountService, email, name string) models.User {
	t.Helper()
	user, created, err := accounts.UpsertIfAbsent(context.Background(), models.User{Email: email, Name: name})
	require.NoError(t, err)
	require.True(t, created)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, author models.User) models.Post {
	t.Helper()
	post := models.Post{Text: "hello", AccountID: author.ID}
	require.NoError(t, db.Create(&post).Error)
	return post
}

type memoryUploader struct {
	mu    sync.Mutex
	files []uploader.File
}

func (v *memoryUploader) Upload(ctx context.Context, file uploader.File, folder string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.files = append(v.files, file)
	return fmt.Sprintf("https://cdn.test/%s/%d", folder, len(v.files)), nil
}
