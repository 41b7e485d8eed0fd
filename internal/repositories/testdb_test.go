package repositories

import (
	"fmt"
	"testing"

	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database migrated to the
// production schema. TranslateError matches the production gorm config
// so duplicate-key behavior is identical.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.FollowRequest{},
		&models.Post{},
		&models.PostMedia{},
		&models.Reel{},
		&models.Comment{},
		&models.Interaction{},
		&models.StorySeen{},
		&models.StoryReaction{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, private bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		FullName:  username,
		IsPrivate: private,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, caption string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Caption: caption}
	require.NoError(t, db.Create(post).Error)
	return post
}
