package repositories

import (
	"context"
	"time"

	"github.com/tahmid-rayat/momentgram/backend/internal/apperrors"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// StoryRepository defines the interface for story operations. Story
// documents live in MongoDB; seen/reaction sets live in PostgreSQL.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetStoriesByUserIDs(ctx context.Context, userIDs []uint) ([]models.Story, error)
	DeleteExpiredStories(ctx context.Context) error
	MarkSeen(storySeen *models.StorySeen) error
	GetSeenStoryIDs(userID uint, storyIDs []string) (map[string]bool, error)
	AddReaction(reaction *models.StoryReaction) error
}

type storyRepository struct {
	mongoCollection *mongo.Collection
	pgDB            *gorm.DB
}

func NewStoryRepository(mongoDB *mongo.Database, pgDB *gorm.DB) StoryRepository {
	return &storyRepository{
		mongoCollection: mongoDB.Collection("stories"),
		pgDB:            pgDB,
	}
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = time.Now().Add(24 * time.Hour)
	if _, err := r.mongoCollection.InsertOne(ctx, story); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.InvalidOperation("invalid story ID format")
	}
	var story models.Story
	err = r.mongoCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NotFound("story not found")
		}
		return nil, apperrors.Internal(err)
	}
	return &story, nil
}

// GetStoriesByUserIDs returns the unexpired stories of the given
// authors, newest first.
func (r *storyRepository) GetStoriesByUserIDs(ctx context.Context, userIDs []uint) ([]models.Story, error) {
	filter := bson.M{
		"user_id":    bson.M{"$in": userIDs},
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.mongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, apperrors.Internal(err)
	}
	return stories, nil
}

func (r *storyRepository) DeleteExpiredStories(ctx context.Context) error {
	_, err := r.mongoCollection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (r *storyRepository) MarkSeen(storySeen *models.StorySeen) error {
	storySeen.SeenAt = time.Now()
	err := r.pgDB.Create(storySeen).Error
	// A repeat view is not an error; the unique index just refuses it.
	return apperrors.FromStorage(err, "story not found", "story already seen")
}

func (r *storyRepository) GetSeenStoryIDs(userID uint, storyIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var seen []models.StorySeen
	err := r.pgDB.Where("user_id = ? AND story_id IN ?", userID, storyIDs).Find(&seen).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, s := range seen {
		result[s.StoryID] = true
	}
	return result, nil
}

func (r *storyRepository) AddReaction(reaction *models.StoryReaction) error {
	reaction.CreatedAt = time.Now()
	if err := r.pgDB.Create(reaction).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
