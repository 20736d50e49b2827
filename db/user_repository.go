package db

import (
	"context"

	"github.com/quillhq/writeflow/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoUserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (r *MongoUserRepository) Save(ctx context.Context, user *models.UserModel) error {
	user.Id()
	if user.CreatedOn == 0 {
		user.CreatedOn = nowMillis()
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []string{}
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.UserId}, user, options.Replace().SetUpsert(true))
	return translateMongoError(err)
}

func (r *MongoUserRepository) FindOneById(ctx context.Context, userId string) (*models.UserModel, error) {
	user := &models.UserModel{}
	err := r.collection.FindOne(ctx, bson.M{"_id": userId}).Decode(user)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return user, nil
}

// FindSummaries returns slim profiles in the order of the given ids.
func (r *MongoUserRepository) FindSummaries(ctx context.Context, userIds []string) []models.UserSummary {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": userIds}})
	if err != nil {
		r.logger.Error("Failed getting user summaries", zap.Error(err))
		return []models.UserSummary{}
	}
	fetched := []models.UserSummary{}
	if err := cursor.All(ctx, &fetched); err != nil {
		r.logger.Error("Failed decoding user summaries", zap.Error(err))
		return []models.UserSummary{}
	}

	byId := make(map[string]models.UserSummary, len(fetched))
	for _, summary := range fetched {
		byId[summary.UserId] = summary
	}
	ordered := make([]models.UserSummary, 0, len(userIds))
	for _, id := range userIds {
		if summary, ok := byId[id]; ok {
			ordered = append(ordered, summary)
		}
	}
	return ordered
}

func (r *MongoUserRepository) Suggestions(ctx context.Context, excludeIds []string, limit int64) []models.UserSummary {
	cursor, err := r.collection.Find(ctx,
		bson.M{"_id": bson.M{"$nin": excludeIds}},
		options.Find().SetLimit(limit).SetSort(bson.D{{Key: "followerCount", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed getting suggestions", zap.Error(err))
		return []models.UserSummary{}
	}
	suggestions := []models.UserSummary{}
	if err := cursor.All(ctx, &suggestions); err != nil {
		r.logger.Error("Failed decoding suggestions", zap.Error(err))
		return []models.UserSummary{}
	}
	return suggestions
}

func (r *MongoUserRepository) IncFollowerCount(ctx context.Context, userId string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$inc": bson.M{"followerCount": delta}})
	return translateMongoError(err)
}

func (r *MongoUserRepository) IncFollowingCount(ctx context.Context, userId string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userId}, bson.M{"$inc": bson.M{"followingCount": delta}})
	return translateMongoError(err)
}

// AddBookmark reports false when the flow was already bookmarked.
func (r *MongoUserRepository) AddBookmark(ctx context.Context, userId, flowId string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userId},
		bson.M{"$addToSet": bson.M{"bookmarks": flowId}})
	if err != nil {
		return false, translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoUserRepository) RemoveBookmark(ctx context.Context, userId, flowId string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userId},
		bson.M{"$pull": bson.M{"bookmarks": flowId}})
	if err != nil {
		return false, translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoUserRepository) GetBookmarks(ctx context.Context, userId string) ([]string, error) {
	user := &models.UserModel{}
	err := r.collection.FindOne(ctx, bson.M{"_id": userId},
		options.FindOne().SetProjection(bson.M{"bookmarks": 1})).Decode(user)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return user.Bookmarks, nil
}

func (r *MongoUserRepository) DeleteById(ctx context.Context, userId string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": userId})
	return translateMongoError(err)
}
