package db

import (
	"context"

	"github.com/quillhq/writeflow/models"
	"github.com/thoas/go-funk"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoFlowLikeRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// Insert is the concurrency gate for like toggles: the composite _id
// rejects a second like by the same user, surfaced as ErrDuplicate.
func (r *MongoFlowLikeRepository) Insert(ctx context.Context, like *models.FlowLikeModel) error {
	like.Id()
	if like.CreatedOn == 0 {
		like.CreatedOn = nowMillis()
	}
	_, err := r.collection.InsertOne(ctx, like)
	return translateMongoError(err)
}

func (r *MongoFlowLikeRepository) DeleteById(ctx context.Context, likeId string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": likeId})
	if err != nil {
		return false, translateMongoError(err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoFlowLikeRepository) IsExistsById(ctx context.Context, likeId string) bool {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": likeId})
	if err != nil {
		r.logger.Error("Failed checking like existence", zap.Error(err))
		return false
	}
	return count > 0
}

// GetLikedFlowIds is the batch half of the engagement join: one query
// for the viewer's likes restricted to the candidate flow id set.
func (r *MongoFlowLikeRepository) GetLikedFlowIds(ctx context.Context, userId string, flowIds []string) []string {
	cursor, err := r.collection.Find(ctx, bson.M{
		"userId": userId,
		"flowId": bson.M{"$in": flowIds},
	})
	if err != nil {
		r.logger.Error("Failed getting liked flows", zap.Error(err))
		return nil
	}
	likes := []models.FlowLikeModel{}
	if err := cursor.All(ctx, &likes); err != nil {
		r.logger.Error("Failed decoding liked flows", zap.Error(err))
		return nil
	}
	return funk.Map(likes, func(like models.FlowLikeModel) string {
		return like.FlowId
	}).([]string)
}

func (r *MongoFlowLikeRepository) GetAllLikedFlowIds(ctx context.Context, userId string) []string {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userId},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed getting liked flows", zap.Error(err))
		return nil
	}
	likes := []models.FlowLikeModel{}
	if err := cursor.All(ctx, &likes); err != nil {
		r.logger.Error("Failed decoding liked flows", zap.Error(err))
		return nil
	}
	return funk.Map(likes, func(like models.FlowLikeModel) string {
		return like.FlowId
	}).([]string)
}

func (r *MongoFlowLikeRepository) DeleteByFlow(ctx context.Context, flowId string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"flowId": flowId})
	return translateMongoError(err)
}
