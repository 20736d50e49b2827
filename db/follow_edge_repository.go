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

type MongoFollowEdgeRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// Insert creates the directed edge; a duplicate pair is ErrDuplicate so
// the caller can settle the follow idempotently without moving counters.
func (r *MongoFollowEdgeRepository) Insert(ctx context.Context, edge *models.FollowEdgeModel) error {
	edge.Id()
	if edge.CreatedOn == 0 {
		edge.CreatedOn = nowMillis()
	}
	_, err := r.collection.InsertOne(ctx, edge)
	return translateMongoError(err)
}

func (r *MongoFollowEdgeRepository) DeleteById(ctx context.Context, edgeId string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": edgeId})
	if err != nil {
		return false, translateMongoError(err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoFollowEdgeRepository) IsExistsById(ctx context.Context, edgeId string) bool {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": edgeId})
	if err != nil {
		r.logger.Error("Failed checking follow edge existence", zap.Error(err))
		return false
	}
	return count > 0
}

func (r *MongoFollowEdgeRepository) GetFollowers(ctx context.Context, userId string, pageNumber, pageSize int64) []string {
	skip := pageNumber * pageSize
	cursor, err := r.collection.Find(ctx, bson.M{"followeeId": userId},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}}).SetLimit(pageSize).SetSkip(skip))
	if err != nil {
		r.logger.Error("Failed getting followers", zap.Error(err))
		return nil
	}
	edges := []models.FollowEdgeModel{}
	if err := cursor.All(ctx, &edges); err != nil {
		r.logger.Error("Failed decoding followers", zap.Error(err))
		return nil
	}
	return funk.Map(edges, func(edge models.FollowEdgeModel) string {
		return edge.FollowerId
	}).([]string)
}

func (r *MongoFollowEdgeRepository) GetFollowing(ctx context.Context, userId string, pageNumber, pageSize int64) []string {
	skip := pageNumber * pageSize
	cursor, err := r.collection.Find(ctx, bson.M{"followerId": userId},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}}).SetLimit(pageSize).SetSkip(skip))
	if err != nil {
		r.logger.Error("Failed getting following", zap.Error(err))
		return nil
	}
	edges := []models.FollowEdgeModel{}
	if err := cursor.All(ctx, &edges); err != nil {
		r.logger.Error("Failed decoding following", zap.Error(err))
		return nil
	}
	return funk.Map(edges, func(edge models.FollowEdgeModel) string {
		return edge.FolloweeId
	}).([]string)
}

func (r *MongoFollowEdgeRepository) CountFollowersSince(ctx context.Context, userId string, since int64) int64 {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"followeeId": userId,
		"createdOn":  bson.M{"$gte": since},
	})
	if err != nil {
		r.logger.Error("Failed counting followers", zap.Error(err))
		return 0
	}
	return count
}
