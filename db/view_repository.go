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

type MongoViewRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// Insert records a view at most once per (user, flow); a repeat insert
// returns ErrDuplicate so the caller skips the viewCount increment.
func (r *MongoViewRepository) Insert(ctx context.Context, view *models.ViewModel) error {
	view.Id()
	if view.CreatedOn == 0 {
		view.CreatedOn = nowMillis()
	}
	_, err := r.collection.InsertOne(ctx, view)
	return translateMongoError(err)
}

func (r *MongoViewRepository) IsExistsById(ctx context.Context, viewId string) bool {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": viewId})
	if err != nil {
		r.logger.Error("Failed checking view existence", zap.Error(err))
		return false
	}
	return count > 0
}

func (r *MongoViewRepository) GetHistoryFlowIds(ctx context.Context, userId string) []string {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userId},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed getting view history", zap.Error(err))
		return nil
	}
	views := []models.ViewModel{}
	if err := cursor.All(ctx, &views); err != nil {
		r.logger.Error("Failed decoding view history", zap.Error(err))
		return nil
	}
	return funk.Map(views, func(view models.ViewModel) string {
		return view.FlowId
	}).([]string)
}

func (r *MongoViewRepository) CountSince(ctx context.Context, flowIds []string, since int64) int64 {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"flowId":    bson.M{"$in": flowIds},
		"createdOn": bson.M{"$gte": since},
	})
	if err != nil {
		r.logger.Error("Failed counting views", zap.Error(err))
		return 0
	}
	return count
}

func (r *MongoViewRepository) FindSince(ctx context.Context, flowIds []string, since int64) []models.ViewModel {
	cursor, err := r.collection.Find(ctx, bson.M{
		"flowId":    bson.M{"$in": flowIds},
		"createdOn": bson.M{"$gte": since},
	}, options.Find().SetSort(bson.D{{Key: "createdOn", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed getting views", zap.Error(err))
		return []models.ViewModel{}
	}
	views := []models.ViewModel{}
	if err := cursor.All(ctx, &views); err != nil {
		r.logger.Error("Failed decoding views", zap.Error(err))
		return []models.ViewModel{}
	}
	return views
}

func (r *MongoViewRepository) DeleteByFlow(ctx context.Context, flowId string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"flowId": flowId})
	return translateMongoError(err)
}
