package db

import (
	"context"

	"github.com/quillhq/writeflow/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoTagRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// AttachFlow upserts the tag and bumps postsCount only when the flow
// was not already attached, so re-publishing the same tags never
// double-counts.
func (r *MongoTagRepository) AttachFlow(ctx context.Context, tag, flowId string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": tag},
		bson.M{
			"$addToSet":    bson.M{"flows": flowId},
			"$setOnInsert": bson.M{"createdOn": nowMillis()},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return translateMongoError(err)
	}
	if res.ModifiedCount > 0 || res.UpsertedCount > 0 {
		_, err = r.collection.UpdateOne(ctx, bson.M{"_id": tag}, bson.M{"$inc": bson.M{"postsCount": 1}})
	}
	return translateMongoError(err)
}

func (r *MongoTagRepository) FindOneById(ctx context.Context, tag string) (*models.FlowTagModel, error) {
	tagModel := &models.FlowTagModel{}
	err := r.collection.FindOne(ctx, bson.M{"_id": tag}).Decode(tagModel)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return tagModel, nil
}

func (r *MongoTagRepository) GetRanked(ctx context.Context, limit int64) []models.FlowTagModel {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "postsCount", Value: -1}}).SetLimit(limit))
	if err != nil {
		r.logger.Error("Failed fetching tags", zap.Error(err))
		return []models.FlowTagModel{}
	}
	tags := []models.FlowTagModel{}
	if err := cursor.All(ctx, &tags); err != nil {
		r.logger.Error("Failed decoding tags", zap.Error(err))
		return []models.FlowTagModel{}
	}
	return tags
}
