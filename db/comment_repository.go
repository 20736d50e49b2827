package db

import (
	"context"

	"github.com/quillhq/writeflow/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoCommentRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (r *MongoCommentRepository) Save(ctx context.Context, comment *models.CommentModel) error {
	comment.Id()
	if comment.CreatedOn == 0 {
		comment.CreatedOn = nowMillis()
	}
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": comment.CommentId}, comment, options.Replace().SetUpsert(true))
	return translateMongoError(err)
}

func (r *MongoCommentRepository) FindOneById(ctx context.Context, commentId string) (*models.CommentModel, error) {
	comment := &models.CommentModel{}
	err := r.collection.FindOne(ctx, bson.M{"_id": commentId}).Decode(comment)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return comment, nil
}

// GetByFlow fetches the whole comment set for a flow in one query,
// oldest first; tree shape is assembled in memory by the caller.
func (r *MongoCommentRepository) GetByFlow(ctx context.Context, flowId string) []models.CommentModel {
	cursor, err := r.collection.Find(ctx, bson.M{"flowId": flowId},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed getting comments", zap.Error(err))
		return []models.CommentModel{}
	}
	comments := []models.CommentModel{}
	if err := cursor.All(ctx, &comments); err != nil {
		r.logger.Error("Failed decoding comments", zap.Error(err))
		return []models.CommentModel{}
	}
	return comments
}

// GetByFlows is the feed-side batch: comments for every candidate flow
// in one $in query, grouped by the caller.
func (r *MongoCommentRepository) GetByFlows(ctx context.Context, flowIds []string) []models.CommentModel {
	cursor, err := r.collection.Find(ctx, bson.M{"flowId": bson.M{"$in": flowIds}},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: 1}}))
	if err != nil {
		r.logger.Error("Failed getting comments", zap.Error(err))
		return []models.CommentModel{}
	}
	comments := []models.CommentModel{}
	if err := cursor.All(ctx, &comments); err != nil {
		r.logger.Error("Failed decoding comments", zap.Error(err))
		return []models.CommentModel{}
	}
	return comments
}

func (r *MongoCommentRepository) AddLike(ctx context.Context, commentId, userId string) (*models.CommentModel, error) {
	comment := &models.CommentModel{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": commentId},
		bson.M{"$addToSet": bson.M{"likes": userId}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(comment)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return comment, nil
}

func (r *MongoCommentRepository) RemoveLike(ctx context.Context, commentId, userId string) (*models.CommentModel, error) {
	comment := &models.CommentModel{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": commentId},
		bson.M{"$pull": bson.M{"likes": userId}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(comment)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return comment, nil
}

// DeleteById reports whether this call removed the row, so a
// concurrent identical delete cannot move the comment counter twice.
func (r *MongoCommentRepository) DeleteById(ctx context.Context, commentId string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": commentId})
	if err != nil {
		return false, translateMongoError(err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoCommentRepository) DeleteByFlow(ctx context.Context, flowId string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"flowId": flowId})
	return translateMongoError(err)
}
