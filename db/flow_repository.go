package db

import (
	"context"

	"github.com/quillhq/writeflow/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoFlowRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (r *MongoFlowRepository) Save(ctx context.Context, flow *models.FlowModel) error {
	flow.Id()
	if flow.CreatedOn == 0 {
		flow.CreatedOn = nowMillis()
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": flow.FlowId}, flow, options.Replace().SetUpsert(true))
	return translateMongoError(err)
}

func (r *MongoFlowRepository) FindOneById(ctx context.Context, flowId string) (*models.FlowModel, error) {
	flow := &models.FlowModel{}
	err := r.collection.FindOne(ctx, bson.M{"_id": flowId}).Decode(flow)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return flow, nil
}

func (r *MongoFlowRepository) FindManyByIds(ctx context.Context, flowIds []string) []models.FlowModel {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": flowIds}})
	if err != nil {
		r.logger.Error("Failed getting flows by ids", zap.Error(err))
		return []models.FlowModel{}
	}
	flows := []models.FlowModel{}
	if err := cursor.All(ctx, &flows); err != nil {
		r.logger.Error("Failed decoding flows", zap.Error(err))
		return []models.FlowModel{}
	}
	return flows
}

func (r *MongoFlowRepository) UpdateDraft(ctx context.Context, authorId, flowId string, upd FlowUpdate) (*models.FlowModel, error) {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}

	// Owner and draft state are part of the filter so a miss never says
	// whether the flow exists, belongs to someone else or is published.
	flow := &models.FlowModel{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": flowId, "userId": authorId, "isPublished": false},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(flow)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return flow, nil
}

// Publish stamps publishedAt at write time; the feed's secondary sort
// on createdOn keeps same-millisecond publishes in insertion order.
func (r *MongoFlowRepository) Publish(ctx context.Context, authorId, flowId string, tags []string) (*models.FlowModel, error) {
	flow := &models.FlowModel{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": flowId, "userId": authorId, "isPublished": false},
		bson.M{"$set": bson.M{"isPublished": true, "publishedAt": nowMillis(), "tags": tags}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(flow)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return flow, nil
}

func (r *MongoFlowRepository) IncLikeCount(ctx context.Context, flowId string, delta int64) (*models.FlowModel, error) {
	flow := &models.FlowModel{}
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": flowId},
		bson.M{"$inc": bson.M{"likeCount": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(flow)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return flow, nil
}

func (r *MongoFlowRepository) IncCommentCount(ctx context.Context, flowId string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": flowId}, bson.M{"$inc": bson.M{"commentCount": delta}})
	return translateMongoError(err)
}

func (r *MongoFlowRepository) IncViewCount(ctx context.Context, flowId string, delta int64) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": flowId}, bson.M{"$inc": bson.M{"viewCount": delta}})
	return translateMongoError(err)
}

func (r *MongoFlowRepository) DeleteOwned(ctx context.Context, authorId, flowId string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": flowId, "userId": authorId})
	if err != nil {
		return false, translateMongoError(err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoFlowRepository) GetFeed(ctx context.Context, feedFilters FeedFilters, pageNumber, pageSize int64) []models.FlowModel {
	filters := bson.M{}
	sort := bson.D{{Key: "createdOn", Value: -1}}

	if feedFilters.PublishedOnly {
		filters["isPublished"] = true
		// createdOn asc as a deterministic tie-break for equal publish times
		sort = bson.D{{Key: "publishedAt", Value: -1}, {Key: "createdOn", Value: 1}}
	}
	if len(feedFilters.AuthorId) > 0 {
		filters["userId"] = feedFilters.AuthorId
	}
	if len(feedFilters.Tag) > 0 {
		filters["tags"] = feedFilters.Tag
	}
	if len(feedFilters.ExcludeIds) > 0 {
		filters["_id"] = bson.M{"$nin": feedFilters.ExcludeIds}
	}
	if len(feedFilters.SearchText) > 0 {
		pattern := primitiveRegex(feedFilters.SearchText)
		filters["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	skip := pageNumber * pageSize
	cursor, err := r.collection.Find(ctx, filters,
		options.Find().SetSort(sort).SetLimit(pageSize).SetSkip(skip))
	if err != nil {
		r.logger.Error("Failed getting feed", zap.Error(err))
		return []models.FlowModel{}
	}
	flows := []models.FlowModel{}
	if err := cursor.All(ctx, &flows); err != nil {
		r.logger.Error("Failed decoding feed", zap.Error(err))
		return []models.FlowModel{}
	}
	return flows
}

func (r *MongoFlowRepository) GetDrafts(ctx context.Context, authorId string) []models.FlowModel {
	cursor, err := r.collection.Find(ctx,
		bson.M{"userId": authorId, "isPublished": false},
		options.Find().SetSort(bson.D{{Key: "createdOn", Value: -1}}))
	if err != nil {
		r.logger.Error("Failed getting drafts", zap.Error(err))
		return []models.FlowModel{}
	}
	flows := []models.FlowModel{}
	if err := cursor.All(ctx, &flows); err != nil {
		r.logger.Error("Failed decoding drafts", zap.Error(err))
		return []models.FlowModel{}
	}
	return flows
}

func (r *MongoFlowRepository) GetFlowIdsByAuthor(ctx context.Context, authorId string) []string {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": authorId},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		r.logger.Error("Failed getting author flow ids", zap.Error(err))
		return nil
	}
	flows := []models.FlowModel{}
	if err := cursor.All(ctx, &flows); err != nil {
		r.logger.Error("Failed decoding author flow ids", zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(flows))
	for _, flow := range flows {
		ids = append(ids, flow.FlowId)
	}
	return ids
}
