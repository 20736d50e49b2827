package db

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDb implements SocialDbInterface over a single mongo database.
type MongoDb struct {
	database *mongo.Database
	logger   *zap.Logger
}

func NewMongoDb(ctx context.Context, uri, name string, logger *zap.Logger) (*MongoDb, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &MongoDb{database: client.Database(name), logger: logger}, nil
}

// EnsureIndexes creates the schema-level uniqueness constraints. The
// composite _id on likes, views and follow edges already guards those
// pairs; users additionally need unique username and email.
func (d *MongoDb) EnsureIndexes(ctx context.Context) error {
	_, err := d.database.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return err
	}

	secondary := map[string][]mongo.IndexModel{
		"flows": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "isPublished", Value: 1}, {Key: "publishedAt", Value: -1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
		"comments": {
			{Keys: bson.D{{Key: "flowId", Value: 1}}},
			{Keys: bson.D{{Key: "parentId", Value: 1}}},
		},
		"follow_edges": {
			{Keys: bson.D{{Key: "followerId", Value: 1}}},
			{Keys: bson.D{{Key: "followeeId", Value: 1}}},
		},
		"flow_likes": {
			{Keys: bson.D{{Key: "flowId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		"views": {
			{Keys: bson.D{{Key: "flowId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		"reports": {
			{Keys: bson.D{{Key: "reporterId", Value: 1}}},
		},
	}
	for coll, indexes := range secondary {
		if _, err := d.database.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}

func (d *MongoDb) User() UserRepository {
	return &MongoUserRepository{collection: d.database.Collection("users"), logger: d.logger}
}

func (d *MongoDb) Flow() FlowRepository {
	return &MongoFlowRepository{collection: d.database.Collection("flows"), logger: d.logger}
}

func (d *MongoDb) FlowLike() FlowLikeRepository {
	return &MongoFlowLikeRepository{collection: d.database.Collection("flow_likes"), logger: d.logger}
}

func (d *MongoDb) View() ViewRepository {
	return &MongoViewRepository{collection: d.database.Collection("views"), logger: d.logger}
}

func (d *MongoDb) FollowEdge() FollowEdgeRepository {
	return &MongoFollowEdgeRepository{collection: d.database.Collection("follow_edges"), logger: d.logger}
}

func (d *MongoDb) Comment() CommentRepository {
	return &MongoCommentRepository{collection: d.database.Collection("comments"), logger: d.logger}
}

func (d *MongoDb) Tag() TagRepository {
	return &MongoTagRepository{collection: d.database.Collection("tags"), logger: d.logger}
}

func (d *MongoDb) Report() ReportRepository {
	return &MongoReportRepository{collection: d.database.Collection("reports"), logger: d.logger}
}

func translateMongoError(err error) error {
	if err == nil {
		return nil
	}
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// primitiveRegex builds a case-insensitive substring matcher, quoting
// the text so user input never becomes a regex.
func primitiveRegex(text string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}
