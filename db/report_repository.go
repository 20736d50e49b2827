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

type MongoReportRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (r *MongoReportRepository) Save(ctx context.Context, report *models.ReportModel) error {
	report.Id()
	if report.CreatedOn == 0 {
		report.CreatedOn = nowMillis()
	}
	if len(report.Status) == 0 {
		report.Status = models.ReportPending
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": report.ReportId}, report, options.Replace().SetUpsert(true))
	return translateMongoError(err)
}

// GetReportedFlowIds lists the flows this reporter has raised reports
// against; the feed hides them for that viewer.
func (r *MongoReportRepository) GetReportedFlowIds(ctx context.Context, reporterId string) []string {
	cursor, err := r.collection.Find(ctx, bson.M{"reporterId": reporterId})
	if err != nil {
		r.logger.Error("Failed getting reports", zap.Error(err))
		return nil
	}
	reports := []models.ReportModel{}
	if err := cursor.All(ctx, &reports); err != nil {
		r.logger.Error("Failed decoding reports", zap.Error(err))
		return nil
	}
	return funk.Map(reports, func(report models.ReportModel) string {
		return report.FlowId
	}).([]string)
}
