package main

import (
	"context"
	"net/http"
	"os"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/service"
	"github.com/quillhq/writeflow/web"
	"go.uber.org/zap"
)

type Inject struct {
	SocialDb db.SocialDbInterface

	FlowService        *service.FlowService
	EngagementService  *service.EngagementService
	FollowGraphService *service.FollowGraphService
	FeedService        *service.FeedService
	DashboardService   *service.DashboardService

	Router http.Handler
}

func NewInject(ctx context.Context, logger *zap.Logger) (*Inject, error) {
	inj := &Inject{}

	mongoDb, err := db.NewMongoDb(ctx, os.Getenv("MONGO_URI"), os.Getenv("MONGO_DB"), logger)
	if err != nil {
		return nil, err
	}
	if err := mongoDb.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	inj.SocialDb = mongoDb

	inj.FlowService = service.NewFlowService(inj.SocialDb, logger)
	inj.EngagementService = service.NewEngagementService(inj.SocialDb, logger)
	inj.FollowGraphService = service.NewFollowGraphService(inj.SocialDb, logger)
	inj.FeedService = service.NewFeedService(inj.SocialDb, logger)
	inj.DashboardService = service.NewDashboardService(inj.SocialDb, logger)

	auth := web.NewAuthMiddleware(os.Getenv("JWT_SECRET"), logger)
	inj.Router = web.NewRouter(
		auth,
		web.NewFlowHandler(inj.FlowService, inj.FeedService, logger),
		web.NewEngagementHandler(inj.EngagementService, logger),
		web.NewFollowHandler(inj.FollowGraphService, logger),
		web.NewDashboardHandler(inj.DashboardService, logger),
	)
	return inj, nil
}
