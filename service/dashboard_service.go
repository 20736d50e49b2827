package service

import (
	"context"
	"time"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
	"go.uber.org/zap"
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// DashboardService computes the author-facing stats: views received on
// their flows and follower growth over trailing windows.
type DashboardService struct {
	db     db.SocialDbInterface
	logger *zap.Logger
}

func NewDashboardService(socialDb db.SocialDbInterface, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		db:     socialDb,
		logger: logger,
	}
}

// ViewsReceived counts views on the author's flows over the trailing
// window.
func (s *DashboardService) ViewsReceived(ctx context.Context, authorId string, days int64) int64 {
	flowIds := s.db.Flow().GetFlowIdsByAuthor(ctx, authorId)
	if len(flowIds) == 0 {
		return 0
	}
	return s.db.View().CountSince(ctx, flowIds, sinceMillis(days))
}

// ViewsPerDay buckets the window's views by calendar day, oldest day
// first. Days without views are present with a zero count.
func (s *DashboardService) ViewsPerDay(ctx context.Context, authorId string, days int64) []DayCount {
	counts := make([]DayCount, days)
	startOfToday := time.Now().Truncate(24 * time.Hour).UnixMilli()
	for i := int64(0); i < days; i++ {
		counts[i].Day = startOfToday - (days-1-i)*millisPerDay
	}

	flowIds := s.db.Flow().GetFlowIdsByAuthor(ctx, authorId)
	if len(flowIds) == 0 {
		return counts
	}
	for _, view := range s.db.View().FindSince(ctx, flowIds, counts[0].Day) {
		bucket := (view.CreatedOn - counts[0].Day) / millisPerDay
		if bucket >= 0 && bucket < days {
			counts[bucket].Count++
		}
	}
	return counts
}

// FollowerGrowth counts new followers over the trailing window.
func (s *DashboardService) FollowerGrowth(ctx context.Context, userId string, days int64) int64 {
	return s.db.FollowEdge().CountFollowersSince(ctx, userId, sinceMillis(days))
}

// RecentFlows lists the author's latest flows, drafts included.
func (s *DashboardService) RecentFlows(ctx context.Context, authorId string, limit int64) []models.FlowModel {
	if limit == 0 {
		limit = 5
	}
	return s.db.Flow().GetFeed(ctx, db.FeedFilters{AuthorId: authorId}, 0, limit)
}

// DayCount is one day's view tally; Day is the bucket's start in epoch
// millis.
type DayCount struct {
	Day   int64 `json:"day"`
	Count int64 `json:"count"`
}

func sinceMillis(days int64) int64 {
	return time.Now().UnixMilli() - days*millisPerDay
}
