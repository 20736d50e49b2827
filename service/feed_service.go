package service

import (
	"context"

	"github.com/jinzhu/copier"
	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/extensions"
	"github.com/quillhq/writeflow/models"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

// FeedService assembles viewer-facing feed pages: published flows with
// author summaries, the viewer's engagement flags and comment trees,
// all from batch queries.
type FeedService struct {
	db     db.SocialDbInterface
	logger *zap.Logger
}

func NewFeedService(socialDb db.SocialDbInterface, logger *zap.Logger) *FeedService {
	return &FeedService{
		db:     socialDb,
		logger: logger,
	}
}

// FeedFilter is the caller-facing subset of feed narrowing.
type FeedFilter struct {
	SearchText string
	Tag        string
	AuthorId   string
}

// GetFeed returns a page of published flows, newest publish first,
// minus anything the viewer reported. An empty viewerId yields the
// anonymous feed with all flags false.
func (s *FeedService) GetFeed(ctx context.Context, viewerId string, filter FeedFilter, pageNumber, pageSize int64) []*FlowView {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	var reportedIds []string
	if len(viewerId) > 0 {
		reportedIds = s.db.Report().GetReportedFlowIds(ctx, viewerId)
	}

	flows := s.db.Flow().GetFeed(ctx, db.FeedFilters{
		PublishedOnly: true,
		SearchText:    filter.SearchText,
		Tag:           filter.Tag,
		AuthorId:      filter.AuthorId,
		ExcludeIds:    reportedIds,
	}, pageNumber, pageSize)

	return s.enrich(ctx, viewerId, flows)
}

// GetFlow returns one flow enriched for the viewer. Drafts are visible
// to their author only.
func (s *FeedService) GetFlow(ctx context.Context, viewerId, flowId string) (*FlowView, error) {
	flow, err := s.db.Flow().FindOneById(ctx, flowId)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	if !flow.IsPublished && flow.UserId != viewerId {
		return nil, ErrNotFoundOrForbidden
	}

	views := s.enrich(ctx, viewerId, []models.FlowModel{*flow})
	return views[0], nil
}

// GetUserFeed is the author's own listing, drafts included, newest
// created first.
func (s *FeedService) GetUserFeed(ctx context.Context, authorId string) []models.FlowModel {
	return s.db.Flow().GetFeed(ctx, db.FeedFilters{AuthorId: authorId}, 0, 0)
}

// History lists the flows the user has viewed.
func (s *FeedService) History(ctx context.Context, userId string) []*FlowView {
	return s.enrich(ctx, userId, s.db.Flow().FindManyByIds(ctx, s.db.View().GetHistoryFlowIds(ctx, userId)))
}

func (s *FeedService) Bookmarked(ctx context.Context, userId string) []*FlowView {
	bookmarks, err := s.db.User().GetBookmarks(ctx, userId)
	if err != nil {
		if err != db.ErrNotFound {
			s.logger.Error("Failed getting bookmarks", zap.Error(err), zap.String("userId", userId))
		}
		return []*FlowView{}
	}
	return s.enrich(ctx, userId, s.db.Flow().FindManyByIds(ctx, bookmarks))
}

func (s *FeedService) Liked(ctx context.Context, userId string) []*FlowView {
	return s.enrich(ctx, userId, s.db.Flow().FindManyByIds(ctx, s.db.FlowLike().GetAllLikedFlowIds(ctx, userId)))
}

// ReportFlow files a report; the flow then drops out of the reporter's
// feed.
func (s *FeedService) ReportFlow(ctx context.Context, reporterId, flowId, title, issue string) (*models.ReportModel, error) {
	if _, err := s.db.Flow().FindOneById(ctx, flowId); err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	report := &models.ReportModel{
		ReporterId: reporterId,
		FlowId:     flowId,
		Title:      title,
		Issue:      issue,
	}
	if err := s.db.Report().Save(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// enrich runs the batch joins for a candidate flow set: the viewer's
// engagement flags concurrently with one comment fetch, then one user
// summary fetch covering authors and commenters.
func (s *FeedService) enrich(ctx context.Context, viewerId string, flows []models.FlowModel) []*FlowView {
	if len(flows) == 0 {
		return []*FlowView{}
	}

	flowIds := funk.Map(flows, func(f models.FlowModel) string { return f.FlowId }).([]string)
	engagementPromise := extensions.FetchViewerEngagementAsync(ctx, s.db, s.logger, viewerId, flowIds)

	comments := s.db.Comment().GetByFlows(ctx, flowIds)
	commentsByFlow := extensions.GroupCommentsByFlow(comments)

	userIds := funk.Map(flows, func(f models.FlowModel) string { return f.UserId }).([]string)
	userIds = append(userIds, funk.Map(comments, func(c models.CommentModel) string { return c.UserId }).([]string)...)
	users := map[string]models.UserSummary{}
	for _, summary := range s.db.User().FindSummaries(ctx, funk.UniqString(userIds)) {
		users[summary.UserId] = summary
	}

	engagement := <-engagementPromise

	views := make([]*FlowView, 0, len(flows))
	for i := range flows {
		view := &FlowView{}
		copier.Copy(&view.FlowModel, &flows[i])
		view.User = users[flows[i].UserId]
		view.IsLiked = engagement.IsLiked(flows[i].FlowId)
		view.IsBookmarked = engagement.IsBookmarked(flows[i].FlowId)
		view.Comments = toCommentViews(extensions.BuildCommentTree(commentsByFlow[flows[i].FlowId]), users)
		views = append(views, view)
	}
	return views
}
