package service

import (
	"context"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/extensions"
	"github.com/quillhq/writeflow/models"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

// EngagementService owns likes, views, bookmarks and comments, and the
// denormalized counters they move on flows.
type EngagementService struct {
	db     db.SocialDbInterface
	logger *zap.Logger
}

func NewEngagementService(socialDb db.SocialDbInterface, logger *zap.Logger) *EngagementService {
	return &EngagementService{
		db:     socialDb,
		logger: logger,
	}
}

// ToggleLike flips the viewer's like on a flow. The like document's
// composite _id is the gate: the counter moves only when an insert or
// delete actually happened, so concurrent toggles converge on the
// right count. Count and flag come back from the same post-update
// document.
func (s *EngagementService) ToggleLike(ctx context.Context, userId, flowId string) (*LikeResult, error) {
	flow, err := s.db.Flow().FindOneById(ctx, flowId)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}

	likeId := models.GetFlowLikeId(userId, flowId)
	deleted, err := s.db.FlowLike().DeleteById(ctx, likeId)
	if err != nil {
		return nil, err
	}
	if deleted {
		flow, err = s.db.Flow().IncLikeCount(ctx, flowId, -1)
		if err != nil {
			return nil, err
		}
		return &LikeResult{LikeCount: flow.LikeCount, IsLiked: false}, nil
	}

	err = s.db.FlowLike().Insert(ctx, &models.FlowLikeModel{UserId: userId, FlowId: flowId})
	if err == db.ErrDuplicate {
		// Lost the insert to a concurrent like, which already moved the
		// counter. Re-read so the reply carries the post-race count.
		flow, err = s.db.Flow().FindOneById(ctx, flowId)
		if err != nil {
			return nil, err
		}
		return &LikeResult{LikeCount: flow.LikeCount, IsLiked: true}, nil
	}
	if err != nil {
		return nil, err
	}
	flow, err = s.db.Flow().IncLikeCount(ctx, flowId, 1)
	if err != nil {
		return nil, err
	}
	return &LikeResult{LikeCount: flow.LikeCount, IsLiked: true}, nil
}

func (s *EngagementService) IsLiked(ctx context.Context, userId, flowId string) bool {
	return s.db.FlowLike().IsExistsById(ctx, models.GetFlowLikeId(userId, flowId))
}

// RecordView registers at most one view per (user, flow). Repeats are
// silent successes and never move the counter.
func (s *EngagementService) RecordView(ctx context.Context, userId, flowId string) error {
	_, err := s.db.Flow().FindOneById(ctx, flowId)
	if err == db.ErrNotFound {
		return ErrNotFoundOrForbidden
	}
	if err != nil {
		return err
	}

	err = s.db.View().Insert(ctx, &models.ViewModel{UserId: userId, FlowId: flowId})
	if err == db.ErrDuplicate {
		return nil
	}
	if err != nil {
		return err
	}
	return s.db.Flow().IncViewCount(ctx, flowId, 1)
}

func (s *EngagementService) IsViewed(ctx context.Context, userId, flowId string) bool {
	return s.db.View().IsExistsById(ctx, models.GetViewId(userId, flowId))
}

// ToggleBookmark flips the flow in the user's bookmark set. Bookmarks
// live on the user document and move no flow counter.
func (s *EngagementService) ToggleBookmark(ctx context.Context, userId, flowId string) (*BookmarkResult, error) {
	_, err := s.db.Flow().FindOneById(ctx, flowId)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}

	added, err := s.db.User().AddBookmark(ctx, userId, flowId)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	if added {
		return &BookmarkResult{IsBookmarked: true}, nil
	}

	if _, err := s.db.User().RemoveBookmark(ctx, userId, flowId); err != nil {
		return nil, err
	}
	return &BookmarkResult{IsBookmarked: false}, nil
}

func (s *EngagementService) IsBookmarked(ctx context.Context, userId, flowId string) bool {
	bookmarks, err := s.db.User().GetBookmarks(ctx, userId)
	if err != nil {
		return false
	}
	return funk.ContainsString(bookmarks, flowId)
}

// AddComment creates a root comment and bumps the flow's commentCount.
func (s *EngagementService) AddComment(ctx context.Context, userId, flowId, content string) (*models.CommentModel, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Flow().FindOneById(ctx, flowId); err != nil {
		if err == db.ErrNotFound {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}

	comment := &models.CommentModel{
		FlowId:  flowId,
		UserId:  userId,
		Content: content,
		Likes:   []string{},
	}
	if err := s.db.Comment().Save(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.db.Flow().IncCommentCount(ctx, flowId, 1); err != nil {
		s.logger.Error("Failed bumping comment count", zap.Error(err), zap.String("flowId", flowId))
	}
	return comment, nil
}

// ReplyComment nests a comment under a parent. Replies do not move the
// flow's commentCount; it counts root comments only.
func (s *EngagementService) ReplyComment(ctx context.Context, userId, parentCommentId, content string) (*models.CommentModel, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	parent, err := s.db.Comment().FindOneById(ctx, parentCommentId)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}

	comment := &models.CommentModel{
		FlowId:   parent.FlowId,
		UserId:   userId,
		Content:  content,
		ParentId: parent.CommentId,
		Likes:    []string{},
	}
	if err := s.db.Comment().Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is author-only. Replies are left in place; they drop
// out of the tree but stay addressable by id. Only root deletions move
// the commentCount back down.
func (s *EngagementService) DeleteComment(ctx context.Context, userId, commentId string) error {
	comment, err := s.db.Comment().FindOneById(ctx, commentId)
	if err == db.ErrNotFound {
		return ErrNotFoundOrForbidden
	}
	if err != nil {
		return err
	}
	if comment.UserId != userId {
		return ErrNotFoundOrForbidden
	}

	// counter moves only when this call removed the row; a concurrent
	// delete that got there first already decremented
	deleted, err := s.db.Comment().DeleteById(ctx, commentId)
	if err != nil {
		return err
	}
	if deleted && len(comment.ParentId) == 0 {
		if err := s.db.Flow().IncCommentCount(ctx, comment.FlowId, -1); err != nil {
			s.logger.Error("Failed dropping comment count", zap.Error(err), zap.String("flowId", comment.FlowId))
		}
	}
	return nil
}

// ToggleCommentLike flips the viewer in the comment's likes set. The
// count is the cardinality of that set, so it can never drift.
func (s *EngagementService) ToggleCommentLike(ctx context.Context, userId, commentId string) (*CommentLikeResult, error) {
	comment, err := s.db.Comment().FindOneById(ctx, commentId)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}

	if funk.ContainsString(comment.Likes, userId) {
		comment, err = s.db.Comment().RemoveLike(ctx, commentId, userId)
		if err != nil {
			return nil, err
		}
		return &CommentLikeResult{LikeCount: comment.LikeCount(), IsLiked: false}, nil
	}

	comment, err = s.db.Comment().AddLike(ctx, commentId, userId)
	if err != nil {
		return nil, err
	}
	return &CommentLikeResult{LikeCount: comment.LikeCount(), IsLiked: true}, nil
}

// GetCommentTree fetches a flow's comments in one query and assembles
// the reply tree with commenter summaries attached.
func (s *EngagementService) GetCommentTree(ctx context.Context, flowId string) []*CommentView {
	comments := s.db.Comment().GetByFlow(ctx, flowId)
	roots := extensions.BuildCommentTree(comments)

	userIds := funk.UniqString(funk.Map(comments, func(c models.CommentModel) string {
		return c.UserId
	}).([]string))
	users := map[string]models.UserSummary{}
	for _, summary := range s.db.User().FindSummaries(ctx, userIds) {
		users[summary.UserId] = summary
	}

	return toCommentViews(roots, users)
}
