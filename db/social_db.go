package db

import (
	"context"
	"errors"

	"github.com/quillhq/writeflow/models"
)

// ErrNotFound is returned when a single-document lookup matches nothing,
// including owner-scoped updates that matched no (id, owner) pair.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when an insert hits a uniqueness constraint.
// Callers treat it as "someone else already completed this operation".
var ErrDuplicate = errors.New("duplicate document")

// FeedFilters narrows flow feed queries.
type FeedFilters struct {
	// Only flows authored by this user.
	AuthorId string
	// Restrict to published flows, sorted by publishedAt desc.
	// Unset lists drafts and published alike, sorted by createdOn desc.
	PublishedOnly bool
	// Case-insensitive substring match over title and description.
	SearchText string
	// Flow ids excluded from the result (viewer's reported flows).
	ExcludeIds []string
	// Restrict to flows carrying this tag.
	Tag string
}

// FlowUpdate carries the draft fields an author may change. Nil fields
// are left untouched.
type FlowUpdate struct {
	Title       *string
	Description *string
	Content     *string
}

type UserRepository interface {
	Save(ctx context.Context, user *models.UserModel) error
	FindOneById(ctx context.Context, userId string) (*models.UserModel, error)
	FindSummaries(ctx context.Context, userIds []string) []models.UserSummary
	Suggestions(ctx context.Context, excludeIds []string, limit int64) []models.UserSummary
	IncFollowerCount(ctx context.Context, userId string, delta int64) error
	IncFollowingCount(ctx context.Context, userId string, delta int64) error
	AddBookmark(ctx context.Context, userId, flowId string) (bool, error)
	RemoveBookmark(ctx context.Context, userId, flowId string) (bool, error)
	GetBookmarks(ctx context.Context, userId string) ([]string, error)
	DeleteById(ctx context.Context, userId string) error
}

type FlowRepository interface {
	Save(ctx context.Context, flow *models.FlowModel) error
	FindOneById(ctx context.Context, flowId string) (*models.FlowModel, error)
	FindManyByIds(ctx context.Context, flowIds []string) []models.FlowModel
	UpdateDraft(ctx context.Context, authorId, flowId string, upd FlowUpdate) (*models.FlowModel, error)
	Publish(ctx context.Context, authorId, flowId string, tags []string) (*models.FlowModel, error)
	IncLikeCount(ctx context.Context, flowId string, delta int64) (*models.FlowModel, error)
	IncCommentCount(ctx context.Context, flowId string, delta int64) error
	IncViewCount(ctx context.Context, flowId string, delta int64) error
	DeleteOwned(ctx context.Context, authorId, flowId string) (bool, error)
	GetFeed(ctx context.Context, filters FeedFilters, pageNumber, pageSize int64) []models.FlowModel
	GetDrafts(ctx context.Context, authorId string) []models.FlowModel
	GetFlowIdsByAuthor(ctx context.Context, authorId string) []string
}

type FlowLikeRepository interface {
	Insert(ctx context.Context, like *models.FlowLikeModel) error
	DeleteById(ctx context.Context, likeId string) (bool, error)
	IsExistsById(ctx context.Context, likeId string) bool
	GetLikedFlowIds(ctx context.Context, userId string, flowIds []string) []string
	GetAllLikedFlowIds(ctx context.Context, userId string) []string
	DeleteByFlow(ctx context.Context, flowId string) error
}

type ViewRepository interface {
	Insert(ctx context.Context, view *models.ViewModel) error
	IsExistsById(ctx context.Context, viewId string) bool
	GetHistoryFlowIds(ctx context.Context, userId string) []string
	CountSince(ctx context.Context, flowIds []string, since int64) int64
	FindSince(ctx context.Context, flowIds []string, since int64) []models.ViewModel
	DeleteByFlow(ctx context.Context, flowId string) error
}

type FollowEdgeRepository interface {
	Insert(ctx context.Context, edge *models.FollowEdgeModel) error
	DeleteById(ctx context.Context, edgeId string) (bool, error)
	IsExistsById(ctx context.Context, edgeId string) bool
	GetFollowers(ctx context.Context, userId string, pageNumber, pageSize int64) []string
	GetFollowing(ctx context.Context, userId string, pageNumber, pageSize int64) []string
	CountFollowersSince(ctx context.Context, userId string, since int64) int64
}

type CommentRepository interface {
	Save(ctx context.Context, comment *models.CommentModel) error
	FindOneById(ctx context.Context, commentId string) (*models.CommentModel, error)
	GetByFlow(ctx context.Context, flowId string) []models.CommentModel
	GetByFlows(ctx context.Context, flowIds []string) []models.CommentModel
	AddLike(ctx context.Context, commentId, userId string) (*models.CommentModel, error)
	RemoveLike(ctx context.Context, commentId, userId string) (*models.CommentModel, error)
	DeleteById(ctx context.Context, commentId string) (bool, error)
	DeleteByFlow(ctx context.Context, flowId string) error
}

type TagRepository interface {
	AttachFlow(ctx context.Context, tag, flowId string) error
	FindOneById(ctx context.Context, tag string) (*models.FlowTagModel, error)
	GetRanked(ctx context.Context, limit int64) []models.FlowTagModel
}

type ReportRepository interface {
	Save(ctx context.Context, report *models.ReportModel) error
	GetReportedFlowIds(ctx context.Context, reporterId string) []string
}

// SocialDbInterface is the storage seam between services and the
// backing store. Mongo implements it for real deployments, inmemory
// for tests.
type SocialDbInterface interface {
	User() UserRepository
	Flow() FlowRepository
	FlowLike() FlowLikeRepository
	View() ViewRepository
	FollowEdge() FollowEdgeRepository
	Comment() CommentRepository
	Tag() TagRepository
	Report() ReportRepository
}
