package service

import (
	"context"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
	"go.uber.org/zap"
)

// FollowGraphService maintains directed follow edges and the
// denormalized follower/following counters on both users.
type FollowGraphService struct {
	db     db.SocialDbInterface
	logger *zap.Logger
}

func NewFollowGraphService(socialDb db.SocialDbInterface, logger *zap.Logger) *FollowGraphService {
	return &FollowGraphService{
		db:     socialDb,
		logger: logger,
	}
}

// FollowStatus is the toggle-follow response: message and resulting
// state always travel together.
type FollowStatus struct {
	Message     string `json:"message"`
	IsFollowing bool   `json:"isFollowing"`
}

// Follow creates the edge followerId -> followeeId. A duplicate follow
// settles idempotently: the edge insert is the gate, counters move only
// when the insert actually created the edge.
func (s *FollowGraphService) Follow(ctx context.Context, followerId, followeeId string) (*FollowStatus, error) {
	if followerId == followeeId {
		return nil, ErrSelfFollow
	}

	edge := &models.FollowEdgeModel{
		FollowerId: followerId,
		FolloweeId: followeeId,
	}
	err := s.db.FollowEdge().Insert(ctx, edge)
	if err == db.ErrDuplicate {
		return &FollowStatus{Message: "Already following", IsFollowing: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.adjustCounters(ctx, followerId, followeeId, 1)
	return &FollowStatus{Message: "Followed", IsFollowing: true}, nil
}

// Unfollow removes the edge if present; a missing edge is a no-op, not
// an error, and moves no counters.
func (s *FollowGraphService) Unfollow(ctx context.Context, followerId, followeeId string) (*FollowStatus, error) {
	deleted, err := s.db.FollowEdge().DeleteById(ctx, models.GetFollowEdgeId(followerId, followeeId))
	if err != nil {
		return nil, err
	}
	if deleted {
		s.adjustCounters(ctx, followerId, followeeId, -1)
	}
	return &FollowStatus{Message: "Unfollowed", IsFollowing: false}, nil
}

// ToggleFollow backs POST /follow/{userId}: unfollow when the edge
// exists, follow otherwise.
func (s *FollowGraphService) ToggleFollow(ctx context.Context, followerId, followeeId string) (*FollowStatus, error) {
	if followerId == followeeId {
		return nil, ErrSelfFollow
	}

	deleted, err := s.db.FollowEdge().DeleteById(ctx, models.GetFollowEdgeId(followerId, followeeId))
	if err != nil {
		return nil, err
	}
	if deleted {
		s.adjustCounters(ctx, followerId, followeeId, -1)
		return &FollowStatus{Message: "Unfollowed", IsFollowing: false}, nil
	}
	return s.Follow(ctx, followerId, followeeId)
}

func (s *FollowGraphService) GetFollowers(ctx context.Context, userId string, pageNumber, pageSize int64) []models.UserSummary {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	followerIds := s.db.FollowEdge().GetFollowers(ctx, userId, pageNumber, pageSize)
	return s.db.User().FindSummaries(ctx, followerIds)
}

func (s *FollowGraphService) GetFollowing(ctx context.Context, userId string, pageNumber, pageSize int64) []models.UserSummary {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	followingIds := s.db.FollowEdge().GetFollowing(ctx, userId, pageNumber, pageSize)
	return s.db.User().FindSummaries(ctx, followingIds)
}

func (s *FollowGraphService) IsFollowing(ctx context.Context, followerId, followeeId string) bool {
	return s.db.FollowEdge().IsExistsById(ctx, models.GetFollowEdgeId(followerId, followeeId))
}

// Suggestions excludes the viewer and everyone they already follow.
// Users who follow the viewer stay in, so follow-back works.
func (s *FollowGraphService) Suggestions(ctx context.Context, userId string, limit int64) []models.UserSummary {
	if limit == 0 {
		limit = defaultPageSize
	}
	exclude := s.db.FollowEdge().GetFollowing(ctx, userId, 0, 0)
	exclude = append(exclude, userId)
	return s.db.User().Suggestions(ctx, exclude, limit)
}

// RemoveFollower deletes the edge followerId -> userId, letting a user
// drop someone from their follower list.
func (s *FollowGraphService) RemoveFollower(ctx context.Context, userId, followerId string) error {
	deleted, err := s.db.FollowEdge().DeleteById(ctx, models.GetFollowEdgeId(followerId, userId))
	if err != nil {
		return err
	}
	if deleted {
		s.adjustCounters(ctx, followerId, userId, -1)
	}
	return nil
}

// adjustCounters moves both users' counters for one edge mutation. The
// updates run concurrently and are each an atomic increment; they are
// only ever called after the edge insert or delete succeeded.
func (s *FollowGraphService) adjustCounters(ctx context.Context, followerId, followeeId string, delta int64) {
	followerCountPromise := make(chan error, 1)
	followingCountPromise := make(chan error, 1)
	go func() {
		followerCountPromise <- s.db.User().IncFollowerCount(ctx, followeeId, delta)
	}()
	go func() {
		followingCountPromise <- s.db.User().IncFollowingCount(ctx, followerId, delta)
	}()

	if err := <-followerCountPromise; err != nil && err != db.ErrNotFound {
		s.logger.Error("Failed updating follower count", zap.Error(err))
	}
	if err := <-followingCountPromise; err != nil && err != db.ErrNotFound {
		s.logger.Error("Failed updating following count", zap.Error(err))
	}
}
