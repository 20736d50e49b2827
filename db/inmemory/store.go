// Package inmemory implements db.SocialDbInterface with plain maps
// behind one mutex. It backs the unit tests and local development
// without a running mongo.
package inmemory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
)

type Store struct {
	mu sync.RWMutex

	users     map[string]*models.UserModel
	flows     map[string]*models.FlowModel
	flowOrder []string
	likes     map[string]*models.FlowLikeModel
	views     map[string]*models.ViewModel
	edges     map[string]*models.FollowEdgeModel
	comments  map[string]*models.CommentModel
	tags      map[string]*models.FlowTagModel
	reports   map[string]*models.ReportModel

	// monotonic stamp so two writes in the same millisecond still order
	lastStamp int64
}

func New() *Store {
	return &Store{
		users:    make(map[string]*models.UserModel),
		flows:    make(map[string]*models.FlowModel),
		likes:    make(map[string]*models.FlowLikeModel),
		views:    make(map[string]*models.ViewModel),
		edges:    make(map[string]*models.FollowEdgeModel),
		comments: make(map[string]*models.CommentModel),
		tags:     make(map[string]*models.FlowTagModel),
		reports:  make(map[string]*models.ReportModel),
	}
}

var _ db.SocialDbInterface = (*Store)(nil)

func (s *Store) User() db.UserRepository             { return &userRepo{s} }
func (s *Store) Flow() db.FlowRepository             { return &flowRepo{s} }
func (s *Store) FlowLike() db.FlowLikeRepository     { return &likeRepo{s} }
func (s *Store) View() db.ViewRepository             { return &viewRepo{s} }
func (s *Store) FollowEdge() db.FollowEdgeRepository { return &edgeRepo{s} }
func (s *Store) Comment() db.CommentRepository       { return &commentRepo{s} }
func (s *Store) Tag() db.TagRepository               { return &tagRepo{s} }
func (s *Store) Report() db.ReportRepository         { return &reportRepo{s} }

// stamp must be called with the write lock held.
func (s *Store) stamp() int64 {
	now := time.Now().UnixMilli()
	if now <= s.lastStamp {
		now = s.lastStamp + 1
	}
	s.lastStamp = now
	return now
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func remove(items []string, target string) []string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item != target {
			kept = append(kept, item)
		}
	}
	return kept
}

func paginate(items []string, pageNumber, pageSize int64) []string {
	if pageSize <= 0 {
		return items
	}
	start := pageNumber * pageSize
	if start >= int64(len(items)) {
		return []string{}
	}
	end := start + pageSize
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}

func copyFlow(flow *models.FlowModel) *models.FlowModel {
	clone := *flow
	clone.Tags = append([]string{}, flow.Tags...)
	return &clone
}

func copyUser(user *models.UserModel) *models.UserModel {
	clone := *user
	clone.Bookmarks = append([]string{}, user.Bookmarks...)
	return &clone
}

func copyComment(comment *models.CommentModel) *models.CommentModel {
	clone := *comment
	clone.Likes = append([]string{}, comment.Likes...)
	return &clone
}

func summaryOf(user *models.UserModel) models.UserSummary {
	return models.UserSummary{
		UserId:       user.UserId,
		Username:     user.Username,
		Name:         user.Name,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
	}
}

// sortedEdges returns edges matching the predicate, newest first.
func (s *Store) sortedEdges(match func(*models.FollowEdgeModel) bool) []*models.FollowEdgeModel {
	edges := []*models.FollowEdgeModel{}
	for _, edge := range s.edges {
		if match(edge) {
			edges = append(edges, edge)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].CreatedOn > edges[j].CreatedOn
	})
	return edges
}
