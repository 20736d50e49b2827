package inmemory

import (
	"context"
	"sort"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
)

// likeRepo, viewRepo and edgeRepo share one shape: composite-keyed
// fact rows where inserting an existing key is db.ErrDuplicate.

type likeRepo struct {
	store *Store
}

func (r *likeRepo) Insert(ctx context.Context, like *models.FlowLikeModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := like.Id()
	if _, exists := r.store.likes[id]; exists {
		return db.ErrDuplicate
	}
	if like.CreatedOn == 0 {
		like.CreatedOn = r.store.stamp()
	}
	clone := *like
	r.store.likes[id] = &clone
	return nil
}

func (r *likeRepo) DeleteById(ctx context.Context, likeId string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.likes[likeId]; !exists {
		return false, nil
	}
	delete(r.store.likes, likeId)
	return true, nil
}

func (r *likeRepo) IsExistsById(ctx context.Context, likeId string) bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, exists := r.store.likes[likeId]
	return exists
}

func (r *likeRepo) GetLikedFlowIds(ctx context.Context, userId string, flowIds []string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	liked := []string{}
	for _, flowId := range flowIds {
		if _, exists := r.store.likes[models.GetFlowLikeId(userId, flowId)]; exists {
			liked = append(liked, flowId)
		}
	}
	return liked
}

func (r *likeRepo) GetAllLikedFlowIds(ctx context.Context, userId string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	likes := []*models.FlowLikeModel{}
	for _, like := range r.store.likes {
		if like.UserId == userId {
			likes = append(likes, like)
		}
	}
	sort.Slice(likes, func(i, j int) bool {
		return likes[i].CreatedOn > likes[j].CreatedOn
	})
	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.FlowId)
	}
	return ids
}

func (r *likeRepo) DeleteByFlow(ctx context.Context, flowId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, like := range r.store.likes {
		if like.FlowId == flowId {
			delete(r.store.likes, id)
		}
	}
	return nil
}

type viewRepo struct {
	store *Store
}

func (r *viewRepo) Insert(ctx context.Context, view *models.ViewModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := view.Id()
	if _, exists := r.store.views[id]; exists {
		return db.ErrDuplicate
	}
	if view.CreatedOn == 0 {
		view.CreatedOn = r.store.stamp()
	}
	clone := *view
	r.store.views[id] = &clone
	return nil
}

func (r *viewRepo) IsExistsById(ctx context.Context, viewId string) bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, exists := r.store.views[viewId]
	return exists
}

func (r *viewRepo) GetHistoryFlowIds(ctx context.Context, userId string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	views := []*models.ViewModel{}
	for _, view := range r.store.views {
		if view.UserId == userId {
			views = append(views, view)
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedOn > views[j].CreatedOn
	})
	ids := make([]string, 0, len(views))
	for _, view := range views {
		ids = append(ids, view.FlowId)
	}
	return ids
}

func (r *viewRepo) CountSince(ctx context.Context, flowIds []string, since int64) int64 {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]bool, len(flowIds))
	for _, id := range flowIds {
		wanted[id] = true
	}
	var count int64
	for _, view := range r.store.views {
		if wanted[view.FlowId] && view.CreatedOn >= since {
			count++
		}
	}
	return count
}

func (r *viewRepo) FindSince(ctx context.Context, flowIds []string, since int64) []models.ViewModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]bool, len(flowIds))
	for _, id := range flowIds {
		wanted[id] = true
	}
	views := []models.ViewModel{}
	for _, view := range r.store.views {
		if wanted[view.FlowId] && view.CreatedOn >= since {
			views = append(views, *view)
		}
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedOn < views[j].CreatedOn
	})
	return views
}

func (r *viewRepo) DeleteByFlow(ctx context.Context, flowId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, view := range r.store.views {
		if view.FlowId == flowId {
			delete(r.store.views, id)
		}
	}
	return nil
}

type edgeRepo struct {
	store *Store
}

func (r *edgeRepo) Insert(ctx context.Context, edge *models.FollowEdgeModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := edge.Id()
	if _, exists := r.store.edges[id]; exists {
		return db.ErrDuplicate
	}
	if edge.CreatedOn == 0 {
		edge.CreatedOn = r.store.stamp()
	}
	clone := *edge
	r.store.edges[id] = &clone
	return nil
}

func (r *edgeRepo) DeleteById(ctx context.Context, edgeId string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.edges[edgeId]; !exists {
		return false, nil
	}
	delete(r.store.edges, edgeId)
	return true, nil
}

func (r *edgeRepo) IsExistsById(ctx context.Context, edgeId string) bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, exists := r.store.edges[edgeId]
	return exists
}

func (r *edgeRepo) GetFollowers(ctx context.Context, userId string, pageNumber, pageSize int64) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	edges := r.store.sortedEdges(func(edge *models.FollowEdgeModel) bool {
		return edge.FolloweeId == userId
	})
	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FollowerId)
	}
	return paginate(ids, pageNumber, pageSize)
}

func (r *edgeRepo) GetFollowing(ctx context.Context, userId string, pageNumber, pageSize int64) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	edges := r.store.sortedEdges(func(edge *models.FollowEdgeModel) bool {
		return edge.FollowerId == userId
	})
	ids := make([]string, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FolloweeId)
	}
	return paginate(ids, pageNumber, pageSize)
}

func (r *edgeRepo) CountFollowersSince(ctx context.Context, userId string, since int64) int64 {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, edge := range r.store.edges {
		if edge.FolloweeId == userId && edge.CreatedOn >= since {
			count++
		}
	}
	return count
}
