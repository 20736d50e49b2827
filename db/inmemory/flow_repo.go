package inmemory

import (
	"context"
	"sort"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
)

type flowRepo struct {
	store *Store
}

func (r *flowRepo) Save(ctx context.Context, flow *models.FlowModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow.Id()
	if flow.CreatedOn == 0 {
		flow.CreatedOn = r.store.stamp()
	}
	if _, exists := r.store.flows[flow.FlowId]; !exists {
		r.store.flowOrder = append(r.store.flowOrder, flow.FlowId)
	}
	r.store.flows[flow.FlowId] = copyFlow(flow)
	return nil
}

func (r *flowRepo) FindOneById(ctx context.Context, flowId string) (*models.FlowModel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	flow, ok := r.store.flows[flowId]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyFlow(flow), nil
}

func (r *flowRepo) FindManyByIds(ctx context.Context, flowIds []string) []models.FlowModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	flows := []models.FlowModel{}
	for _, id := range flowIds {
		if flow, ok := r.store.flows[id]; ok {
			flows = append(flows, *copyFlow(flow))
		}
	}
	return flows
}

func (r *flowRepo) UpdateDraft(ctx context.Context, authorId, flowId string, upd db.FlowUpdate) (*models.FlowModel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow, ok := r.store.flows[flowId]
	if !ok || flow.UserId != authorId || flow.IsPublished {
		return nil, db.ErrNotFound
	}
	if upd.Title != nil {
		flow.Title = *upd.Title
	}
	if upd.Description != nil {
		flow.Description = *upd.Description
	}
	if upd.Content != nil {
		flow.Content = *upd.Content
	}
	return copyFlow(flow), nil
}

func (r *flowRepo) Publish(ctx context.Context, authorId, flowId string, tags []string) (*models.FlowModel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow, ok := r.store.flows[flowId]
	if !ok || flow.UserId != authorId || flow.IsPublished {
		return nil, db.ErrNotFound
	}
	flow.IsPublished = true
	// the monotonic stamp keeps back-to-back publishes strictly ordered
	flow.PublishedAt = r.store.stamp()
	flow.Tags = append([]string{}, tags...)
	return copyFlow(flow), nil
}

func (r *flowRepo) IncLikeCount(ctx context.Context, flowId string, delta int64) (*models.FlowModel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow, ok := r.store.flows[flowId]
	if !ok {
		return nil, db.ErrNotFound
	}
	flow.LikeCount += delta
	return copyFlow(flow), nil
}

func (r *flowRepo) IncCommentCount(ctx context.Context, flowId string, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow, ok := r.store.flows[flowId]
	if !ok {
		return db.ErrNotFound
	}
	flow.CommentCount += delta
	return nil
}

func (r *flowRepo) IncViewCount(ctx context.Context, flowId string, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow, ok := r.store.flows[flowId]
	if !ok {
		return db.ErrNotFound
	}
	flow.ViewCount += delta
	return nil
}

func (r *flowRepo) DeleteOwned(ctx context.Context, authorId, flowId string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	flow, ok := r.store.flows[flowId]
	if !ok || flow.UserId != authorId {
		return false, nil
	}
	delete(r.store.flows, flowId)
	r.store.flowOrder = remove(r.store.flowOrder, flowId)
	return true, nil
}

func (r *flowRepo) GetFeed(ctx context.Context, filters db.FeedFilters, pageNumber, pageSize int64) []models.FlowModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	excluded := make(map[string]bool, len(filters.ExcludeIds))
	for _, id := range filters.ExcludeIds {
		excluded[id] = true
	}

	// walk in insertion order so the stable sort below breaks
	// publishedAt ties by insertion order
	flows := []models.FlowModel{}
	for _, id := range r.store.flowOrder {
		flow := r.store.flows[id]
		if excluded[flow.FlowId] {
			continue
		}
		if filters.PublishedOnly && !flow.IsPublished {
			continue
		}
		if len(filters.AuthorId) > 0 && flow.UserId != filters.AuthorId {
			continue
		}
		if len(filters.Tag) > 0 && !contains(flow.Tags, filters.Tag) {
			continue
		}
		if len(filters.SearchText) > 0 &&
			!containsFold(flow.Title, filters.SearchText) &&
			!containsFold(flow.Description, filters.SearchText) {
			continue
		}
		flows = append(flows, *copyFlow(flow))
	}

	if filters.PublishedOnly {
		sort.SliceStable(flows, func(i, j int) bool {
			return flows[i].PublishedAt > flows[j].PublishedAt
		})
	} else {
		sort.SliceStable(flows, func(i, j int) bool {
			return flows[i].CreatedOn > flows[j].CreatedOn
		})
	}

	if pageSize <= 0 {
		return flows
	}
	start := pageNumber * pageSize
	if start >= int64(len(flows)) {
		return []models.FlowModel{}
	}
	end := start + pageSize
	if end > int64(len(flows)) {
		end = int64(len(flows))
	}
	return flows[start:end]
}

func (r *flowRepo) GetDrafts(ctx context.Context, authorId string) []models.FlowModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	drafts := []models.FlowModel{}
	for _, id := range r.store.flowOrder {
		flow := r.store.flows[id]
		if flow.UserId == authorId && !flow.IsPublished {
			drafts = append(drafts, *copyFlow(flow))
		}
	}
	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].CreatedOn > drafts[j].CreatedOn
	})
	return drafts
}

func (r *flowRepo) GetFlowIdsByAuthor(ctx context.Context, authorId string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := []string{}
	for _, id := range r.store.flowOrder {
		if r.store.flows[id].UserId == authorId {
			ids = append(ids, id)
		}
	}
	return ids
}
