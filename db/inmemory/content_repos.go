package inmemory

import (
	"context"
	"sort"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
)

type commentRepo struct {
	store *Store
}

func (r *commentRepo) Save(ctx context.Context, comment *models.CommentModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	comment.Id()
	if comment.CreatedOn == 0 {
		comment.CreatedOn = r.store.stamp()
	}
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	r.store.comments[comment.CommentId] = copyComment(comment)
	return nil
}

func (r *commentRepo) FindOneById(ctx context.Context, commentId string) (*models.CommentModel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	comment, ok := r.store.comments[commentId]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyComment(comment), nil
}

func (r *commentRepo) GetByFlow(ctx context.Context, flowId string) []models.CommentModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	comments := []models.CommentModel{}
	for _, comment := range r.store.comments {
		if comment.FlowId == flowId {
			comments = append(comments, *copyComment(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedOn < comments[j].CreatedOn
	})
	return comments
}

func (r *commentRepo) GetByFlows(ctx context.Context, flowIds []string) []models.CommentModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wanted := make(map[string]bool, len(flowIds))
	for _, id := range flowIds {
		wanted[id] = true
	}
	comments := []models.CommentModel{}
	for _, comment := range r.store.comments {
		if wanted[comment.FlowId] {
			comments = append(comments, *copyComment(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedOn < comments[j].CreatedOn
	})
	return comments
}

func (r *commentRepo) AddLike(ctx context.Context, commentId, userId string) (*models.CommentModel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	comment, ok := r.store.comments[commentId]
	if !ok {
		return nil, db.ErrNotFound
	}
	if !contains(comment.Likes, userId) {
		comment.Likes = append(comment.Likes, userId)
	}
	return copyComment(comment), nil
}

func (r *commentRepo) RemoveLike(ctx context.Context, commentId, userId string) (*models.CommentModel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	comment, ok := r.store.comments[commentId]
	if !ok {
		return nil, db.ErrNotFound
	}
	comment.Likes = remove(comment.Likes, userId)
	return copyComment(comment), nil
}

func (r *commentRepo) DeleteById(ctx context.Context, commentId string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.comments[commentId]; !exists {
		return false, nil
	}
	delete(r.store.comments, commentId)
	return true, nil
}

func (r *commentRepo) DeleteByFlow(ctx context.Context, flowId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, comment := range r.store.comments {
		if comment.FlowId == flowId {
			delete(r.store.comments, id)
		}
	}
	return nil
}

type tagRepo struct {
	store *Store
}

func (r *tagRepo) AttachFlow(ctx context.Context, tag, flowId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tagModel, ok := r.store.tags[tag]
	if !ok {
		tagModel = &models.FlowTagModel{Tag: tag, Flows: []string{}, CreatedOn: r.store.stamp()}
		r.store.tags[tag] = tagModel
	}
	if !contains(tagModel.Flows, flowId) {
		tagModel.Flows = append(tagModel.Flows, flowId)
		tagModel.PostsCount++
	}
	return nil
}

func (r *tagRepo) FindOneById(ctx context.Context, tag string) (*models.FlowTagModel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tagModel, ok := r.store.tags[tag]
	if !ok {
		return nil, db.ErrNotFound
	}
	clone := *tagModel
	clone.Flows = append([]string{}, tagModel.Flows...)
	return &clone, nil
}

func (r *tagRepo) GetRanked(ctx context.Context, limit int64) []models.FlowTagModel {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tags := []models.FlowTagModel{}
	for _, tagModel := range r.store.tags {
		clone := *tagModel
		clone.Flows = append([]string{}, tagModel.Flows...)
		tags = append(tags, clone)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].PostsCount != tags[j].PostsCount {
			return tags[i].PostsCount > tags[j].PostsCount
		}
		return tags[i].Tag < tags[j].Tag
	})
	if limit > 0 && int64(len(tags)) > limit {
		tags = tags[:limit]
	}
	return tags
}

type reportRepo struct {
	store *Store
}

func (r *reportRepo) Save(ctx context.Context, report *models.ReportModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	report.Id()
	if report.CreatedOn == 0 {
		report.CreatedOn = r.store.stamp()
	}
	if len(report.Status) == 0 {
		report.Status = models.ReportPending
	}
	clone := *report
	r.store.reports[report.ReportId] = &clone
	return nil
}

func (r *reportRepo) GetReportedFlowIds(ctx context.Context, reporterId string) []string {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := []string{}
	for _, report := range r.store.reports {
		if report.ReporterId == reporterId {
			ids = append(ids, report.FlowId)
		}
	}
	return ids
}
