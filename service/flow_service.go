package service

import (
	"context"
	"strings"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/extensions"
	"github.com/quillhq/writeflow/models"
	"go.uber.org/zap"
)

const defaultPageSize = 50

// FlowService owns flows and their draft/published lifecycle.
type FlowService struct {
	db     db.SocialDbInterface
	logger *zap.Logger
}

func NewFlowService(socialDb db.SocialDbInterface, logger *zap.Logger) *FlowService {
	return &FlowService{
		db:     socialDb,
		logger: logger,
	}
}

// CreateDraft creates a flow in draft state with all counters at zero.
func (s *FlowService) CreateDraft(ctx context.Context, authorId, title, description, content string) (*models.FlowModel, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	flow := &models.FlowModel{
		UserId:      authorId,
		Title:       title,
		Description: strings.TrimSpace(description),
		Content:     content,
		IsPublished: false,
		Tags:        []string{},
	}
	if err := s.db.Flow().Save(ctx, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

func (s *FlowService) UpdateTitle(ctx context.Context, authorId, flowId, title string) (*models.FlowModel, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	return s.updateDraft(ctx, authorId, flowId, db.FlowUpdate{Title: &title})
}

func (s *FlowService) UpdateDescription(ctx context.Context, authorId, flowId, description string) (*models.FlowModel, error) {
	return s.updateDraft(ctx, authorId, flowId, db.FlowUpdate{Description: &description})
}

func (s *FlowService) UpdateContent(ctx context.Context, authorId, flowId, content string) (*models.FlowModel, error) {
	return s.updateDraft(ctx, authorId, flowId, db.FlowUpdate{Content: &content})
}

// updateDraft edits are owner-only and draft-only; any miss is the
// conflated ErrNotFoundOrForbidden.
func (s *FlowService) updateDraft(ctx context.Context, authorId, flowId string, upd db.FlowUpdate) (*models.FlowModel, error) {
	flow, err := s.db.Flow().UpdateDraft(ctx, authorId, flowId, upd)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	return flow, nil
}

// Publish is the one-way draft -> published transition; the store
// stamps publishedAt, tags are attached bumping each tag's postsCount.
func (s *FlowService) Publish(ctx context.Context, authorId, flowId string, tags []string) (*models.FlowModel, error) {
	tags = cleanTags(tags)

	flow, err := s.db.Flow().Publish(ctx, authorId, flowId, tags)
	if err == db.ErrNotFound {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}

	if err := <-extensions.SaveTags(ctx, s.db, tags, flow.FlowId); err != nil {
		s.logger.Error("Failed saving tags", zap.Error(err), zap.String("flowId", flow.FlowId))
	}
	return flow, nil
}

// Delete removes an owned flow and cascades to its comments, likes and
// views. The flow delete is the gate: dependents go only after the
// owner check passed.
func (s *FlowService) Delete(ctx context.Context, authorId, flowId string) error {
	deleted, err := s.db.Flow().DeleteOwned(ctx, authorId, flowId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFoundOrForbidden
	}

	commentsPromise := make(chan error, 1)
	likesPromise := make(chan error, 1)
	viewsPromise := make(chan error, 1)
	go func() { commentsPromise <- s.db.Comment().DeleteByFlow(ctx, flowId) }()
	go func() { likesPromise <- s.db.FlowLike().DeleteByFlow(ctx, flowId) }()
	go func() { viewsPromise <- s.db.View().DeleteByFlow(ctx, flowId) }()

	for _, promise := range []chan error{commentsPromise, likesPromise, viewsPromise} {
		if err := <-promise; err != nil {
			s.logger.Error("Failed cascading flow delete", zap.Error(err), zap.String("flowId", flowId))
		}
	}
	return nil
}

// ListByAuthor returns every flow of an author, drafts included,
// newest first.
func (s *FlowService) ListByAuthor(ctx context.Context, authorId string) []models.FlowModel {
	return s.db.Flow().GetFeed(ctx, db.FeedFilters{AuthorId: authorId}, 0, 0)
}

// ListDrafts is owner-only; asking for another user's drafts is
// indistinguishable from them not existing.
func (s *FlowService) ListDrafts(ctx context.Context, requesterId, userId string) ([]models.FlowModel, error) {
	if requesterId != userId {
		return nil, ErrNotFoundOrForbidden
	}
	return s.db.Flow().GetDrafts(ctx, userId), nil
}

// SearchPublished matches the query case-insensitively against title
// and description of published flows.
func (s *FlowService) SearchPublished(ctx context.Context, query string, pageNumber, pageSize int64) []models.FlowModel {
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	return s.db.Flow().GetFeed(ctx, db.FeedFilters{
		PublishedOnly: true,
		SearchText:    strings.TrimSpace(query),
	}, pageNumber, pageSize)
}

func (s *FlowService) RankedTags(ctx context.Context, limit int64) []models.FlowTagModel {
	if limit == 0 {
		limit = defaultPageSize
	}
	return s.db.Tag().GetRanked(ctx, limit)
}
