package inmemory

import (
	"context"
	"sort"

	"github.com/quillhq/writeflow/db"
	"github.com/quillhq/writeflow/models"
)

type userRepo struct {
	store *Store
}

func (r *userRepo) Save(ctx context.Context, user *models.UserModel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user.Id()
	if user.CreatedOn == 0 {
		user.CreatedOn = r.store.stamp()
	}
	if user.Bookmarks == nil {
		user.Bookmarks = []string{}
	}
	for _, other := range r.store.users {
		if other.UserId == user.UserId {
			continue
		}
		if other.Username == user.Username || other.Email == user.Email {
			return db.ErrDuplicate
		}
	}
	r.store.users[user.UserId] = copyUser(user)
	return nil
}

func (r *userRepo) FindOneById(ctx context.Context, userId string) (*models.UserModel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[userId]
	if !ok {
		return nil, db.ErrNotFound
	}
	return copyUser(user), nil
}

func (r *userRepo) FindSummaries(ctx context.Context, userIds []string) []models.UserSummary {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	summaries := []models.UserSummary{}
	for _, id := range userIds {
		if user, ok := r.store.users[id]; ok {
			summaries = append(summaries, summaryOf(user))
		}
	}
	return summaries
}

func (r *userRepo) Suggestions(ctx context.Context, excludeIds []string, limit int64) []models.UserSummary {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	excluded := make(map[string]bool, len(excludeIds))
	for _, id := range excludeIds {
		excluded[id] = true
	}

	candidates := []*models.UserModel{}
	for _, user := range r.store.users {
		if !excluded[user.UserId] {
			candidates = append(candidates, user)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].FollowerCount != candidates[j].FollowerCount {
			return candidates[i].FollowerCount > candidates[j].FollowerCount
		}
		return candidates[i].UserId < candidates[j].UserId
	})
	if limit > 0 && int64(len(candidates)) > limit {
		candidates = candidates[:limit]
	}

	summaries := make([]models.UserSummary, 0, len(candidates))
	for _, user := range candidates {
		summaries = append(summaries, summaryOf(user))
	}
	return summaries
}

func (r *userRepo) IncFollowerCount(ctx context.Context, userId string, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userId]
	if !ok {
		return db.ErrNotFound
	}
	user.FollowerCount += delta
	return nil
}

func (r *userRepo) IncFollowingCount(ctx context.Context, userId string, delta int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userId]
	if !ok {
		return db.ErrNotFound
	}
	user.FollowingCount += delta
	return nil
}

func (r *userRepo) AddBookmark(ctx context.Context, userId, flowId string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userId]
	if !ok {
		return false, db.ErrNotFound
	}
	if contains(user.Bookmarks, flowId) {
		return false, nil
	}
	user.Bookmarks = append(user.Bookmarks, flowId)
	return true, nil
}

func (r *userRepo) RemoveBookmark(ctx context.Context, userId, flowId string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userId]
	if !ok {
		return false, db.ErrNotFound
	}
	if !contains(user.Bookmarks, flowId) {
		return false, nil
	}
	user.Bookmarks = remove(user.Bookmarks, flowId)
	return true, nil
}

func (r *userRepo) GetBookmarks(ctx context.Context, userId string) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[userId]
	if !ok {
		return nil, db.ErrNotFound
	}
	return append([]string{}, user.Bookmarks...), nil
}

func (r *userRepo) DeleteById(ctx context.Context, userId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.users, userId)
	return nil
}
