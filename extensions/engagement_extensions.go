package extensions

import (
	"context"

	"github.com/quillhq/writeflow/db"
	"go.uber.org/zap"
)

// ViewerEngagement is the per-viewer join material for a candidate flow
// set: which of the flows the viewer liked and which are bookmarked.
type ViewerEngagement struct {
	Liked      map[string]bool
	Bookmarked map[string]bool
}

func (e *ViewerEngagement) IsLiked(flowId string) bool {
	return e != nil && e.Liked[flowId]
}

func (e *ViewerEngagement) IsBookmarked(flowId string) bool {
	return e != nil && e.Bookmarked[flowId]
}

// FetchViewerEngagementAsync runs the two batch lookups behind the
// engagement join: one like query restricted to the candidate flow ids
// and one bookmark set fetch. An empty viewerId yields empty sets.
func FetchViewerEngagementAsync(
	ctx context.Context,
	socialDb db.SocialDbInterface,
	logger *zap.Logger,
	viewerId string,
	flowIds []string) chan *ViewerEngagement {

	result := make(chan *ViewerEngagement, 1)

	go func() {
		engagement := &ViewerEngagement{
			Liked:      map[string]bool{},
			Bookmarked: map[string]bool{},
		}
		if len(viewerId) == 0 || len(flowIds) == 0 {
			result <- engagement
			return
		}

		for _, flowId := range socialDb.FlowLike().GetLikedFlowIds(ctx, viewerId, flowIds) {
			engagement.Liked[flowId] = true
		}

		bookmarks, err := socialDb.User().GetBookmarks(ctx, viewerId)
		if err != nil {
			if err != db.ErrNotFound {
				logger.Error("Failed getting bookmarks", zap.Error(err))
			}
			result <- engagement
			return
		}
		candidates := make(map[string]bool, len(flowIds))
		for _, flowId := range flowIds {
			candidates[flowId] = true
		}
		for _, flowId := range bookmarks {
			if candidates[flowId] {
				engagement.Bookmarked[flowId] = true
			}
		}

		result <- engagement
	}()

	return result
}
