package extensions

import (
	"context"

	"github.com/quillhq/writeflow/db"
)

// SaveTags attaches a flow to each tag, creating tags as needed. Each
// attach bumps the tag's postsCount at most once per (tag, flow).
func SaveTags(ctx context.Context, socialDb db.SocialDbInterface, tags []string, flowId string) chan error {
	savedTagsPromise := make(chan error, 1)

	go func() {
		for _, tag := range tags {
			if err := socialDb.Tag().AttachFlow(ctx, tag, flowId); err != nil {
				savedTagsPromise <- err
				return
			}
		}
		savedTagsPromise <- nil
	}()

	return savedTagsPromise
}
