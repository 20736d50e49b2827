package service

import (
	"github.com/jinzhu/copier"
	"github.com/quillhq/writeflow/extensions"
	"github.com/quillhq/writeflow/models"
)

// FlowView is a flow as a viewer sees it: the document plus its author
// summary, the viewer's own flags and the comment tree.
type FlowView struct {
	models.FlowModel
	User         models.UserSummary `json:"user"`
	IsLiked      bool               `json:"isLiked"`
	IsBookmarked bool               `json:"isBookmarked"`
	Comments     []*CommentView     `json:"comments"`
}

// CommentView flattens the likes set to a count before it leaves the
// service layer; the raw liker list stays internal.
type CommentView struct {
	CommentId string             `json:"id"`
	FlowId    string             `json:"flowId"`
	UserId    string             `json:"userId"`
	Content   string             `json:"content"`
	ParentId  string             `json:"parentId,omitempty"`
	LikeCount int                `json:"likeCount"`
	CreatedOn int64              `json:"createdOn"`
	User      models.UserSummary `json:"user"`
	Children  []*CommentView     `json:"children"`
}

type LikeResult struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}

type BookmarkResult struct {
	IsBookmarked bool `json:"isBookmarked"`
}

type CommentLikeResult struct {
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

func toCommentViews(nodes []*extensions.CommentNode, users map[string]models.UserSummary) []*CommentView {
	views := make([]*CommentView, 0, len(nodes))
	for _, node := range nodes {
		view := &CommentView{}
		// copier maps the LikeCount() method onto the LikeCount field.
		copier.Copy(view, &node.CommentModel)
		view.User = users[node.UserId]
		view.Children = toCommentViews(node.Children, users)
		views = append(views, view)
	}
	return views
}
