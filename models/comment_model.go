package models

import (
	"github.com/google/uuid"
)

type CommentModel struct {
	CommentId string   `bson:"_id" json:"id"`
	FlowId    string   `bson:"flowId" json:"flowId"`
	UserId    string   `bson:"userId" json:"userId"`
	Content   string   `bson:"content" json:"content"`
	ParentId  string   `bson:"parentId" json:"parentId,omitempty"`
	Likes     []string `bson:"likes" json:"likes"`
	CreatedOn int64    `bson:"createdOn" json:"createdOn"`
}

func (c *CommentModel) Id() string {
	if len(c.CommentId) == 0 {
		c.CommentId = uuid.NewString()
	}
	return c.CommentId
}

func (c *CommentModel) LikeCount() int {
	return len(c.Likes)
}
