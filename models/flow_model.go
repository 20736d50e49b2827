package models

import (
	"github.com/google/uuid"
)

type FlowModel struct {
	FlowId       string   `bson:"_id" json:"id"`
	UserId       string   `bson:"userId" json:"userId"`
	Title        string   `bson:"title" json:"title"`
	Description  string   `bson:"description" json:"description"`
	Content      string   `bson:"content" json:"content"`
	IsPublished  bool     `bson:"isPublished" json:"isPublished"`
	PublishedAt  int64    `bson:"publishedAt" json:"publishedAt"`
	LikeCount    int64    `bson:"likeCount" json:"likeCount"`
	CommentCount int64    `bson:"commentCount" json:"commentCount"`
	ViewCount    int64    `bson:"viewCount" json:"viewCount"`
	Tags         []string `bson:"tags" json:"tags"`
	CreatedOn    int64    `bson:"createdOn" json:"createdOn"`
}

func (m *FlowModel) Id() string {
	if len(m.FlowId) == 0 {
		m.FlowId = uuid.NewString()
	}
	return m.FlowId
}
