package models

type FlowTagModel struct {
	Tag        string   `bson:"_id" json:"tag"`
	PostsCount int64    `bson:"postsCount" json:"postsCount"`
	Flows      []string `bson:"flows" json:"flows"`
	CreatedOn  int64    `bson:"createdOn" json:"createdOn"`
}

func (t *FlowTagModel) Id() string {
	return t.Tag
}
