package models

// ViewModel records at most one view per (user, flow). Keyed like
// FlowLikeModel so a duplicate view is a duplicate-key insert.
type ViewModel struct {
	ViewId    string `bson:"_id"`
	UserId    string `bson:"userId"`
	FlowId    string `bson:"flowId"`
	CreatedOn int64  `bson:"createdOn"`
}

func (v *ViewModel) Id() string {
	if len(v.ViewId) == 0 {
		v.ViewId = GetViewId(v.UserId, v.FlowId)
	}
	return v.ViewId
}

// returns the view id for the given user and flow
func GetViewId(userId, flowId string) string {
	return userId + "/" + flowId
}
