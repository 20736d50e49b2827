package models

// FlowLikeModel is keyed by userId/flowId so the primary key doubles as
// the at-most-one-like constraint.
type FlowLikeModel struct {
	LikeId    string `bson:"_id"`
	UserId    string `bson:"userId"`
	FlowId    string `bson:"flowId"`
	CreatedOn int64  `bson:"createdOn"`
}

func (p *FlowLikeModel) Id() string {
	if len(p.LikeId) == 0 {
		p.LikeId = GetFlowLikeId(p.UserId, p.FlowId)
	}
	return p.LikeId
}

// returns the like id for the given user and flow
func GetFlowLikeId(userId, flowId string) string {
	return userId + "/" + flowId
}
