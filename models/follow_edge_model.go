package models

// FollowEdgeModel is a directed follow edge, followerId -> followeeId.
// The composite id makes duplicate edges duplicate-key inserts.
type FollowEdgeModel struct {
	EdgeId     string `bson:"_id"`
	FollowerId string `bson:"followerId"`
	FolloweeId string `bson:"followeeId"`
	CreatedOn  int64  `bson:"createdOn"`
}

func (p *FollowEdgeModel) Id() string {
	if len(p.EdgeId) == 0 {
		p.EdgeId = GetFollowEdgeId(p.FollowerId, p.FolloweeId)
	}
	return p.EdgeId
}

// returns the follow edge id for the given follower and followee
func GetFollowEdgeId(followerId, followeeId string) string {
	return followerId + "/" + followeeId
}
