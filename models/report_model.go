package models

import (
	"github.com/google/uuid"
)

const (
	ReportPending  = "PENDING"
	ReportResolved = "RESOLVED"
	ReportRejected = "REJECTED"
)

type ReportModel struct {
	ReportId   string `bson:"_id" json:"id"`
	ReporterId string `bson:"reporterId" json:"reporterId"`
	FlowId     string `bson:"flowId" json:"flowId"`
	Title      string `bson:"title" json:"title"`
	Issue      string `bson:"issue" json:"issue"`
	Status     string `bson:"status" json:"status"`
	CreatedOn  int64  `bson:"createdOn" json:"createdOn"`
}

func (r *ReportModel) Id() string {
	if len(r.ReportId) == 0 {
		r.ReportId = uuid.NewString()
	}
	return r.ReportId
}
