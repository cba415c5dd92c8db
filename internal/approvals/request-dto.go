package approvals

import "github.com/google/uuid"

// RejectRequest carries the optional rejection reason. An empty body is
// a valid reasonless rejection.
type RejectRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BulkDecisionRequest struct {
	ApplicationIDs []uuid.UUID `json:"application_ids" validate:"required,min=1"`
}

type BulkRejectRequest struct {
	ApplicationIDs []uuid.UUID `json:"application_ids" validate:"required,min=1"`
	Reason         string      `json:"reason" validate:"omitempty,max=500"`
}

type SummaryQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=upcoming active completed cancelled"`
}

type EventApplicationsQuery struct {
	Status    string `form:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	Search    string `form:"search"`
	SortOrder string `form:"sort" validate:"omitempty,oneof=asc desc"`
}
