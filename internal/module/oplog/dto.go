package oplog

import "github.com/simp-lee/waystar/internal/domain"

// QueryRequest filters the operation log. StartTime and EndTime bound the
// operation time and are sent in the backend date-time layout.
type QueryRequest struct {
	domain.PageQuery
	AdminID         int64           `json:"adminId,omitempty" validate:"omitempty,gt=0"`
	OperationType   string          `json:"operationType,omitempty"`
	OperationObject string          `json:"operationObject,omitempty"`
	ObjectID        int64           `json:"objectId,omitempty" validate:"omitempty,gt=0"`
	StartTime       domain.DateTime `json:"startTime,omitempty"`
	EndTime         domain.DateTime `json:"endTime,omitempty"`
}
