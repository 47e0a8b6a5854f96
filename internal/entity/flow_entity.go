package entity

import (
	"time"

	"github.com/google/uuid"
)

type FlowStage string

const (
	FlowStageIdle            FlowStage = "idle"
	FlowStagePlanSelected    FlowStage = "plan_selected"
	FlowStageAwaitingReceipt FlowStage = "awaiting_receipt"
)

// FlowState is the per-user position in the subscribe conversation. It lives
// in the in-process flow store, not the database.
type FlowState struct {
	UserId    int64
	Stage     FlowStage
	PlanId    uuid.UUID
	UpdatedAt time.Time
}
