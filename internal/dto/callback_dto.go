package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CallbackAction is the decoded kind of an inline-button payload. Payload
// strings on the wire keep the legacy grammar (subscribe_<plan>,
// pay_direct_<plan>, approve_<user>_<payment>, ...) but are decoded exactly
// once, here, into typed fields.
type CallbackAction string

const (
	ActionSelectPlan CallbackAction = "subscribe"
	ActionPayOnline  CallbackAction = "pay_online"
	ActionPayDirect  CallbackAction = "pay_direct"
	ActionApprove    CallbackAction = "approve"
	ActionDeny       CallbackAction = "deny"
	ActionDeletePlan CallbackAction = "delete"
)

type CallbackPayload struct {
	Action    CallbackAction
	PlanId    uuid.UUID
	UserId    int64
	PaymentId uuid.UUID
}

var ErrUnknownCallback = fmt.Errorf("unknown callback payload")

// ParseCallback decodes a raw button payload into its typed form.
func ParseCallback(data string) (*CallbackPayload, error) {
	switch {
	case strings.HasPrefix(data, string(ActionPayOnline)+"_"):
		return planPayload(ActionPayOnline, strings.TrimPrefix(data, string(ActionPayOnline)+"_"))
	case strings.HasPrefix(data, string(ActionPayDirect)+"_"):
		return planPayload(ActionPayDirect, strings.TrimPrefix(data, string(ActionPayDirect)+"_"))
	case strings.HasPrefix(data, string(ActionSelectPlan)+"_"):
		return planPayload(ActionSelectPlan, strings.TrimPrefix(data, string(ActionSelectPlan)+"_"))
	case strings.HasPrefix(data, string(ActionDeletePlan)+"_"):
		return planPayload(ActionDeletePlan, strings.TrimPrefix(data, string(ActionDeletePlan)+"_"))
	case strings.HasPrefix(data, string(ActionApprove)+"_"):
		return decisionPayload(ActionApprove, strings.TrimPrefix(data, string(ActionApprove)+"_"))
	case strings.HasPrefix(data, string(ActionDeny)+"_"):
		return decisionPayload(ActionDeny, strings.TrimPrefix(data, string(ActionDeny)+"_"))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
	}
}

func planPayload(action CallbackAction, rest string) (*CallbackPayload, error) {
	planId, err := uuid.Parse(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: bad plan id in %s payload: %v", ErrUnknownCallback, action, err)
	}
	return &CallbackPayload{Action: action, PlanId: planId}, nil
}

func decisionPayload(action CallbackAction, rest string) (*CallbackPayload, error) {
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %s payload needs user and payment id", ErrUnknownCallback, action)
	}
	userId, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id in %s payload: %v", ErrUnknownCallback, action, err)
	}
	paymentId, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad payment id in %s payload: %v", ErrUnknownCallback, action, err)
	}
	return &CallbackPayload{Action: action, UserId: userId, PaymentId: paymentId}, nil
}

// Encoders for outbound buttons.

func SelectPlanCallback(planId uuid.UUID) string {
	return fmt.Sprintf("%s_%s", ActionSelectPlan, planId)
}

func PayOnlineCallback(planId uuid.UUID) string {
	return fmt.Sprintf("%s_%s", ActionPayOnline, planId)
}

func PayDirectCallback(planId uuid.UUID) string {
	return fmt.Sprintf("%s_%s", ActionPayDirect, planId)
}

func ApproveCallback(userId int64, paymentId uuid.UUID) string {
	return fmt.Sprintf("%s_%d_%s", ActionApprove, userId, paymentId)
}

func DenyCallback(userId int64, paymentId uuid.UUID) string {
	return fmt.Sprintf("%s_%d_%s", ActionDeny, userId, paymentId)
}

func DeletePlanCallback(planId uuid.UUID) string {
	return fmt.Sprintf("%s_%s", ActionDeletePlan, planId)
}
