package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"subman-bot-be/internal/constant"
	"subman-bot-be/internal/dto"
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/gateway"
	"subman-bot-be/internal/pkg/logger"
	"subman-bot-be/internal/service"
)

// UpdateHandler dispatches inbound chat updates to the services. Updates
// from the same user are serialized with a per-user lock so a double-tap on
// a button cannot interleave two flows; different users proceed in parallel.
type UpdateHandler struct {
	gw              gateway.Gateway
	userService     service.IUserService
	planService     service.IPlanService
	flowService     service.IFlowService
	approvalService service.IApprovalService
	codeService     service.ICodeService
	logger          logger.ILogger
	paymentAccount  string

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewUpdateHandler(
	gw gateway.Gateway,
	userService service.IUserService,
	planService service.IPlanService,
	flowService service.IFlowService,
	approvalService service.IApprovalService,
	codeService service.ICodeService,
	logger logger.ILogger,
	paymentAccount string,
) *UpdateHandler {
	return &UpdateHandler{
		gw:              gw,
		userService:     userService,
		planService:     planService,
		flowService:     flowService,
		approvalService: approvalService,
		codeService:     codeService,
		logger:          logger,
		paymentAccount:  paymentAccount,
		locks:           make(map[int64]*sync.Mutex),
	}
}

func (h *UpdateHandler) userLock(userId int64) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	lock, ok := h.locks[userId]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[userId] = lock
	}
	return lock
}

func (h *UpdateHandler) Handle(ctx context.Context, update *gateway.Update) {
	switch {
	case update.Message != nil:
		lock := h.userLock(update.Message.From.Id)
		lock.Lock()
		defer lock.Unlock()
		h.handleMessage(ctx, update.Message)
	case update.Callback != nil:
		lock := h.userLock(update.Callback.From.Id)
		lock.Lock()
		defer lock.Unlock()
		h.handleCallback(ctx, update.Callback)
	}
}

// Messages

func (h *UpdateHandler) handleMessage(ctx context.Context, msg *gateway.Message) {
	userId := msg.From.Id

	user, created, err := h.userService.Register(ctx, userId, msg.From.Username, msg.From.FirstName, msg.From.LastName)
	if err != nil {
		h.fail(ctx, userId, "register", err)
		return
	}

	command, args := splitCommand(msg.Text)

	switch command {
	case "/start":
		h.replyStart(ctx, user, created)
	case "/status":
		h.replyStatus(ctx, user)
	case "/subscribe":
		h.replySubscribe(ctx, userId)
	case "/redeem":
		h.replyRedeem(ctx, userId, args)
	case "/generate_code":
		h.replyGenerateCode(ctx, userId, args)
	case "/add_plan":
		h.replyAddPlan(ctx, userId, args)
	case "/delete_plan":
		h.replyDeletePlan(ctx, userId)
	default:
		if msg.HasPhoto || h.flowService.AwaitingReceipt(userId) {
			h.replyReceipt(ctx, msg)
			return
		}
		h.send(ctx, userId, constant.MsgUnknownCommand)
	}
}

func (h *UpdateHandler) replyStart(ctx context.Context, user *entity.User, created bool) {
	text := fmt.Sprintf(constant.MsgWelcomeBack, user.DisplayName())
	if created {
		text = fmt.Sprintf(constant.MsgWelcome, user.DisplayName())
	}
	h.send(ctx, user.UserId, text)
}

func (h *UpdateHandler) replyStatus(ctx context.Context, user *entity.User) {
	status, err := h.userService.Status(ctx, user.UserId)
	if err != nil {
		h.fail(ctx, user.UserId, "status", err)
		return
	}
	if status.SubscriptionExpiry != nil && status.SubscriptionStatus == entity.SubscriptionStatusActive {
		h.send(ctx, user.UserId, fmt.Sprintf(constant.MsgStatusActive, status.SubscriptionExpiry.Format("2006-01-02")))
		return
	}
	h.send(ctx, user.UserId, constant.MsgStatusInactive)
}

func (h *UpdateHandler) replySubscribe(ctx context.Context, userId int64) {
	plans, err := h.planService.ListActive(ctx)
	if err != nil {
		h.fail(ctx, userId, "subscribe", err)
		return
	}
	if len(plans) == 0 {
		h.send(ctx, userId, constant.MsgNoPlansAvailable)
		return
	}

	var rows [][]gateway.Button
	for _, plan := range plans {
		rows = append(rows, []gateway.Button{{
			Text: fmt.Sprintf(constant.MsgPlanButton, plan.Name, plan.Price, plan.DurationDays),
			Data: dto.SelectPlanCallback(plan.Id),
		}})
	}
	if err := h.gw.SendButtons(ctx, userId, constant.MsgChoosePlan, rows); err != nil {
		h.logSendErr(userId, err)
	}
}

func (h *UpdateHandler) replyRedeem(ctx context.Context, userId int64, args string) {
	code := strings.TrimSpace(args)
	if code == "" {
		h.send(ctx, userId, constant.MsgCodeUsage)
		return
	}

	outcome, err := h.codeService.Redeem(ctx, userId, code)
	if errors.Is(err, service.ErrCodeInvalid) {
		h.send(ctx, userId, constant.MsgCodeInvalid)
		return
	}
	if err != nil {
		h.fail(ctx, userId, "redeem", err)
		return
	}
	h.send(ctx, userId, fmt.Sprintf(constant.MsgCodeRedeemed, outcome.NewExpiry.Format("2006-01-02")))
}

func (h *UpdateHandler) replyGenerateCode(ctx context.Context, userId int64, args string) {
	days, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || days <= 0 {
		if h.replyIfNotAdmin(ctx, userId) {
			return
		}
		h.send(ctx, userId, constant.MsgGenerateCodeUsage)
		return
	}

	code, err := h.codeService.Generate(ctx, userId, days)
	if errors.Is(err, service.ErrNotAuthorized) {
		h.send(ctx, userId, constant.MsgNotAuthorized)
		return
	}
	if errors.Is(err, service.ErrInvalidDuration) {
		h.send(ctx, userId, constant.MsgGenerateCodeUsage)
		return
	}
	if err != nil {
		h.fail(ctx, userId, "generate_code", err)
		return
	}
	h.send(ctx, userId, fmt.Sprintf(constant.MsgCodeGenerated, code.Code, code.AssociatedDays))
}

func (h *UpdateHandler) replyAddPlan(ctx context.Context, userId int64, args string) {
	name, price, days, err := service.ParsePlanInput(args)
	if err != nil {
		if h.replyIfNotAdmin(ctx, userId) {
			return
		}
		h.send(ctx, userId, constant.MsgAddPlanUsage)
		return
	}

	plan, err := h.planService.Create(ctx, userId, name, price, days)
	if errors.Is(err, service.ErrNotAuthorized) {
		h.send(ctx, userId, constant.MsgNotAuthorized)
		return
	}
	if err != nil {
		h.fail(ctx, userId, "add_plan", err)
		return
	}
	h.send(ctx, userId, fmt.Sprintf(constant.MsgPlanAdded, plan.Name, plan.Price, plan.DurationDays))
}

func (h *UpdateHandler) replyDeletePlan(ctx context.Context, userId int64) {
	if h.replyIfNotAdmin(ctx, userId) {
		return
	}

	plans, err := h.planService.ListActive(ctx)
	if err != nil {
		h.fail(ctx, userId, "delete_plan", err)
		return
	}
	if len(plans) == 0 {
		h.send(ctx, userId, constant.MsgNoPlansManage)
		return
	}

	var rows [][]gateway.Button
	for _, plan := range plans {
		rows = append(rows, []gateway.Button{{
			Text: fmt.Sprintf(constant.MsgPlanButton, plan.Name, plan.Price, plan.DurationDays),
			Data: dto.DeletePlanCallback(plan.Id),
		}})
	}
	if err := h.gw.SendButtons(ctx, userId, constant.MsgChooseDelete, rows); err != nil {
		h.logSendErr(userId, err)
	}
}

func (h *UpdateHandler) replyReceipt(ctx context.Context, msg *gateway.Message) {
	userId := msg.From.Id

	submission, err := h.flowService.SubmitReceipt(ctx, userId, msg.MessageId)
	if errors.Is(err, service.ErrNoPendingPayment) {
		h.send(ctx, userId, constant.MsgReceiptUnexpected)
		return
	}
	if err != nil {
		h.fail(ctx, userId, "receipt", err)
		return
	}

	// Fan the approval request out to every admin: the original receipt
	// first, then the decision buttons referencing user and payment.
	buttons := [][]gateway.Button{{
		{Text: constant.MsgApproveButton, Data: dto.ApproveCallback(userId, submission.Payment.Id)},
		{Text: constant.MsgDenyButton, Data: dto.DenyCallback(userId, submission.Payment.Id)},
	}}
	request := fmt.Sprintf(constant.MsgApprovalRequest, submission.User.DisplayName())

	for _, admin := range submission.Admins {
		if err := h.gw.ForwardMessage(ctx, admin.AdminId, userId, msg.MessageId); err != nil {
			h.logger.Warn("handler.update", "Failed to forward receipt", map[string]interface{}{
				"admin_id": admin.AdminId,
				"error":    err.Error(),
			})
		}
		if err := h.gw.SendButtons(ctx, admin.AdminId, request, buttons); err != nil {
			h.logger.Warn("handler.update", "Failed to send approval request", map[string]interface{}{
				"admin_id": admin.AdminId,
				"error":    err.Error(),
			})
		}
	}

	h.send(ctx, userId, constant.MsgReceiptForwarded)
}

// Callbacks

func (h *UpdateHandler) handleCallback(ctx context.Context, cb *gateway.Callback) {
	// Every press is acknowledged exactly once, or the client keeps the
	// button spinner running.
	answered := false
	answer := func(text string) {
		if answered {
			return
		}
		answered = true
		if err := h.gw.AnswerCallback(ctx, cb.Id, text); err != nil {
			h.logSendErr(cb.From.Id, err)
		}
	}
	defer answer("")

	payload, err := dto.ParseCallback(cb.Data)
	if err != nil {
		h.logger.Warn("handler.update", "Unparseable callback", map[string]interface{}{
			"data":  cb.Data,
			"error": err.Error(),
		})
		answer(constant.MsgGenericError)
		return
	}

	switch payload.Action {
	case dto.ActionSelectPlan:
		h.callbackSelectPlan(ctx, cb, payload, answer)
	case dto.ActionPayOnline:
		h.callbackPayOnline(ctx, cb, payload, answer)
	case dto.ActionPayDirect:
		h.callbackPayDirect(ctx, cb, payload, answer)
	case dto.ActionApprove:
		h.callbackDecision(ctx, cb, payload, true, answer)
	case dto.ActionDeny:
		h.callbackDecision(ctx, cb, payload, false, answer)
	case dto.ActionDeletePlan:
		h.callbackDeletePlan(ctx, cb, payload, answer)
	}
}

func (h *UpdateHandler) callbackSelectPlan(ctx context.Context, cb *gateway.Callback, payload *dto.CallbackPayload, answer func(string)) {
	userId := cb.From.Id

	plan, err := h.flowService.SelectPlan(ctx, userId, payload.PlanId)
	if errors.Is(err, service.ErrPlanNotFound) {
		answer("")
		h.send(ctx, userId, constant.MsgPlanNotFound)
		return
	}
	if err != nil {
		answer(constant.MsgGenericError)
		h.fail(ctx, userId, "select_plan", err)
		return
	}

	answer("")
	buttons := [][]gateway.Button{{
		{Text: constant.MsgPayOnlineButton, Data: dto.PayOnlineCallback(plan.Id)},
		{Text: constant.MsgPayDirectButton, Data: dto.PayDirectCallback(plan.Id)},
	}}
	text := fmt.Sprintf(constant.MsgPlanSelected, plan.Name, plan.Price, plan.DurationDays)
	if err := h.gw.SendButtons(ctx, userId, text, buttons); err != nil {
		h.logSendErr(userId, err)
	}
}

func (h *UpdateHandler) callbackPayOnline(ctx context.Context, cb *gateway.Callback, payload *dto.CallbackPayload, answer func(string)) {
	// Online settlement has no provider wired up; the flow stays open so
	// the user can fall back to direct payment.
	answer("")
	h.send(ctx, cb.From.Id, constant.MsgOnlineUnavailable)
}

func (h *UpdateHandler) callbackPayDirect(ctx context.Context, cb *gateway.Callback, payload *dto.CallbackPayload, answer func(string)) {
	userId := cb.From.Id

	payment, _, err := h.flowService.StartDirectPayment(ctx, userId, payload.PlanId)
	if errors.Is(err, service.ErrPlanNotFound) {
		answer("")
		h.send(ctx, userId, constant.MsgPlanNotFound)
		return
	}
	if err != nil {
		answer(constant.MsgGenericError)
		h.fail(ctx, userId, "pay_direct", err)
		return
	}

	answer("")
	h.send(ctx, userId, fmt.Sprintf(constant.MsgDirectInstructions, payment.Amount, h.paymentAccount))
}

func (h *UpdateHandler) callbackDecision(ctx context.Context, cb *gateway.Callback, payload *dto.CallbackPayload, approve bool, answer func(string)) {
	adminId := cb.From.Id

	outcome, err := h.approvalService.Decide(ctx, adminId, approve, payload.UserId, payload.PaymentId)
	if errors.Is(err, service.ErrNotAuthorized) {
		answer(constant.MsgNotAuthorized)
		return
	}
	if err != nil {
		answer(constant.MsgGenericError)
		h.fail(ctx, adminId, "decision", err)
		return
	}

	if outcome.AlreadyResolved {
		answer(constant.MsgDecisionTooLate)
		return
	}

	answer("")

	// Replace the buttons under this admin's copy with the result. Other
	// admins' copies stay stale; their press resolves to "too late".
	tag := fmt.Sprintf(constant.MsgAdminDeniedTag, outcome.User.DisplayName())
	if approve {
		tag = fmt.Sprintf(constant.MsgAdminApprovedTag, outcome.User.DisplayName())
	}
	if err := h.gw.EditMessageText(ctx, adminId, cb.MessageId, tag); err != nil {
		h.logSendErr(adminId, err)
	}

	if approve {
		h.send(ctx, payload.UserId, fmt.Sprintf(constant.MsgPaymentApproved, outcome.NewExpiry.Format("2006-01-02")))
	} else {
		h.send(ctx, payload.UserId, constant.MsgPaymentDenied)
	}
}

func (h *UpdateHandler) callbackDeletePlan(ctx context.Context, cb *gateway.Callback, payload *dto.CallbackPayload, answer func(string)) {
	adminId := cb.From.Id

	plan, err := h.planService.Deactivate(ctx, adminId, payload.PlanId)
	if errors.Is(err, service.ErrNotAuthorized) {
		answer(constant.MsgNotAuthorized)
		return
	}
	if errors.Is(err, service.ErrPlanNotFound) {
		answer("")
		h.send(ctx, adminId, constant.MsgPlanNotFound)
		return
	}
	if err != nil {
		answer(constant.MsgGenericError)
		h.fail(ctx, adminId, "delete_plan", err)
		return
	}

	answer("")
	h.send(ctx, adminId, fmt.Sprintf(constant.MsgPlanDeleted, plan.Name))
}

// Helpers

func (h *UpdateHandler) replyIfNotAdmin(ctx context.Context, userId int64) bool {
	isAdmin, err := h.userService.IsAdmin(ctx, userId)
	if err != nil {
		h.fail(ctx, userId, "admin_check", err)
		return true
	}
	if !isAdmin {
		h.send(ctx, userId, constant.MsgNotAuthorized)
		return true
	}
	return false
}

func (h *UpdateHandler) send(ctx context.Context, chatId int64, text string) {
	if err := h.gw.SendMessage(ctx, chatId, text); err != nil {
		h.logSendErr(chatId, err)
	}
}

func (h *UpdateHandler) fail(ctx context.Context, userId int64, op string, err error) {
	h.logger.Error("handler.update", "Update handling failed", map[string]interface{}{
		"op":      op,
		"user_id": userId,
		"error":   err.Error(),
	})
	h.send(ctx, userId, constant.MsgGenericError)
}

func (h *UpdateHandler) logSendErr(chatId int64, err error) {
	h.logger.Warn("handler.update", "Gateway send failed", map[string]interface{}{
		"chat_id": chatId,
		"error":   err.Error(),
	})
}

func splitCommand(text string) (command, args string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return "", trimmed
	}
	parts := strings.SplitN(trimmed, " ", 2)
	command = parts[0]
	// Commands may arrive as /start@BotName in group chats.
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	if len(parts) == 2 {
		args = strings.TrimSpace(parts[1])
	}
	return command, args
}
