package mapper

import (
	"subman-bot-be/internal/entity"
	"subman-bot-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:               p.Id,
		UserId:           p.UserId,
		PlanId:           p.PlanId,
		Amount:           p.Amount,
		Method:           entity.PaymentMethod(p.Method),
		Status:           entity.PaymentStatus(p.Status),
		ReceiptMessageId: p.ReceiptMessageId,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:               p.Id,
		UserId:           p.UserId,
		PlanId:           p.PlanId,
		Amount:           p.Amount,
		Method:           string(p.Method),
		Status:           string(p.Status),
		ReceiptMessageId: p.ReceiptMessageId,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
