package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskOrderConfirmed = "order:confirmed"
	TaskLowStockReport = "inventory:low_stock_report"
)

type OrderConfirmedPayload struct {
	OrderID uint `json:"order_id"`
	UserID  uint `json:"user_id"`
}

type LowStockReportPayload struct {
	Threshold  int    `json:"threshold"`
	VariantIDs []uint `json:"variant_ids"`
}

func NewOrderConfirmedTask(payload OrderConfirmedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmed, body), nil
}

func NewLowStockReportTask(payload LowStockReportPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockReport, body), nil
}

func ParseOrderConfirmedPayload(task *asynq.Task) (OrderConfirmedPayload, error) {
	var payload OrderConfirmedPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

func ParseLowStockReportPayload(task *asynq.Task) (LowStockReportPayload, error) {
	var payload LowStockReportPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
