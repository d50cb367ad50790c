package dto

import "time"

// PlanInfo 套餐信息
type PlanInfo struct {
	Name       string   `json:"name"`
	PriceCents int64    `json:"price_cents"`
	Price      string   `json:"price"`
	Features   []string `json:"features"`
	Permanent  bool     `json:"permanent"`
}

// PlanListData 套餐列表和当前用户的套餐状态
type PlanListData struct {
	Plans       []PlanInfo `json:"plans"`
	CurrentPlan string     `json:"current_plan"`
	PlanExpiry  *time.Time `json:"plan_expiry,omitempty"`
}

// PayRequest 套餐购买请求
type PayRequest struct {
	Plan           string `json:"plan" binding:"required,oneof=Basic Pro VIP"`
	Source         string `json:"source" binding:"required"`
	IdempotencyKey string `json:"idempotency_key" binding:"omitempty,max=255"`
}

// PaymentResult 购买结果
type PaymentResult struct {
	Plan        string     `json:"plan"`
	ChargeID    string     `json:"charge_id"`
	AmountCents int64      `json:"amount_cents"`
	PlanExpiry  *time.Time `json:"plan_expiry,omitempty"`
}
