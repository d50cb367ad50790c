// Package payment 封装 Stripe 扣款。
// 服务层只依赖 ChargeClient 接口，测试用桩实现替换。
package payment

import (
	"context"
	"errors"
	"fmt"

	"tubo-go/internal/config"
	"tubo-go/pkg/logger"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/charge"
	"go.uber.org/zap"
)

// ErrChargeDeclined 扣款被网关拒绝
var ErrChargeDeclined = errors.New("扣款被拒绝")

// ChargeRequest 一次扣款请求
type ChargeRequest struct {
	AmountCents    int64
	Description    string
	Source         string
	IdempotencyKey string
}

// ChargeClient 支付网关抽象
type ChargeClient interface {
	Charge(ctx context.Context, req *ChargeRequest) (string, error)
}

type stripeClient struct {
	currency string
}

// NewStripeClient 创建 Stripe 扣款客户端
func NewStripeClient(cfg *config.PaymentConfig) ChargeClient {
	stripe.Key = cfg.StripeSecretKey
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &stripeClient{currency: currency}
}

// Charge 发起一次性扣款，返回网关侧的交易 ID
func (c *stripeClient) Charge(ctx context.Context, req *ChargeRequest) (string, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(c.currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.Source); err != nil {
		return "", fmt.Errorf("invalid payment source: %w", err)
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	}

	ch, err := charge.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			logger.Warn("Stripe charge declined",
				zap.String("code", string(stripeErr.Code)),
				zap.Int64("amount", req.AmountCents),
			)
			return "", fmt.Errorf("%w: %s", ErrChargeDeclined, stripeErr.Msg)
		}
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}

	if !ch.Paid {
		return "", ErrChargeDeclined
	}

	logger.Info("Stripe charge succeeded",
		zap.String("charge_id", ch.ID),
		zap.Int64("amount", req.AmountCents),
	)
	return ch.ID, nil
}
