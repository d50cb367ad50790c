package service

import (
	"context"
	"testing"
	"time"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/infra/payment"
	"tubo-go/internal/model"
	"tubo-go/internal/plan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayBasicSetsExpiry(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	charger := &stubCharger{chargeID: "ch_123"}

	svc := NewPlanService(env.users, charger)

	before := time.Now()
	result, err := svc.Pay(context.Background(), user.ID, &dto.PayRequest{
		Plan:   plan.Basic,
		Source: "tok_visa",
	})
	require.NoError(t, err)

	assert.Equal(t, plan.Basic, result.Plan)
	assert.Equal(t, "ch_123", result.ChargeID)
	assert.Equal(t, int64(499), result.AmountCents)
	require.NotNil(t, result.PlanExpiry)
	assert.WithinDuration(t, before.Add(plan.BasicDuration), *result.PlanExpiry, time.Minute)

	// 扣款按套餐定价，不信任客户端金额
	require.Len(t, charger.requests, 1)
	assert.Equal(t, int64(499), charger.requests[0].AmountCents)
	assert.Equal(t, "Plan Basic subscription", charger.requests[0].Description)

	got, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Basic, got.Plan)
	require.NotNil(t, got.PlanExpiry)
}

func TestPayProClearsExpiry(t *testing.T) {
	env := newTestEnv()
	expiry := time.Now().Add(24 * time.Hour)
	user := env.store.addUser(model.User{Username: "ana", Plan: plan.Basic, PlanExpiry: &expiry})
	charger := &stubCharger{chargeID: "ch_456"}

	svc := NewPlanService(env.users, charger)

	result, err := svc.Pay(context.Background(), user.ID, &dto.PayRequest{
		Plan:   plan.Pro,
		Source: "tok_visa",
	})
	require.NoError(t, err)
	assert.Nil(t, result.PlanExpiry)
	assert.Equal(t, int64(999), result.AmountCents)

	got, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Pro, got.Plan)
	assert.Nil(t, got.PlanExpiry)
}

func TestPayChargeFailureLeavesPlanUntouched(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	charger := &stubCharger{err: payment.ErrChargeDeclined}

	svc := NewPlanService(env.users, charger)

	_, err := svc.Pay(context.Background(), user.ID, &dto.PayRequest{
		Plan:   plan.VIP,
		Source: "tok_declined",
	})
	assert.ErrorIs(t, err, payment.ErrChargeDeclined)

	got, errGet := env.users.GetByID(user.ID)
	require.NoError(t, errGet)
	assert.Equal(t, plan.Free, got.Plan)
	assert.Nil(t, got.PlanExpiry)
}

func TestPayUnknownPlan(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana"})
	charger := &stubCharger{chargeID: "ch_789"}

	svc := NewPlanService(env.users, charger)

	_, err := svc.Pay(context.Background(), user.ID, &dto.PayRequest{Plan: "Free", Source: "tok_visa"})
	assert.ErrorIs(t, err, ErrPlanNotFound)

	// 套餐不存在时不应该发起扣款
	assert.Empty(t, charger.requests)
}

func TestPayUserNotFound(t *testing.T) {
	env := newTestEnv()
	charger := &stubCharger{chargeID: "ch_000"}

	svc := NewPlanService(env.users, charger)

	_, err := svc.Pay(context.Background(), 999, &dto.PayRequest{Plan: plan.Basic, Source: "tok_visa"})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, charger.requests)
}

func TestListIncludesCurrentPlan(t *testing.T) {
	env := newTestEnv()
	user := env.store.addUser(model.User{Username: "ana", Plan: plan.Pro})

	svc := NewPlanService(env.users, &stubCharger{})

	// 访客只拿目录
	listData, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, listData.Plans, 3)
	assert.Equal(t, plan.Free, listData.CurrentPlan)

	// 登录用户附带自己的套餐状态
	listData, err = svc.List(&user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Pro, listData.CurrentPlan)
}

func TestGetDetail(t *testing.T) {
	env := newTestEnv()
	svc := NewPlanService(env.users, &stubCharger{})

	info, err := svc.GetDetail(plan.VIP)
	require.NoError(t, err)
	assert.Equal(t, plan.VIP, info.Name)
	assert.Equal(t, int64(1999), info.PriceCents)

	_, err = svc.GetDetail("Diamond")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
