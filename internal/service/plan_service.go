package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tubo-go/internal/api/dto"
	"tubo-go/internal/infra/payment"
	"tubo-go/internal/plan"
	"tubo-go/internal/repository"
	"tubo-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("套餐不存在")

type PlanService struct {
	userRepo repository.UserRepository
	charger  payment.ChargeClient
}

func NewPlanService(userRepo repository.UserRepository, charger payment.ChargeClient) *PlanService {
	return &PlanService{userRepo: userRepo, charger: charger}
}

// List 套餐目录和当前用户的套餐状态
// userID 为 nil 表示未登录访客，只返回目录
func (s *PlanService) List(userID *int64) (*dto.PlanListData, error) {
	catalog := plan.Catalog()
	infos := make([]dto.PlanInfo, 0, len(catalog))
	for _, d := range catalog {
		infos = append(infos, *toPlanInfo(&d))
	}

	listData := &dto.PlanListData{Plans: infos, CurrentPlan: plan.Free}
	if userID != nil {
		user, err := s.userRepo.GetByID(*userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		listData.CurrentPlan = user.Plan
		listData.PlanExpiry = user.PlanExpiry
	}
	return listData, nil
}

// GetDetail 购买确认页：单个套餐的详情
func (s *PlanService) GetDetail(name string) (*dto.PlanInfo, error) {
	detail, ok := plan.Lookup(name)
	if !ok {
		return nil, ErrPlanNotFound
	}
	return toPlanInfo(&detail), nil
}

// Pay 购买套餐：按套餐定价扣款，成功后才更新用户的套餐和到期时间
// 扣款失败直接返回错误，用户记录保持原样
func (s *PlanService) Pay(ctx context.Context, userID int64, req *dto.PayRequest) (*dto.PaymentResult, error) {
	detail, ok := plan.Lookup(req.Plan)
	if !ok {
		return nil, ErrPlanNotFound
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	chargeID, err := s.charger.Charge(ctx, &payment.ChargeRequest{
		AmountCents:    detail.PriceCents,
		Description:    fmt.Sprintf("Plan %s subscription", detail.Name),
		Source:         req.Source,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	var expiry *time.Time
	if !detail.Permanent {
		t := time.Now().Add(plan.BasicDuration)
		expiry = &t
	}
	if err := s.userRepo.SetPlan(userID, detail.Name, expiry); err != nil {
		// 已经扣了款但没改成套餐，记下交易号便于人工对账
		logger.Error("Charge succeeded but plan update failed",
			zap.Int64("user_id", userID),
			zap.String("plan", detail.Name),
			zap.String("charge_id", chargeID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Info("Plan activated",
		zap.Int64("user_id", userID),
		zap.String("plan", detail.Name),
		zap.String("charge_id", chargeID),
	)

	return &dto.PaymentResult{
		Plan:        detail.Name,
		ChargeID:    chargeID,
		AmountCents: detail.PriceCents,
		PlanExpiry:  expiry,
	}, nil
}

func toPlanInfo(d *plan.Detail) *dto.PlanInfo {
	return &dto.PlanInfo{
		Name:       d.Name,
		PriceCents: d.PriceCents,
		Price:      d.Price,
		Features:   d.Features,
		Permanent:  d.Permanent,
	}
}
