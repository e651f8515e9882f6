package stats

import (
	"context"

	"espoir-backend/internal/models"

	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Overview aggregates the numbers shown on the back-office dashboard.
type Overview struct {
	TotalCollected  int64 `json:"total_collected"`
	DonationCount   int64 `json:"donation_count"`
	DonorCount      int64 `json:"donor_count"`
	PendingPayments int64 `json:"pending_payments"`
	ActiveProjects  int64 `json:"active_projects"`
	TotalOrders     int64 `json:"total_orders"`
	OrderRevenue    int64 `json:"order_revenue"`
	PendingOrders   int64 `json:"pending_orders"`
}

// ProjectTotal is one row of the per-project breakdown.
type ProjectTotal struct {
	ProjectID       string `json:"project_id"`
	Slug            string `json:"slug"`
	GoalAmount      int64  `json:"goal_amount"`
	CollectedAmount int64  `json:"collected_amount"`
	DonorCount      int    `json:"donor_count"`
}

func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	db := s.DB.WithContext(ctx)
	var out Overview

	// Collected money comes from confirmed transactions only; pending ones
	// must never count.
	row := db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", models.TransactionSuccess).
		Row()
	if err := row.Scan(&out.TotalCollected); err != nil {
		return nil, err
	}

	if err := db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionSuccess).
		Count(&out.DonationCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionPending).
		Count(&out.PendingPayments).Error; err != nil {
		return nil, err
	}

	row = db.Model(&models.Donation{}).
		Select("COUNT(DISTINCT donor_email)").
		Where("donor_email IS NOT NULL AND donor_email != ''").
		Row()
	if err := row.Scan(&out.DonorCount); err != nil {
		return nil, err
	}

	if err := db.Model(&models.Project{}).
		Where("status = ?", models.ProjectActive).
		Count(&out.ActiveProjects).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Order{}).Count(&out.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderPending).
		Count(&out.PendingOrders).Error; err != nil {
		return nil, err
	}
	row = db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Where("status NOT IN ?", []models.OrderStatus{models.OrderCancelled, models.OrderRefunded}).
		Row()
	if err := row.Scan(&out.OrderRevenue); err != nil {
		return nil, err
	}

	return &out, nil
}

// ProjectTotals returns collection progress per project, best funded first.
func (s *Service) ProjectTotals(ctx context.Context) ([]ProjectTotal, error) {
	var rows []ProjectTotal
	err := s.DB.WithContext(ctx).Model(&models.Project{}).
		Select("id AS project_id, slug, goal_amount, collected_amount, donor_count").
		Order("collected_amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
