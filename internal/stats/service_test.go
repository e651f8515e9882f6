package stats

import (
	"context"
	"testing"

	"espoir-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupStatsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Project{}, &models.ProjectTranslation{},
		&models.Donation{}, &models.Transaction{},
		&models.Order{}, &models.OrderItem{},
	))
	return &Service{DB: db}, db
}

func seedDonation(t *testing.T, db *gorm.DB, amount int64, email string, status models.TransactionStatus) {
	t.Helper()
	donation := models.Donation{
		Amount:     amount,
		Currency:   "XOF",
		Type:       models.DonationOneTime,
		DonorEmail: &email,
		Transaction: models.Transaction{
			ExternalID:    "DON-TEST-" + email + "-" + string(status),
			Amount:        amount,
			Currency:      "XOF",
			PaymentMethod: "ORANGE_MONEY",
			Status:        status,
		},
	}
	require.NoError(t, db.Create(&donation).Error)
}

func TestGetOverview(t *testing.T) {
	svc, db := setupStatsTest(t)

	seedDonation(t, db, 10_000, "a@don.org", models.TransactionSuccess)
	seedDonation(t, db, 25_000, "b@don.org", models.TransactionSuccess)
	seedDonation(t, db, 99_000, "c@don.org", models.TransactionPending)
	seedDonation(t, db, 5_000, "a@don.org", models.TransactionFailed)

	require.NoError(t, db.Create(&models.Project{Slug: "puits", Status: models.ProjectActive, GoalAmount: 1}).Error)
	require.NoError(t, db.Create(&models.Project{Slug: "ecole", Status: models.ProjectDraft, GoalAmount: 1}).Error)

	require.NoError(t, db.Create(&models.Order{OrderNumber: "ORD-1", CustomerName: "X", CustomerEmail: "x@y.z", Status: models.OrderPending, Total: 30_000}).Error)
	require.NoError(t, db.Create(&models.Order{OrderNumber: "ORD-2", CustomerName: "X", CustomerEmail: "x@y.z", Status: models.OrderDelivered, Total: 20_000}).Error)
	require.NoError(t, db.Create(&models.Order{OrderNumber: "ORD-3", CustomerName: "X", CustomerEmail: "x@y.z", Status: models.OrderCancelled, Total: 99_000}).Error)

	out, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(35_000), out.TotalCollected)
	assert.Equal(t, int64(2), out.DonationCount)
	assert.Equal(t, int64(1), out.PendingPayments)
	assert.Equal(t, int64(3), out.DonorCount)
	assert.Equal(t, int64(1), out.ActiveProjects)
	assert.Equal(t, int64(3), out.TotalOrders)
	assert.Equal(t, int64(1), out.PendingOrders)
	assert.Equal(t, int64(50_000), out.OrderRevenue)
}

func TestProjectTotals_BestFundedFirst(t *testing.T) {
	svc, db := setupStatsTest(t)

	require.NoError(t, db.Create(&models.Project{Slug: "puits", Status: models.ProjectActive, GoalAmount: 100_000, CollectedAmount: 20_000, DonorCount: 3}).Error)
	require.NoError(t, db.Create(&models.Project{Slug: "ecole", Status: models.ProjectActive, GoalAmount: 500_000, CollectedAmount: 80_000, DonorCount: 12}).Error)

	rows, err := svc.ProjectTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ecole", rows[0].Slug)
	assert.Equal(t, int64(80_000), rows[0].CollectedAmount)
	assert.Equal(t, 12, rows[0].DonorCount)
	assert.Equal(t, "puits", rows[1].Slug)
}
