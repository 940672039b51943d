package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "github.com/MateusMunaro/financial-manager/internal/errors"
	"github.com/MateusMunaro/financial-manager/internal/models"
	"github.com/MateusMunaro/financial-manager/internal/stats"
)

// dashboardService loads owner-filtered records and hands them to the
// stats package.
type dashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB) DashboardServicer {
	return &dashboardService{db: db, now: time.Now}
}

// GetDashboard builds the composite overview: summary and category spending
// for period, the ten latest expenses and a six month trend. The store reads
// run concurrently.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string, period stats.Period) (*Dashboard, error) {
	now := s.now().UTC()

	longest := period.Days()
	for _, days := range []int{period.SpendingDays(), stats.DefaultTrendMonths * 30} {
		if days > longest {
			longest = days
		}
	}

	var (
		windowed    []models.Expense
		recent      []models.Expense
		investments []models.Investment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		windowed, err = s.expensesSince(gctx, userID, now, longest)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.latestExpenses(gctx, userID, stats.DefaultRecentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		investments, err = s.investments(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		Summary:            stats.Summarize(windowed, investments, period, now),
		RecentTransactions: stats.RecentTransactions(recent, stats.DefaultRecentLimit),
		CategorySpending:   stats.CategorySpending(windowed, period, now),
		MonthlyTrend:       stats.MonthlyTrend(windowed, stats.DefaultTrendMonths, now),
	}, nil
}

// GetSummary returns the financial summary for period.
func (s *dashboardService) GetSummary(ctx context.Context, userID string, period stats.Period) (*stats.FinancialSummary, error) {
	now := s.now().UTC()

	var (
		expenses    []models.Expense
		investments []models.Investment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.expensesSince(gctx, userID, now, period.Days())
		return err
	})
	g.Go(func() error {
		var err error
		investments, err = s.investments(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := stats.Summarize(expenses, investments, period, now)
	return &summary, nil
}

// GetRecentTransactions returns the user's latest expenses for display.
func (s *dashboardService) GetRecentTransactions(ctx context.Context, userID string, limit int) ([]stats.RecentTransaction, error) {
	limit = stats.ClampLimit(limit)
	expenses, err := s.latestExpenses(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return stats.RecentTransactions(expenses, limit), nil
}

// GetCategorySpending ranks the categories of the period's spending window.
func (s *dashboardService) GetCategorySpending(ctx context.Context, userID string, period stats.Period) ([]stats.CategoryItem, error) {
	now := s.now().UTC()
	expenses, err := s.expensesSince(ctx, userID, now, period.SpendingDays())
	if err != nil {
		return nil, err
	}
	return stats.CategorySpending(expenses, period, now), nil
}

// GetMonthlyTrend returns expenses per calendar month for the last months.
func (s *dashboardService) GetMonthlyTrend(ctx context.Context, userID string, months int) ([]stats.TrendPoint, error) {
	now := s.now().UTC()
	months = stats.ClampMonths(months)
	expenses, err := s.expensesSince(ctx, userID, now, months*30)
	if err != nil {
		return nil, err
	}
	return stats.MonthlyTrend(expenses, months, now), nil
}

func (s *dashboardService) expensesSince(ctx context.Context, userID string, now time.Time, days int) ([]models.Expense, error) {
	from, to := stats.Window(now, days)

	var expenses []models.Expense
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

func (s *dashboardService) latestExpenses(ctx context.Context, userID string, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").Limit(limit).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

func (s *dashboardService) investments(ctx context.Context, userID string) ([]models.Investment, error) {
	var investments []models.Investment
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investments, nil
}
