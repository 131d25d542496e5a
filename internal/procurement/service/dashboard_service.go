package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pitadomingos/procuretrack-sub002/internal/procurement/entity"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

// DashboardService serves the read-only reporting endpoints. Every query is
// a parameterized aggregation; nothing here mutates state.
type DashboardService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewDashboardService(db *gorm.DB, rdb *redis.Client) *DashboardService {
	return &DashboardService{db: db, rdb: rdb}
}

// DashboardStats is the headline card set on the dashboard.
type DashboardStats struct {
	POsByStatus      map[string]int64 `json:"pos_by_status"`
	OpenRequisitions int64            `json:"open_requisitions"`
	PendingApprovals int64            `json:"pending_approvals"`
	ItemsReceivedMTD int64            `json:"items_received_mtd"`
}

// GetStats aggregates the headline numbers, cached in redis for a minute.
// A cache miss or a redis outage falls through to the database.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats := &DashboardStats{POsByStatus: map[string]int64{}}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := s.db.WithContext(ctx).
		Model(&entity.PurchaseOrder{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.POsByStatus[row.Status] = row.Count
	}

	err = s.db.WithContext(ctx).
		Model(&entity.Requisition{}).
		Where("status IN ?", []string{entity.POStatusDraft, entity.POStatusPending}).
		Count(&stats.OpenRequisitions).Error
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM purchase_orders WHERE status = 'pending_approval')
			+ (SELECT COUNT(*) FROM client_quotes WHERE status = 'pending_approval')
			+ (SELECT COUNT(*) FROM requisitions WHERE status = 'pending_approval')
	`).Scan(&stats.PendingApprovals).Error
	if err != nil {
		return nil, err
	}

	monthStart := time.Now().Format("2006-01") + "-01"
	err = s.db.WithContext(ctx).
		Model(&entity.ActivityLog{}).
		Where("action = ? AND created_at >= ?", entity.ActionGRNReceive, monthStart).
		Count(&stats.ItemsReceivedMTD).Error
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.rdb.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}
	return stats, nil
}

// MonthlySpendRow is one bar of the monthly spend chart.
type MonthlySpendRow struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// GetMonthlySpend sums PO totals per month for one year. Draft and rejected
// orders do not count as spend.
func (s *DashboardService) GetMonthlySpend(ctx context.Context, year int) ([]MonthlySpendRow, error) {
	var rows []MonthlySpendRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM created_at)::int AS month,
			COALESCE(SUM(total_amount), 0) AS total
		FROM purchase_orders
		WHERE EXTRACT(YEAR FROM created_at) = ?
		  AND status NOT IN ('draft', 'rejected')
		GROUP BY 1
		ORDER BY 1
	`, year).Scan(&rows).Error
	return rows, err
}

// POStatusCountRow is one slice of the status breakdown chart.
type POStatusCountRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (s *DashboardService) GetPOStatusCounts(ctx context.Context) ([]POStatusCountRow, error) {
	var rows []POStatusCountRow
	err := s.db.WithContext(ctx).
		Model(&entity.PurchaseOrder{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status").
		Scan(&rows).Error
	return rows, err
}

// SiteSpendRow is one row of the per-site spend chart.
type SiteSpendRow struct {
	SiteID   string  `json:"site_id"`
	SiteName string  `json:"site_name"`
	Total    float64 `json:"total"`
}

func (s *DashboardService) GetSiteSpend(ctx context.Context, year int) ([]SiteSpendRow, error) {
	var rows []SiteSpendRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			s.id AS site_id,
			s.name AS site_name,
			COALESCE(SUM(po.total_amount), 0) AS total
		FROM sites s
		LEFT JOIN purchase_orders po
			ON po.site_id = s.id
			AND EXTRACT(YEAR FROM po.created_at) = ?
			AND po.status NOT IN ('draft', 'rejected')
		GROUP BY s.id, s.name
		ORDER BY total DESC
	`, year).Scan(&rows).Error
	return rows, err
}
