package services

import (
	"context"
	"sort"
	"time"

	"github.com/Kariqs/aroena-api/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	trendDays          = 7
	popularServicesMax = 5
)

type OrderStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Paid     int `json:"paid"`
}

type UserStats struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Pending  int `json:"pending"`
}

// RevenuePoint is one calendar day of the trend. Date is the short weekday
// label shown on the chart and Day the ISO date it covers.
type RevenuePoint struct {
	Date    string          `json:"date"`
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
}

type CategoryStats struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type PopularService struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	OrderCount int    `json:"orderCount"`
}

type DashboardStats struct {
	TotalOrders   int `json:"totalOrders"`
	TotalUsers    int `json:"totalUsers"`
	TotalServices int `json:"totalServices"`
	// TotalRevenue sums every order whatever its status, pending and
	// rejected ones included. PaidRevenue only counts PAID orders.
	TotalRevenue    decimal.Decimal  `json:"totalRevenue"`
	PaidRevenue     decimal.Decimal  `json:"paidRevenue"`
	OrderStats      OrderStats       `json:"orderStats"`
	UserStats       UserStats        `json:"userStats"`
	RevenueTrend    []RevenuePoint   `json:"revenueTrend"`
	ServiceStats    []CategoryStats  `json:"serviceStats"`
	PopularServices []PopularService `json:"popularServices"`
}

// Aggregate derives the dashboard figures from fully loaded collections.
// Calendar days for the revenue trend are taken in now's location.
func Aggregate(orders []models.Order, users []models.User, services []models.Service, now time.Time) DashboardStats {
	stats := DashboardStats{
		TotalOrders:     len(orders),
		TotalUsers:      len(users),
		TotalServices:   len(services),
		TotalRevenue:    decimal.Zero,
		PaidRevenue:     decimal.Zero,
		ServiceStats:    []CategoryStats{},
		PopularServices: []PopularService{},
	}

	for _, order := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(order.Total)
		switch order.Status {
		case models.OrderPending:
			stats.OrderStats.Pending++
		case models.OrderApproved:
			stats.OrderStats.Approved++
		case models.OrderRejected:
			stats.OrderStats.Rejected++
		case models.OrderPaid:
			stats.OrderStats.Paid++
			stats.PaidRevenue = stats.PaidRevenue.Add(order.Total)
		}
	}

	for _, user := range users {
		switch user.Status {
		case models.UserStatusActive:
			stats.UserStats.Active++
		case models.UserStatusInactive:
			stats.UserStats.Inactive++
		case models.UserStatusPending:
			stats.UserStats.Pending++
		}
	}

	stats.RevenueTrend = revenueTrend(orders, now)
	stats.ServiceStats = serviceStats(orders, services)
	stats.PopularServices = popularServices(orders, services)
	return stats
}

func revenueTrend(orders []models.Order, now time.Time) []RevenuePoint {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	trend := make([]RevenuePoint, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := today.AddDate(0, 0, i-(trendDays-1))
		key := day.Format(time.DateOnly)
		trend[i] = RevenuePoint{Date: day.Format("Mon"), Day: key, Revenue: decimal.Zero}
		index[key] = i
	}

	for _, order := range orders {
		if i, ok := index[order.Date.In(loc).Format(time.DateOnly)]; ok {
			trend[i].Revenue = trend[i].Revenue.Add(order.Total)
		}
	}
	return trend
}

func serviceStats(orders []models.Order, services []models.Service) []CategoryStats {
	categoryOf := make(map[uint]string, len(services))
	for _, service := range services {
		categoryOf[service.ID] = service.Category
	}

	stats := []CategoryStats{}
	position := map[string]int{}
	for _, order := range orders {
		category, ok := categoryOf[order.ServiceID]
		if !ok {
			continue
		}
		i, seen := position[category]
		if !seen {
			i = len(stats)
			position[category] = i
			stats = append(stats, CategoryStats{Category: category, Revenue: decimal.Zero})
		}
		stats[i].Count++
		stats[i].Revenue = stats[i].Revenue.Add(order.Total)
	}
	return stats
}

func popularServices(orders []models.Order, services []models.Service) []PopularService {
	counts := make(map[uint]int, len(services))
	for _, order := range orders {
		counts[order.ServiceID]++
	}

	popular := make([]PopularService, 0, len(services))
	for _, service := range services {
		popular = append(popular, PopularService{
			ID:         service.ID,
			Title:      service.Title,
			OrderCount: counts[service.ID],
		})
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].OrderCount > popular[j].OrderCount
	})
	if len(popular) > popularServicesMax {
		popular = popular[:popularServicesMax]
	}
	return popular
}

// DashboardService loads the three collections concurrently and aggregates them.
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var (
		orders   []models.Order
		users    []models.User
		services []models.Service
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Find(&orders).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Find(&users).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Order("id asc").Find(&services).Error
	})
	if err := g.Wait(); err != nil {
		return nil, NewInternalError("failed to load dashboard data", err)
	}

	stats := Aggregate(orders, users, services, s.now())
	return &stats, nil
}
