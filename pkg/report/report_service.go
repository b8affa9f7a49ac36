package report

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/pkg/inventory"
	"context"
	"fmt"
	"sort"
	"time"
)

type (
	ReportService interface {
		GetDashboard(ctx context.Context, startDate, endDate string) (domain.DashboardSummary, error)
		GetDailySales(ctx context.Context, startDate, endDate string) ([]domain.DailySalesReport, error)
		GetEmployeePerformance(ctx context.Context, startDate, endDate string) ([]domain.EmployeePerformanceReport, error)
		GetMenuItemPerformance(ctx context.Context, startDate, endDate string) ([]domain.MenuItemSalesReport, error)
		GetInventoryVariance(ctx context.Context, startDate, endDate string) ([]domain.InventoryVarianceReport, error)
	}

	reportService struct {
		reportRepository    ReportRepository
		inventoryRepository inventory.InventoryRepository
	}
)

func NewReportService(reportRepository ReportRepository, inventoryRepository inventory.InventoryRepository) ReportService {
	return &reportService{
		reportRepository:    reportRepository,
		inventoryRepository: inventoryRepository,
	}
}

const dateLayout = "2006-01-02"

// parseRange turns inclusive yyyy-mm-dd bounds into a [start, end) window.
// Missing bounds default to the last 30 days ending today.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	end := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	if startDate != "" {
		parsed, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
		}
		start = parsed
	}
	if endDate != "" {
		parsed, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
		}
		end = parsed.AddDate(0, 0, 1)
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return start, end, nil
}

func formatRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", start.Format(dateLayout), end.AddDate(0, 0, -1).Format(dateLayout))
}

func toItemSalesReport(row itemSalesRow) domain.MenuItemSalesReport {
	profit := row.Revenue - row.Cost
	margin := 0.0
	if row.Revenue > 0 {
		margin = profit / row.Revenue * 100
	}
	return domain.MenuItemSalesReport{
		MenuItemID:   row.MenuItemID.String(),
		MenuItemName: row.MenuItemName,
		QuantitySold: row.QuantitySold,
		Revenue:      row.Revenue,
		Cost:         row.Cost,
		Profit:       profit,
		ProfitMargin: margin,
	}
}

func (s *reportService) GetDashboard(ctx context.Context, startDate, endDate string) (domain.DashboardSummary, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	rows, err := s.reportRepository.GetItemSales(ctx, start, end, 5)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	orders, err := s.reportRepository.GetPaidOrders(ctx, start, end)
	if err != nil {
		return domain.DashboardSummary{}, err
	}

	totalSales := 0.0
	for _, order := range orders {
		totalSales += order.Total
	}
	avgOrderValue := 0.0
	if len(orders) > 0 {
		avgOrderValue = totalSales / float64(len(orders))
	}

	topItems := make([]domain.MenuItemSalesReport, 0, len(rows))
	revenue, cost := 0.0, 0.0
	for _, row := range rows {
		revenue += row.Revenue
		cost += row.Cost
		topItems = append(topItems, toItemSalesReport(row))
	}
	profitMargin := 0.0
	if revenue > 0 {
		profitMargin = (revenue - cost) / revenue * 100
	}

	lowStock, err := s.inventoryRepository.GetLowStockIngredients(ctx)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	lowStockItems := make([]domain.LowStockItemResponse, 0, len(lowStock))
	for _, ingredient := range lowStock {
		unitName := ""
		if ingredient.Unit != nil {
			unitName = ingredient.Unit.Name
		}
		lowStockItems = append(lowStockItems, domain.LowStockItemResponse{
			IngredientResponse: domain.IngredientResponse{
				ID:           ingredient.ID.String(),
				Name:         ingredient.Name,
				Description:  ingredient.Description,
				UnitID:       ingredient.UnitID.String(),
				UnitName:     unitName,
				CurrentStock: ingredient.CurrentStock,
				MinStock:     ingredient.MinStock,
				UnitCost:     ingredient.UnitCost,
				Category:     ingredient.Category,
				CreatedAt:    ingredient.CreatedAt,
			},
			Shortage: ingredient.MinStock - ingredient.CurrentStock,
		})
	}

	return domain.DashboardSummary{
		TotalSales:      totalSales,
		TotalOrders:     len(orders),
		AvgOrderValue:   avgOrderValue,
		ProfitMargin:    profitMargin,
		TopSellingItems: topItems,
		LowStockItems:   lowStockItems,
		DateRange:       formatRange(start, end),
	}, nil
}

func (s *reportService) GetDailySales(ctx context.Context, startDate, endDate string) ([]domain.DailySalesReport, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	orders, err := s.reportRepository.GetPaidOrders(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sales  float64
		orders int
	}
	days := make(map[string]*bucket)
	for _, order := range orders {
		day := order.CreatedAt.UTC().Format(dateLayout)
		if days[day] == nil {
			days[day] = &bucket{}
		}
		days[day].sales += order.Total
		days[day].orders++
	}

	keys := make([]string, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Strings(keys)

	result := make([]domain.DailySalesReport, 0, len(keys))
	for _, day := range keys {
		b := days[day]
		avg := 0.0
		if b.orders > 0 {
			avg = b.sales / float64(b.orders)
		}

		dayStart, _ := time.Parse(dateLayout, day)
		rows, err := s.reportRepository.GetItemSales(ctx, dayStart, dayStart.AddDate(0, 0, 1), 3)
		if err != nil {
			return nil, err
		}
		topItems := make([]domain.MenuItemSalesReport, 0, len(rows))
		for _, row := range rows {
			topItems = append(topItems, toItemSalesReport(row))
		}

		result = append(result, domain.DailySalesReport{
			Date:            day,
			TotalSales:      b.sales,
			TotalOrders:     b.orders,
			AvgOrderValue:   avg,
			TopSellingItems: topItems,
		})
	}
	return result, nil
}

func (s *reportService) GetEmployeePerformance(ctx context.Context, startDate, endDate string) ([]domain.EmployeePerformanceReport, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepository.GetEmployeeSales(ctx, start, end)
	if err != nil {
		return nil, err
	}

	result := make([]domain.EmployeePerformanceReport, 0, len(rows))
	for _, row := range rows {
		avg := 0.0
		if row.TotalOrdersHandled > 0 {
			avg = row.TotalSales / float64(row.TotalOrdersHandled)
		}
		result = append(result, domain.EmployeePerformanceReport{
			EmployeeID:         row.EmployeeID.String(),
			EmployeeName:       row.EmployeeName,
			TotalOrdersHandled: row.TotalOrdersHandled,
			TotalSales:         row.TotalSales,
			AvgOrderValue:      avg,
			DateRange:          formatRange(start, end),
		})
	}
	return result, nil
}

func (s *reportService) GetMenuItemPerformance(ctx context.Context, startDate, endDate string) ([]domain.MenuItemSalesReport, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepository.GetItemSales(ctx, start, end, 0)
	if err != nil {
		return nil, err
	}

	result := make([]domain.MenuItemSalesReport, 0, len(rows))
	for _, row := range rows {
		result = append(result, toItemSalesReport(row))
	}
	return result, nil
}

// GetInventoryVariance compares what recipes say paid orders should have
// consumed against what issuing transactions actually took out of stock.
func (s *reportService) GetInventoryVariance(ctx context.Context, startDate, endDate string) ([]domain.InventoryVarianceReport, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	theoretical, err := s.reportRepository.GetTheoreticalUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}
	actual, err := s.reportRepository.GetActualUsage(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type pair struct {
		name        string
		theoretical float64
		actual      float64
	}
	merged := make(map[string]*pair)
	for _, row := range theoretical {
		merged[row.IngredientID.String()] = &pair{name: row.IngredientName, theoretical: row.UsedQuantity}
	}
	for _, row := range actual {
		id := row.IngredientID.String()
		if merged[id] == nil {
			merged[id] = &pair{name: row.IngredientName}
		}
		merged[id].actual = row.UsedQuantity
	}

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return merged[ids[i]].name < merged[ids[j]].name
	})

	rangeLabel := formatRange(start, end)
	result := make([]domain.InventoryVarianceReport, 0, len(ids))
	for _, id := range ids {
		p := merged[id]
		variance := p.actual - p.theoretical
		pct := 0.0
		if p.theoretical > 0 {
			pct = variance / p.theoretical * 100
		}
		result = append(result, domain.InventoryVarianceReport{
			IngredientID:       id,
			IngredientName:     p.name,
			TheoreticalUsage:   p.theoretical,
			ActualUsage:        p.actual,
			Variance:           variance,
			VariancePercentage: pct,
			DateRange:          rangeLabel,
		})
	}
	return result, nil
}
