package domain

import "errors"

var (
	MessageSuccessGetDashboard = "dashboard summary retrieved successfully"
	MessageSuccessGetSales     = "sales reports retrieved successfully"
	MessageSuccessGetEmployee  = "employee performance retrieved successfully"
	MessageSuccessGetItemPerf  = "menu item performance retrieved successfully"
	MessageSuccessGetVariance  = "inventory variance retrieved successfully"

	MessageFailedGetDashboard = "failed to retrieve dashboard summary"
	MessageFailedGetSales     = "failed to retrieve sales reports"
	MessageFailedGetEmployee  = "failed to retrieve employee performance"
	MessageFailedGetItemPerf  = "failed to retrieve menu item performance"
	MessageFailedGetVariance  = "failed to retrieve inventory variance"

	ErrInvalidDateRange = errors.New("invalid date range")
)

type (
	MenuItemSalesReport struct {
		MenuItemID   string  `json:"menu_item_id"`
		MenuItemName string  `json:"menu_item_name"`
		QuantitySold int     `json:"quantity_sold"`
		Revenue      float64 `json:"revenue"`
		Cost         float64 `json:"cost"`
		Profit       float64 `json:"profit"`
		ProfitMargin float64 `json:"profit_margin"` // percentage
	}

	DailySalesReport struct {
		Date            string                `json:"date"`
		TotalSales      float64               `json:"total_sales"`
		TotalOrders     int                   `json:"total_orders"`
		AvgOrderValue   float64               `json:"avg_order_value"`
		TopSellingItems []MenuItemSalesReport `json:"top_selling_items"`
	}

	EmployeePerformanceReport struct {
		EmployeeID         string  `json:"employee_id"`
		EmployeeName       string  `json:"employee_name"`
		TotalOrdersHandled int     `json:"total_orders_handled"`
		TotalSales         float64 `json:"total_sales"`
		AvgOrderValue      float64 `json:"avg_order_value"`
		DateRange          string  `json:"date_range"`
	}

	InventoryVarianceReport struct {
		IngredientID       string  `json:"ingredient_id"`
		IngredientName     string  `json:"ingredient_name"`
		TheoreticalUsage   float64 `json:"theoretical_usage"`
		ActualUsage        float64 `json:"actual_usage"`
		Variance           float64 `json:"variance"`
		VariancePercentage float64 `json:"variance_percentage"`
		DateRange          string  `json:"date_range"`
	}

	DashboardSummary struct {
		TotalSales      float64                `json:"total_sales"`
		TotalOrders     int                    `json:"total_orders"`
		AvgOrderValue   float64                `json:"avg_order_value"`
		ProfitMargin    float64                `json:"profit_margin"`
		TopSellingItems []MenuItemSalesReport  `json:"top_selling_items"`
		LowStockItems   []LowStockItemResponse `json:"low_stock_items"`
		DateRange       string                 `json:"date_range"`
	}
)
