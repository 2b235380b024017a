package config

import (
	"strconv"
	"time"
)

// Redis keys shared by the aggregator that writes the read models and the
// analytics service that reads them.
const (
	AllTimeSalesKey = "sales:alltime"
	DishNamesKey    = "sales:dish_names"

	DayLayout = "2006-01-02"
)

func DailySalesKey(day string) string {
	return "sales:daily:" + day
}

func DailyRevenueKey(day string) string {
	return "revenue:daily:" + day
}

func ProcessedOrderKey(orderID int) string {
	return "orders:processed:" + strconv.Itoa(orderID)
}

// Day is the UTC calendar day a timestamp belongs to.
func Day(t time.Time) string {
	return t.UTC().Format(DayLayout)
}
