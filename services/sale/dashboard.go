package sale

import (
	"context"
	"sort"
	"time"
)

const (
	topProductCount = 5
	daysPerWeek     = 7
	dayLabelLayout  = "Mon 02/01"
)

func (s *service) dashboard(c context.Context) (Dashboard, error) {
	products, err := s.listProducts(c)
	if err != nil {
		return Dashboard{}, err
	}

	sales, err := s.listSales(c)
	if err != nil {
		return Dashboard{}, err
	}

	return calculateDashboard(s.nower.Now(), products, sales), nil
}

func calculateDashboard(now time.Time, products []Product, sales []Sale) Dashboard {
	dashboard := Dashboard{
		TopProducts: []ProductSales{},
	}

	for _, p := range products {
		dashboard.TotalStock += p.Stock
	}

	today := startOfDay(now)
	weekAgo := now.AddDate(0, 0, -daysPerWeek)
	firstChartDay := today.AddDate(0, 0, -(daysPerWeek - 1))

	revenuePerDay := make([]int64, daysPerWeek)
	soldPerProduct := map[string]int{}

	for _, sale := range sales {
		dashboard.TotalRevenueInCents += sale.TotalInCents

		createdAt := sale.CreatedAt.In(now.Location())
		if sameDay(createdAt, today) {
			dashboard.SalesToday++
		}
		if !createdAt.Before(weekAgo) {
			dashboard.SalesLastWeek++
		}

		day := startOfDay(createdAt)
		if !day.Before(firstChartDay) && !day.After(today) {
			revenuePerDay[daysBetween(firstChartDay, day)] += sale.TotalInCents
		}

		for _, item := range sale.Items {
			soldPerProduct[item.ProductName] += item.Quantity
		}
	}

	for name, quantity := range soldPerProduct {
		dashboard.TopProducts = append(dashboard.TopProducts, ProductSales{Name: name, Quantity: quantity})
	}
	sort.Slice(dashboard.TopProducts, func(i, j int) bool {
		if dashboard.TopProducts[i].Quantity != dashboard.TopProducts[j].Quantity {
			return dashboard.TopProducts[i].Quantity > dashboard.TopProducts[j].Quantity
		}
		return dashboard.TopProducts[i].Name < dashboard.TopProducts[j].Name
	})
	if len(dashboard.TopProducts) > topProductCount {
		dashboard.TopProducts = dashboard.TopProducts[:topProductCount]
	}

	dashboard.WeeklyRevenue = WeeklyRevenue{
		Labels: make([]string, 0, daysPerWeek),
		Datos:  make([]float64, 0, daysPerWeek),
	}
	for i := 0; i < daysPerWeek; i++ {
		dashboard.WeeklyRevenue.Labels = append(dashboard.WeeklyRevenue.Labels, firstChartDay.AddDate(0, 0, i).Format(dayLabelLayout))
		dashboard.WeeklyRevenue.Datos = append(dashboard.WeeklyRevenue.Datos, centsToDecimal(revenuePerDay[i]).InexactFloat64())
	}

	return dashboard
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return startOfDay(a).Equal(startOfDay(b))
}

// daysBetween counts calendar days, so a daylight saving switch does not shift the result.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	return int(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)).Hours() / 24)
}
