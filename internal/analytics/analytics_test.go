package analytics

import (
	"testing"
	"time"

	"campus_market/internal/models"
)

func code(s string) *string { return &s }

func seededOrders() []models.Order {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	return []models.Order{
		{ID: "o1", Campus: "North", Total: 900, Discount: 100, CouponCode: code("UNISTUDENT10"), CreatedAt: day1},
		{ID: "o2", Campus: "South", Total: 180, Discount: 20, CouponCode: code("FREESHIP20"), CreatedAt: day1.Add(time.Hour)},
		{ID: "o3", Campus: "", Total: 50, CreatedAt: day2},
		{ID: "o4", Campus: "North", Total: 45, Discount: 5, CouponCode: code("UNISTUDENT10"), CreatedAt: day2.Add(10 * time.Minute)},
	}
}

func TestParseRange(t *testing.T) {
	cases := map[string]Range{
		"":      Range7d,
		"7d":    Range7d,
		"30d":   Range30d,
		"ALL":   RangeAll,
		"weird": Range7d,
	}
	for in, want := range cases {
		if got := ParseRange(in); got != want {
			t.Errorf("ParseRange(%q) = %q, want %q", in, got, want)
		}
	}

	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	if got := Range7d.From(now); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("7d from = %v", got)
	}
	if got := Range30d.From(now); !got.Equal(now.AddDate(0, 0, -30)) {
		t.Errorf("30d from = %v", got)
	}
	if got := RangeAll.From(now); got.Unix() != 0 {
		t.Errorf("all from = %v", got)
	}
}

func TestSummarizeReconciles(t *testing.T) {
	orders := seededOrders()
	now := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	s := Summarize(RangeAll, RangeAll.From(now), now, orders)

	wantSales, wantDiscount := 0, 0
	for _, o := range orders {
		wantSales += o.Total
		wantDiscount += o.Discount
	}
	if s.Totals.Sales != wantSales || s.Totals.Orders != len(orders) || s.Totals.Discount != wantDiscount {
		t.Fatalf("totals = %+v", s.Totals)
	}
	// (900+180+50+45)/4 = 293.75
	if s.Totals.AvgOrderValue != 294 {
		t.Errorf("avg = %d, want 294", s.Totals.AvgOrderValue)
	}
	// median of 45,50,180,900
	if s.Totals.MedianOrderValue != 115 {
		t.Errorf("median = %d, want 115", s.Totals.MedianOrderValue)
	}

	wantCampus := []CampusRow{
		{Campus: "North", Sales: 945, Orders: 2},
		{Campus: "South", Sales: 180, Orders: 1},
		{Campus: UnknownCampus, Sales: 50, Orders: 1},
	}
	if len(s.ByCampus) != len(wantCampus) {
		t.Fatalf("byCampus = %+v", s.ByCampus)
	}
	campusSales, campusOrders := 0, 0
	for i, row := range s.ByCampus {
		if row != wantCampus[i] {
			t.Errorf("byCampus[%d] = %+v, want %+v", i, row, wantCampus[i])
		}
		campusSales += row.Sales
		campusOrders += row.Orders
	}
	if campusSales != wantSales || campusOrders != len(orders) {
		t.Errorf("campus breakdown does not reconcile: %d/%d", campusSales, campusOrders)
	}

	wantCoupons := []CouponRow{
		{Code: "FREESHIP20", Uses: 1, Discount: 20},
		{Code: "UNISTUDENT10", Uses: 2, Discount: 105},
	}
	if len(s.Coupons) != 2 || s.Coupons[0] != wantCoupons[0] || s.Coupons[1] != wantCoupons[1] {
		t.Errorf("coupons = %+v", s.Coupons)
	}

	wantDaily := []DailyRow{
		{Date: "2026-03-01", Sales: 1080, Orders: 2},
		{Date: "2026-03-02", Sales: 95, Orders: 2},
	}
	if len(s.Daily) != 2 || s.Daily[0] != wantDaily[0] || s.Daily[1] != wantDaily[1] {
		t.Errorf("daily = %+v", s.Daily)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	now := time.Now()
	s := Summarize(Range7d, Range7d.From(now), now, nil)
	if s.Totals != (Totals{}) {
		t.Errorf("totals = %+v, want zero", s.Totals)
	}
	if s.ByCampus == nil || s.Coupons == nil || s.Daily == nil {
		t.Error("breakdowns should be empty slices, not nil")
	}
}
