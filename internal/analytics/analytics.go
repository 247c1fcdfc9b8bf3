// Package analytics folds persisted orders into the admin sales summary.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"campus_market/internal/models"
)

type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	RangeAll Range = "all"

	UnknownCampus = "Unknown"
	dayLayout     = "2006-01-02"
)

// ParseRange accepts 7d, 30d or all; anything else means 7d.
func ParseRange(s string) Range {
	switch Range(strings.ToLower(strings.TrimSpace(s))) {
	case Range30d:
		return Range30d
	case RangeAll:
		return RangeAll
	default:
		return Range7d
	}
}

// From returns the inclusive lower bound of the range ending at now.
func (r Range) From(now time.Time) time.Time {
	switch r {
	case Range30d:
		return now.Add(-30 * 24 * time.Hour)
	case RangeAll:
		return time.Unix(0, 0).UTC()
	default:
		return now.Add(-7 * 24 * time.Hour)
	}
}

type Totals struct {
	Sales            int `json:"sales"`
	Orders           int `json:"orders"`
	Discount         int `json:"discount"`
	AvgOrderValue    int `json:"avgOrderValue"`
	MedianOrderValue int `json:"medianOrderValue"`
}

type CampusRow struct {
	Campus string `json:"campus"`
	Sales  int    `json:"sales"`
	Orders int    `json:"orders"`
}

type CouponRow struct {
	Code     string `json:"code"`
	Uses     int    `json:"uses"`
	Discount int    `json:"discount"`
}

type DailyRow struct {
	Date   string `json:"date"`
	Sales  int    `json:"sales"`
	Orders int    `json:"orders"`
}

type Summary struct {
	Range    Range       `json:"range"`
	From     time.Time   `json:"from"`
	To       time.Time   `json:"to"`
	Totals   Totals      `json:"totals"`
	ByCampus []CampusRow `json:"byCampus"`
	Coupons  []CouponRow `json:"coupons"`
	Daily    []DailyRow  `json:"daily"`
}

// Summarize folds orders, which the caller has already limited to [from, to].
func Summarize(r Range, from, to time.Time, orders []models.Order) Summary {
	s := Summary{
		Range:    r,
		From:     from.UTC(),
		To:       to.UTC(),
		ByCampus: []CampusRow{},
		Coupons:  []CouponRow{},
		Daily:    []DailyRow{},
	}

	campuses := map[string]*CampusRow{}
	coupons := map[string]*CouponRow{}
	days := map[string]*DailyRow{}
	values := make(stats.Float64Data, 0, len(orders))

	for _, o := range orders {
		s.Totals.Sales += o.Total
		s.Totals.Orders++
		s.Totals.Discount += o.Discount
		values = append(values, float64(o.Total))

		campus := strings.TrimSpace(o.Campus)
		if campus == "" {
			campus = UnknownCampus
		}
		c, ok := campuses[campus]
		if !ok {
			c = &CampusRow{Campus: campus}
			campuses[campus] = c
		}
		c.Sales += o.Total
		c.Orders++

		if o.CouponCode != nil && *o.CouponCode != "" {
			code := strings.ToUpper(*o.CouponCode)
			cp, ok := coupons[code]
			if !ok {
				cp = &CouponRow{Code: code}
				coupons[code] = cp
			}
			cp.Uses++
			cp.Discount += o.Discount
		}

		day := o.CreatedAt.UTC().Format(dayLayout)
		d, ok := days[day]
		if !ok {
			d = &DailyRow{Date: day}
			days[day] = d
		}
		d.Sales += o.Total
		d.Orders++
	}

	if len(values) > 0 {
		mean, _ := values.Mean()
		median, _ := values.Median()
		s.Totals.AvgOrderValue = roundInt(mean)
		s.Totals.MedianOrderValue = roundInt(median)
	}

	for _, c := range campuses {
		s.ByCampus = append(s.ByCampus, *c)
	}
	sort.Slice(s.ByCampus, func(i, j int) bool {
		if s.ByCampus[i].Sales != s.ByCampus[j].Sales {
			return s.ByCampus[i].Sales > s.ByCampus[j].Sales
		}
		return s.ByCampus[i].Campus < s.ByCampus[j].Campus
	})

	for _, cp := range coupons {
		s.Coupons = append(s.Coupons, *cp)
	}
	sort.Slice(s.Coupons, func(i, j int) bool { return s.Coupons[i].Code < s.Coupons[j].Code })

	for _, d := range days {
		s.Daily = append(s.Daily, *d)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })

	return s
}

func roundInt(v float64) int {
	r, err := stats.Round(v, 0)
	if err != nil {
		return 0
	}
	return int(r)
}
