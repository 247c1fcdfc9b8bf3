package coupon

import "testing"

func TestApply(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		code         string
		wantTotal    int
		wantDiscount int
		wantCode     string
	}{
		{"percent", 1000, "UNISTUDENT10", 900, 100, "UNISTUDENT10"},
		{"percent rounds", 155, "UNISTUDENT10", 139, 16, "UNISTUDENT10"},
		{"flat below minimum", 100, "FREESHIP20", 100, 0, ""},
		{"flat at minimum", 150, "FREESHIP20", 130, 20, "FREESHIP20"},
		{"lowercase code", 200, "freeship20", 180, 20, "FREESHIP20"},
		{"padded code", 200, "  FreeShip20 ", 180, 20, "FREESHIP20"},
		{"unknown code", 500, "BOGUS", 500, 0, ""},
		{"empty code", 499.6, "", 500, 0, ""},
		{"zero subtotal", 0, "UNISTUDENT10", 0, 0, ""},
		{"negative subtotal", -10, "UNISTUDENT10", -10, 0, ""},
		{"half rounds up", 10.5, "", 11, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.subtotal, tt.code)
			if got.Total != tt.wantTotal || got.Discount != tt.wantDiscount {
				t.Errorf("Apply(%v, %q) = total %d discount %d, want %d / %d",
					tt.subtotal, tt.code, got.Total, got.Discount, tt.wantTotal, tt.wantDiscount)
			}
			switch {
			case tt.wantCode == "" && got.Code != nil:
				t.Errorf("code = %q, want nil", *got.Code)
			case tt.wantCode != "" && (got.Code == nil || *got.Code != tt.wantCode):
				t.Errorf("code = %v, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestApplyUnknownCodesNeverDiscount(t *testing.T) {
	for _, sub := range []float64{0, 1, 149.99, 150, 1000, 123456.78} {
		for _, code := range []string{"", "X", "UNISTUDENT", "FREESHIP21", "10UNISTUDENT"} {
			got := Apply(sub, code)
			if got.Discount != 0 || got.Code != nil || got.Total != Apply(sub, "").Total {
				t.Errorf("Apply(%v, %q) = %+v", sub, code, got)
			}
		}
	}
}

func TestFlatDiscountFloorsAtZero(t *testing.T) {
	Definitions["TESTFLAT500"] = Definition{Kind: Flat, Value: 500}
	defer delete(Definitions, "TESTFLAT500")

	got := Apply(120, "testflat500")
	if got.Total != 0 || got.Discount != 500 {
		t.Errorf("got %+v", got)
	}
}

func TestNegativeDiscountClamped(t *testing.T) {
	Definitions["TESTNEG"] = Definition{Kind: Percent, Value: -20}
	defer delete(Definitions, "TESTNEG")

	got := Apply(100, "TESTNEG")
	if got.Total != 100 || got.Discount != 0 || got.Code == nil {
		t.Errorf("got %+v", got)
	}
}

func TestEvaluateReasons(t *testing.T) {
	cases := map[Reason]struct {
		sub  float64
		code string
	}{
		ReasonNone:         {1000, "UNISTUDENT10"},
		ReasonNoCode:       {1000, "  "},
		ReasonUnknown:      {1000, "NOPE"},
		ReasonEmptyCart:    {0, "UNISTUDENT10"},
		ReasonBelowMinimum: {149, "FREESHIP20"},
	}
	for want, c := range cases {
		if _, got := Evaluate(c.sub, c.code); got != want {
			t.Errorf("Evaluate(%v, %q) reason = %q, want %q", c.sub, c.code, got, want)
		}
	}
}
