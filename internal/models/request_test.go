package models

import (
	"errors"
	"math"
	"testing"
)

func validRequest() SalesRequest {
	return SalesRequest{
		TodayRevenueTarget:    16000,
		TomorrowRevenueTarget: 0,
		CutoffHour:            16,
		SplitMode:             SplitByShare,
		RegularRevenueShare:   0.5,
		RegularInStock:        16,
		MiniInStock:           20,
	}
}

func TestSalesRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SalesRequest)
		wantField string
	}{
		{"Valid share request", func(*SalesRequest) {}, ""},
		{"Valid explicit request", func(r *SalesRequest) {
			r.SplitMode = SplitExplicit
			r.RegularTargetRevenue = 1000
			r.MiniTargetRevenue = 9000
		}, ""},
		{"Share ignored in explicit mode", func(r *SalesRequest) {
			r.SplitMode = SplitExplicit
			r.RegularRevenueShare = 7
		}, ""},
		{"Share of zero", func(r *SalesRequest) { r.RegularRevenueShare = 0 }, ""},
		{"Share of one", func(r *SalesRequest) { r.RegularRevenueShare = 1 }, ""},
		{"Share above one", func(r *SalesRequest) { r.RegularRevenueShare = 1.05 }, "regular_share"},
		{"Negative share", func(r *SalesRequest) { r.RegularRevenueShare = -0.1 }, "regular_share"},
		{"NaN share", func(r *SalesRequest) { r.RegularRevenueShare = math.NaN() }, "regular_share"},
		{"Negative today", func(r *SalesRequest) { r.TodayRevenueTarget = -1 }, "today_target"},
		{"NaN tomorrow", func(r *SalesRequest) { r.TomorrowRevenueTarget = math.NaN() }, "tomorrow_target"},
		{"Cutoff too early", func(r *SalesRequest) { r.CutoffHour = 11 }, "cutoff_hour"},
		{"Cutoff too late", func(r *SalesRequest) { r.CutoffHour = 23 }, "cutoff_hour"},
		{"Unknown split mode", func(r *SalesRequest) { r.SplitMode = "half" }, "split_mode"},
		{"Negative explicit regular", func(r *SalesRequest) {
			r.SplitMode = SplitExplicit
			r.RegularTargetRevenue = -10
		}, "regular_target"},
		{"Negative explicit mini", func(r *SalesRequest) {
			r.SplitMode = SplitExplicit
			r.MiniTargetRevenue = -10
		}, "mini_target"},
		{"Negative regular stock", func(r *SalesRequest) { r.RegularInStock = -1 }, "regular_in_stock"},
		{"Negative mini stock", func(r *SalesRequest) { r.MiniInStock = -3 }, "mini_in_stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)

			err := r.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigurationError, got %T", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestShareFromPercent(t *testing.T) {
	tests := []struct {
		percent int
		want    float64
	}{
		{0, 0},
		{5, 0.05},
		{50, 0.5},
		{100, 1},
	}

	for _, tt := range tests {
		if got := ShareFromPercent(tt.percent); got != tt.want {
			t.Errorf("ShareFromPercent(%d) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}
