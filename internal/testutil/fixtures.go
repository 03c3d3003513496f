// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"time"

	"github.com/pattyplanner/pattyplanner/internal/models"
)

// Now is the wall clock fixtures and clocks in tests agree on.
var Now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// FixtureSettings returns the default branch settings with overrides applied.
func FixtureSettings(overrides ...func(*models.BranchSettings)) models.BranchSettings {
	s := models.DefaultBranchSettings()
	for _, override := range overrides {
		override(&s)
	}
	return s
}

// FixtureRequest returns the reference sales request: 16,000 today, an even
// split, 16 regular and 20 mini patties in stock.
func FixtureRequest(overrides ...func(*models.SalesRequest)) models.SalesRequest {
	req := models.SalesRequest{
		TodayRevenueTarget:    16000,
		TomorrowRevenueTarget: 0,
		CutoffHour:            16,
		SplitMode:             models.SplitByShare,
		RegularRevenueShare:   0.5,
		RegularTargetRevenue:  8000,
		MiniTargetRevenue:     8000,
		RegularInStock:        16,
		MiniInStock:           20,
	}
	for _, override := range overrides {
		override(&req)
	}
	return req
}

// FixtureExplicitRequest returns a request in explicit split mode with the
// given per-type targets and no stock.
func FixtureExplicitRequest(regular, mini float64, overrides ...func(*models.SalesRequest)) models.SalesRequest {
	return FixtureRequest(append([]func(*models.SalesRequest){
		func(r *models.SalesRequest) {
			r.TodayRevenueTarget = regular + mini
			r.SplitMode = models.SplitExplicit
			r.RegularTargetRevenue = regular
			r.MiniTargetRevenue = mini
			r.RegularInStock = 0
			r.MiniInStock = 0
		},
	}, overrides...)...)
}

// WithPolicy sets the conversion policy.
func WithPolicy(p models.ConversionPolicy) func(*models.BranchSettings) {
	return func(s *models.BranchSettings) { s.Policy = p }
}

// WithStock sets the patties in stock.
func WithStock(regular, mini int) func(*models.SalesRequest) {
	return func(r *models.SalesRequest) {
		r.RegularInStock = regular
		r.MiniInStock = mini
	}
}
