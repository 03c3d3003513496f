package planner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/testutil"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

func newTestService() *Service {
	clock := util.FixedClock{T: testutil.Now}
	return NewService(util.NewSequentialIDGenerator(1), clock)
}

func TestService_Calculate(t *testing.T) {
	svc := newTestService()

	calc, err := svc.Calculate(context.Background(), models.DefaultBranchSettings(), testutil.FixtureRequest())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if calc.ID != util.DeterministicID(1) {
		t.Errorf("ID = %q, want %q", calc.ID, util.DeterministicID(1))
	}
	if !calc.CalculatedAt.Equal(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("CalculatedAt = %v", calc.CalculatedAt)
	}
	if calc.Result.RegularPattiesToMake != 8 {
		t.Errorf("RegularPattiesToMake = %d, want 8", calc.Result.RegularPattiesToMake)
	}
	if calc.Request.CutoffHour != 16 {
		t.Errorf("Request not carried on calculation: %+v", calc.Request)
	}

	next, err := svc.Calculate(context.Background(), models.DefaultBranchSettings(), testutil.FixtureRequest())
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if next.ID == calc.ID {
		t.Error("expected a fresh ID for each calculation")
	}
}

func TestService_Calculate_InvalidSettings(t *testing.T) {
	svc := newTestService()
	settings := models.DefaultBranchSettings()
	settings.WastePerKgGrams = 1000

	calc, err := svc.Calculate(context.Background(), settings, testutil.FixtureRequest())
	if calc != nil {
		t.Error("expected no calculation for invalid settings")
	}
	if !errors.Is(err, models.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if errors.Is(err, models.ErrInvalidRequest) {
		t.Error("settings failure should not report an invalid request")
	}
}

func TestService_Calculate_InvalidRequest(t *testing.T) {
	svc := newTestService()
	req := testutil.FixtureRequest()
	req.RegularRevenueShare = 1.5

	_, err := svc.Calculate(context.Background(), models.DefaultBranchSettings(), req)
	if !errors.Is(err, models.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "regular_share" {
		t.Errorf("expected regular_share ConfigurationError, got %v", err)
	}
}

func TestService_Calculate_RejectsOversizedPlan(t *testing.T) {
	svc := newTestService()
	settings := testutil.FixtureSettings(func(s *models.BranchSettings) { s.RegularPackRevenue = 0.000001 })
	req := testutil.FixtureRequest(testutil.WithStock(0, 0))
	req.TodayRevenueTarget = 999999999999

	calc, err := svc.Calculate(context.Background(), settings, req)
	if !errors.Is(err, models.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v (calc %+v)", err, calc)
	}

	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Field != "regular patties" {
		t.Errorf("expected regular patties ConfigurationError, got %v", err)
	}
}

func TestService_Calculate_CancelledContext(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Calculate(ctx, models.DefaultBranchSettings(), testutil.FixtureRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestService_Calculate_Concurrent(t *testing.T) {
	svc := NewService(nil, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(stock int) {
			defer wg.Done()
			req := testutil.FixtureRequest()
			req.RegularInStock = stock

			calc, err := svc.Calculate(context.Background(), models.DefaultBranchSettings(), req)
			if err != nil {
				errs <- err
				return
			}
			want := max(0, 24-stock)
			if calc.Result.RegularPattiesToMake != want {
				errs <- errors.New("unexpected result under concurrency")
			}
		}(i * 2)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
