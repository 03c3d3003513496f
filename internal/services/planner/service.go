// Package planner converts revenue targets into patty production and raw
// beef requirements.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

// Calculation is one validated planner run, stamped for display and logging.
type Calculation struct {
	ID           string
	CalculatedAt time.Time
	Settings     models.BranchSettings
	Request      models.SalesRequest
	Result       models.PlanResult
}

// Service validates inputs and runs the planner. It holds no per-calculation
// state and may be shared between goroutines.
type Service struct {
	ids   *util.IDGenerator
	clock util.Clock
}

// NewService creates a new planner service.
func NewService(ids *util.IDGenerator, clock util.Clock) *Service {
	if ids == nil {
		ids = util.NewIDGenerator()
	}
	if clock == nil {
		clock = util.SystemClock{}
	}
	return &Service{
		ids:   ids,
		clock: clock,
	}
}

// Calculate validates settings and request, then plans production.
// Validation failures wrap models.ErrInvalidSettings or models.ErrInvalidRequest,
// as does a plan needing models.MaxPattiesPerType or more patties of one type.
func (s *Service) Calculate(ctx context.Context, settings models.BranchSettings, req models.SalesRequest) (*Calculation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		slog.WarnContext(ctx, "branch settings rejected", "error", err)
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	if err := req.Validate(); err != nil {
		slog.WarnContext(ctx, "sales request rejected", "error", err)
		return nil, fmt.Errorf("validating request: %w", err)
	}

	res := Plan(settings, req)
	if err := res.Validate(); err != nil {
		slog.WarnContext(ctx, "plan out of range", "error", err)
		return nil, fmt.Errorf("checking plan: %w", err)
	}

	calc := &Calculation{
		ID:           s.ids.NewID(),
		CalculatedAt: s.clock.Now(),
		Settings:     settings,
		Request:      req,
		Result:       res,
	}

	slog.InfoContext(ctx, "plan calculated",
		"calculation_id", calc.ID,
		"policy", res.Policy,
		"split_mode", req.SplitMode,
		"total_target", res.TotalTargetRevenue.String(),
		"regular_to_make", res.RegularPattiesToMake,
		"mini_to_make", res.MiniPattiesToMake,
		"regular_kg", res.RegularBeefKg.String(),
		"mini_kg", res.MiniBeefKg.String(),
		"total_kg", res.TotalBeefKg.String(),
	)

	return calc, nil
}
