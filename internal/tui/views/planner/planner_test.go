package planner

import (
	"context"
	"strings"
	"testing"

	"github.com/pattyplanner/pattyplanner/internal/models"
	"github.com/pattyplanner/pattyplanner/internal/services/planner"
	"github.com/pattyplanner/pattyplanner/internal/testutil"
	"github.com/pattyplanner/pattyplanner/internal/util"
)

var testNow = testutil.Now

func defaultRequest() models.SalesRequest {
	return testutil.FixtureRequest()
}

func newTestForm() *SalesForm {
	return NewSalesForm(defaultRequest(), util.FixedClock{T: testNow}, "")
}

func press(f *SalesForm, keys ...string) {
	for _, k := range keys {
		f.HandleKey(k)
	}
}

func TestSalesForm_Render(t *testing.T) {
	out := newTestForm().Render()

	for _, want := range []string{
		"SALES TARGET",
		"Today's target",
		"16000",
		"Combined: 16,000",
		"Cutoff set to 16:00 tomorrow (2026-10-20).",
		"Regular share",
		"50%",
		"Mini share 50%",
		"Regular in stock",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	if strings.Contains(out, "Regular target") {
		t.Error("share mode should not show explicit targets")
	}
}

func TestSalesForm_SubmitDefaults(t *testing.T) {
	f := newTestForm()
	press(f, "ctrl+s")

	if !f.IsSubmitted() {
		t.Fatalf("form not submitted: %s", f.Render())
	}

	got, err := f.GetData()
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}

	want := defaultRequest()
	want.RegularTargetRevenue = 0
	want.MiniTargetRevenue = 0
	if got != want {
		t.Errorf("GetData() = %+v, want %+v", got, want)
	}

	f.ClearSubmitted()
	if f.IsSubmitted() {
		t.Error("ClearSubmitted did not reset the flag")
	}
}

func TestSalesForm_EnterOnLastFieldSubmits(t *testing.T) {
	f := newTestForm()

	// today, tomorrow, cutoff, split, share, regular stock, mini stock
	for i := 0; i < 6; i++ {
		press(f, "enter")
		if f.IsSubmitted() {
			t.Fatalf("submitted early after %d enters", i+1)
		}
	}
	press(f, "enter")

	if !f.IsSubmitted() {
		t.Error("enter on the last field should submit")
	}
}

func TestSalesForm_CutoffSelect(t *testing.T) {
	f := newTestForm()
	press(f, "tab", "tab", "right")

	if f.CutoffHour() != 17 {
		t.Errorf("CutoffHour() = %d, want 17", f.CutoffHour())
	}
	if got := f.CutoffCaption(); got != "Cutoff set to 17:00 tomorrow (2026-10-20)." {
		t.Errorf("CutoffCaption() = %q", got)
	}

	press(f, "left", "left", "left", "left", "left", "left")
	if f.CutoffHour() != models.MinCutoffHour {
		t.Errorf("CutoffHour() = %d, want %d", f.CutoffHour(), models.MinCutoffHour)
	}
}

func TestSalesForm_ShareSlider(t *testing.T) {
	f := newTestForm()
	press(f, "tab", "tab", "tab", "tab", "left")

	req, err := f.GetData()
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if req.RegularRevenueShare != models.ShareFromPercent(45) {
		t.Errorf("share = %v, want %v", req.RegularRevenueShare, models.ShareFromPercent(45))
	}
	if !strings.Contains(f.Render(), "Mini share 55%") {
		t.Error("render should show the complementary mini share")
	}
}

func TestSalesForm_ExplicitModePrefillsHalf(t *testing.T) {
	f := NewSalesForm(defaultRequest(), util.FixedClock{T: testNow}, "")

	// Change the combined target to 20000 before switching mode.
	press(f, "backspace", "backspace", "backspace", "backspace", "backspace", "2", "0", "0", "0", "0")
	press(f, "tab", "tab", "tab", "right")

	req, err := f.GetData()
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if req.SplitMode != models.SplitExplicit {
		t.Fatalf("SplitMode = %q, want explicit", req.SplitMode)
	}
	if req.RegularTargetRevenue != 10000 || req.MiniTargetRevenue != 10000 {
		t.Errorf("explicit targets = %v/%v, want 10000 each", req.RegularTargetRevenue, req.MiniTargetRevenue)
	}

	out := f.Render()
	if !strings.Contains(out, "Regular target") || strings.Contains(out, "Regular share") {
		t.Errorf("explicit mode should swap the slider for target inputs:\n%s", out)
	}
}

func TestSalesForm_ExplicitEditsSurviveModeToggle(t *testing.T) {
	f := newTestForm()
	press(f, "tab", "tab", "tab", "right") // explicit
	press(f, "tab", "backspace", "backspace", "backspace", "backspace", "5", "0", "0", "0")
	press(f, "shift+tab", "left", "right") // share, then explicit again

	req, err := f.GetData()
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if req.RegularTargetRevenue != 5000 {
		t.Errorf("RegularTargetRevenue = %v, want 5000", req.RegularTargetRevenue)
	}
	if req.MiniTargetRevenue != 8000 {
		t.Errorf("MiniTargetRevenue = %v, want 8000", req.MiniTargetRevenue)
	}
}

func TestSalesForm_RequiredFieldBlocksSubmit(t *testing.T) {
	f := newTestForm()
	press(f, "backspace", "backspace", "backspace", "backspace", "backspace", "ctrl+s")

	if f.IsSubmitted() {
		t.Fatal("empty target should block submission")
	}

	out := f.Render()
	if !strings.Contains(out, "Required") {
		t.Error("expected inline Required error")
	}
	if !strings.Contains(out, "Please correct the highlighted fields") {
		t.Error("expected form-level error")
	}
}

func TestSalesForm_ApplyError(t *testing.T) {
	f := newTestForm()

	bad := defaultRequest()
	bad.MiniInStock = -1
	bad.CutoffHour = 5
	f.ApplyError(bad.Validate())

	out := f.Render()
	if !strings.Contains(out, "must be zero or more") {
		t.Errorf("stock error not shown inline:\n%s", out)
	}
	if !strings.Contains(out, "cutoff_hour must be between 12 and 22") {
		t.Errorf("cutoff error not shown as form error:\n%s", out)
	}
	if f.IsSubmitted() {
		t.Error("ApplyError should clear the submitted flag")
	}
}

func TestSalesForm_NarrowHelp(t *testing.T) {
	f := newTestForm()

	if !strings.Contains(f.RenderResponsive(50), "Tab:Next  Ctrl+S:Calculate") {
		t.Error("expected compact help on narrow terminal")
	}
	if !strings.Contains(f.RenderResponsive(120), "Shift+Tab/Up:Prev") {
		t.Error("expected full help on wide terminal")
	}
}

func calculate(t *testing.T, req models.SalesRequest) *planner.Calculation {
	t.Helper()
	svc := planner.NewService(util.NewSequentialIDGenerator(1), util.FixedClock{T: testNow})
	calc, err := svc.Calculate(context.Background(), models.DefaultBranchSettings(), req)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return calc
}

func TestResultView_Empty(t *testing.T) {
	v := NewResultView("")

	if v.HasResult() {
		t.Error("new view should have no result")
	}
	if !strings.Contains(v.Render(), "press Ctrl+S to calculate") {
		t.Error("expected empty state message")
	}
}

func TestResultView_WorkedExample(t *testing.T) {
	v := NewResultView("")
	v.SetCalculation(calculate(t, defaultRequest()))

	out := v.RenderResponsive(120)
	for _, want := range []string{
		"PRODUCTION PLAN",
		"2026-10-19 09:00:00",
		"Target revenue: 16,000",
		"regular 8,000, mini 8,000",
		"Regular",
		"24",
		"1 kg 400 g",
		"0 kg 0 g",
		"Total",
		"900 g usable per kg",
		"rounded up to the nearest 0.1 kg",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Nothing to make") {
		t.Error("regular patties are still needed")
	}
}

func TestResultView_StockCoversTarget(t *testing.T) {
	req := defaultRequest()
	req.RegularInStock = 100
	req.MiniInStock = 100

	v := NewResultView("")
	v.SetCalculation(calculate(t, req))

	out := v.Render()
	if !strings.Contains(out, "Stock covers the target. Nothing to make.") {
		t.Errorf("expected stock-covers notice:\n%s", out)
	}
}

func TestResultView_NoTarget(t *testing.T) {
	req := defaultRequest()
	req.TodayRevenueTarget = 0
	req.TomorrowRevenueTarget = 0
	req.RegularInStock = 0
	req.MiniInStock = 0

	v := NewResultView("")
	v.SetCalculation(calculate(t, req))

	out := v.Render()
	if !strings.Contains(out, "No sales target. Nothing to make.") {
		t.Errorf("expected no-target notice:\n%s", out)
	}
	if strings.Contains(out, "Stock covers") {
		t.Error("empty stock cannot cover a target")
	}
}

func TestResultView_CurrencyAndThousands(t *testing.T) {
	req := defaultRequest()
	req.TodayRevenueTarget = 1_200_000
	req.RegularInStock = 0

	v := NewResultView("NOK")
	v.SetCalculation(calculate(t, req))

	out := v.Render()
	if !strings.Contains(out, "NOK 1,200,000") {
		t.Errorf("expected currency-prefixed total:\n%s", out)
	}
	// 600,000 / (2000/6) = 1,800 regular patties.
	if !strings.Contains(out, "1,800") {
		t.Errorf("expected thousands separator in counts:\n%s", out)
	}
}

func TestResultView_NarrowDropsColumns(t *testing.T) {
	v := NewResultView("")
	v.SetCalculation(calculate(t, defaultRequest()))

	out := v.RenderResponsive(50)
	if strings.Contains(out, "In stock") {
		t.Error("narrow layout should drop the stock column")
	}
	if !strings.Contains(out, "1 kg 400 g") {
		t.Error("narrow layout should keep beef mass")
	}

	v.Clear()
	if v.HasResult() || v.Calculation() != nil {
		t.Error("Clear should remove the calculation")
	}
}
