package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodrecon/internal/reconcile/model"
)

func TestClassifyMaterial(t *testing.T) {
	p := model.DefaultParams()
	cases := []struct {
		name       string
		expected   float64
		taken      float64
		state      model.State
		correction float64
	}{
		{"excess over waste ceiling", 267, 280, model.StateExcess, 4.99},
		{"just under ceiling", 267, 275, model.StateOnTarget, 0},
		{"shortfall", 267, 250, model.StateShortfall, 17},
		{"within band below expected", 267, 260, model.StateOnTarget, 0},
		{"zero expected, nothing taken", 0, 0, model.StateOnTarget, 0},
		{"zero expected, something taken", 0, 3, model.StateExcess, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ClassifyMaterial(model.MaterialRecord{ExpectedQty: tc.expected, TakenQty: tc.taken}, p)
			assert.InDelta(t, tc.expected*1.03, rec.AllowedMax, 1e-9)
			assert.Equal(t, tc.state, rec.State)
			assert.InDelta(t, tc.correction, rec.Correction, 1e-9)
			assert.InDelta(t, tc.taken-rec.AllowedMax, rec.Deviation, 1e-9)
		})
	}
}

func TestClassifyMaterial_DeviationPct(t *testing.T) {
	rec := ClassifyMaterial(model.MaterialRecord{ExpectedQty: 267, TakenQty: 280}, model.DefaultParams())
	assert.InDelta(t, 4.99/267*100, rec.DeviationPct, 1e-9)

	rec = ClassifyMaterial(model.MaterialRecord{ExpectedQty: 0, TakenQty: 3}, model.DefaultParams())
	assert.Zero(t, rec.DeviationPct)
}

func TestClassifyMaterial_ShortfallFactorConfigurable(t *testing.T) {
	p := model.DefaultParams()
	p.ShortfallFactor = 1
	rec := ClassifyMaterial(model.MaterialRecord{ExpectedQty: 100, TakenQty: 99}, p)
	assert.Equal(t, model.StateShortfall, rec.State)
	assert.InDelta(t, 1, rec.Correction, 1e-9)
}

func TestClassifyTime(t *testing.T) {
	p := model.DefaultParams()

	rec := ClassifyTime(model.TimeRecord{RealTime: 2, ReportedTime: 2.5, Deviation: 0.5}, p)
	assert.Equal(t, model.StateExcess, rec.State)
	assert.InDelta(t, -0.5, rec.Correction, 1e-9)
	assert.InDelta(t, 25, rec.DeviationPct, 1e-9)

	rec = ClassifyTime(model.TimeRecord{RealTime: 3, ReportedTime: 2, Deviation: -1}, p)
	assert.Equal(t, model.StateShortfall, rec.State)
	assert.InDelta(t, 1, rec.Correction, 1e-9)

	rec = ClassifyTime(model.TimeRecord{RealTime: 1, ReportedTime: 1.04, Deviation: 0.04}, p)
	assert.Equal(t, model.StateOnTarget, rec.State, "inside dead band")

	rec = ClassifyTime(model.TimeRecord{ReportedTime: 1, Deviation: 1}, p)
	assert.Equal(t, model.StateExcess, rec.State)
	assert.Zero(t, rec.DeviationPct, "no real time, no percentage")
}

func TestClassifyProduction(t *testing.T) {
	p := model.DefaultParams()

	rec := ClassifyProduction(model.ProductionRecord{PlannedQty: 500, ActualQty: 445, Deviation: -55, DeviationPct: -0.11}, p)
	assert.Equal(t, model.StateShortfall, rec.State)

	rec = ClassifyProduction(model.ProductionRecord{PlannedQty: 100, ActualQty: 104, Deviation: 4, DeviationPct: 0.04}, p)
	assert.Equal(t, model.StateOnTarget, rec.State)

	rec = ClassifyProduction(model.ProductionRecord{PlannedQty: 100, ActualQty: 120, Deviation: 20, DeviationPct: 0.2}, p)
	assert.Equal(t, model.StateExcess, rec.State)

	rec = ClassifyProduction(model.ProductionRecord{PlannedQty: 0, ActualQty: 7, Deviation: 7}, p)
	assert.Equal(t, model.StateOnTarget, rec.State, "no plan, no verdict")
}

func TestVisible(t *testing.T) {
	assert.True(t, Visible(0.001, 1000, 0), "no floor shows everything")
	assert.False(t, Visible(1, 1000, 1))
	assert.True(t, Visible(10, 1000, 1))
	assert.True(t, Visible(-10, 1000, 1), "sign does not matter")
	assert.True(t, Visible(3, 0, 5), "zero base with non-zero deviation is visible")
	assert.False(t, Visible(0, 0, 5))
}

func TestValidateParams(t *testing.T) {
	require.NoError(t, ValidateParams(model.DefaultParams()))

	bad := []func(*model.Params){
		func(p *model.Params) { p.WasteAllowance = -0.1 },
		func(p *model.Params) { p.WasteAllowance = math.NaN() },
		func(p *model.Params) { p.ShortfallFactor = 0 },
		func(p *model.Params) { p.ShortfallFactor = 1.2 },
		func(p *model.Params) { p.TimeDeadBand = -1 },
		func(p *model.Params) { p.VisibilityFloorPct = math.Inf(1) },
		func(p *model.Params) { p.ProductionTolerance = -0.01 },
	}
	for i, mutate := range bad {
		p := model.DefaultParams()
		mutate(&p)
		err := ValidateParams(p)
		assert.ErrorIs(t, err, ErrInvalidParams, "case %d", i)
	}
}
