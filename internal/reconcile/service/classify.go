package service

import (
	"errors"
	"fmt"
	"math"

	"prodrecon/internal/reconcile/model"
)

var ErrInvalidParams = errors.New("invalid reconciliation params")

// ValidateParams проверяет пороги оператора.
func ValidateParams(p model.Params) error {
	switch {
	case !isFinite(p.WasteAllowance) || p.WasteAllowance < 0:
		return fmt.Errorf("%w: waste_allowance must be >= 0, got %v", ErrInvalidParams, p.WasteAllowance)
	case !isFinite(p.ShortfallFactor) || p.ShortfallFactor <= 0 || p.ShortfallFactor > 1:
		return fmt.Errorf("%w: shortfall_factor must be in (0, 1], got %v", ErrInvalidParams, p.ShortfallFactor)
	case !isFinite(p.TimeDeadBand) || p.TimeDeadBand < 0:
		return fmt.Errorf("%w: time_dead_band must be >= 0, got %v", ErrInvalidParams, p.TimeDeadBand)
	case !isFinite(p.VisibilityFloorPct) || p.VisibilityFloorPct < 0:
		return fmt.Errorf("%w: visibility_floor_pct must be >= 0, got %v", ErrInvalidParams, p.VisibilityFloorPct)
	case !isFinite(p.ProductionTolerance) || p.ProductionTolerance < 0:
		return fmt.Errorf("%w: production_tolerance must be >= 0, got %v", ErrInvalidParams, p.ProductionTolerance)
	}
	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ClassifyMaterial: excess — взяли больше потолка expected*(1+waste);
// shortfall — меньше expected*ShortfallFactor (вероятно, не весь расход проведён).
func ClassifyMaterial(rec model.MaterialRecord, p model.Params) model.MaterialRecord {
	rec.AllowedMax = rec.ExpectedQty * (1 + p.WasteAllowance)
	rec.Deviation = rec.TakenQty - rec.AllowedMax
	rec.DeviationPct = pctOf(rec.Deviation, rec.ExpectedQty)

	switch {
	case rec.TakenQty > rec.AllowedMax:
		rec.State = model.StateExcess
		rec.Correction = rec.TakenQty - rec.AllowedMax
	case rec.TakenQty < rec.ExpectedQty*p.ShortfallFactor:
		rec.State = model.StateShortfall
		rec.Correction = rec.ExpectedQty - rec.TakenQty
	default:
		rec.State = model.StateOnTarget
		rec.Correction = 0
	}
	return rec
}

// ClassifyTime — симметричная мёртвая зона вокруг нуля.
// Correction = -Deviation = real - reported: сколько добавить к учётному времени.
func ClassifyTime(rec model.TimeRecord, p model.Params) model.TimeRecord {
	rec.DeviationPct = pctOf(rec.Deviation, rec.RealTime)
	switch {
	case math.Abs(rec.Deviation) <= p.TimeDeadBand:
		rec.State = model.StateOnTarget
	case rec.Deviation > 0:
		rec.State = model.StateExcess
	default:
		rec.State = model.StateShortfall
	}
	rec.Correction = -rec.Deviation
	return rec
}

// ClassifyProduction — отклонение выпуска от плана в долях. Без плана не классифицируем.
func ClassifyProduction(rec model.ProductionRecord, p model.Params) model.ProductionRecord {
	switch {
	case rec.PlannedQty <= 0 || math.Abs(rec.DeviationPct) <= p.ProductionTolerance:
		rec.State = model.StateOnTarget
	case rec.Deviation > 0:
		rec.State = model.StateExcess
	default:
		rec.State = model.StateShortfall
	}
	return rec
}

// Visible — фильтр показа по порогу в процентах. State не меняет.
// При нулевой базе любое ненулевое отклонение видно.
func Visible(deviation, base, floorPct float64) bool {
	if floorPct <= 0 {
		return true
	}
	if base == 0 {
		return deviation != 0
	}
	return math.Abs(deviation)/math.Abs(base)*100 >= floorPct
}

// |dev| / base * 100; 0 при нулевой базе.
func pctOf(dev, base float64) float64 {
	if base == 0 {
		return 0
	}
	return math.Abs(dev) / math.Abs(base) * 100
}
