package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"prodrecon/internal/reconcile/model"
)

// paramsFromForm — пороги из формы поверх значений по умолчанию из конфига.
func paramsFromForm(r *http.Request, def model.Params) model.Params {
	return model.Params{
		WasteAllowance:      toFloat(r.FormValue("waste_allowance"), def.WasteAllowance),
		ShortfallFactor:     toFloat(r.FormValue("shortfall_factor"), def.ShortfallFactor),
		TimeDeadBand:        toFloat(r.FormValue("time_dead_band"), def.TimeDeadBand),
		VisibilityFloorPct:  toFloat(r.FormValue("visibility_floor_pct"), def.VisibilityFloorPct),
		ProductionTolerance: toFloat(r.FormValue("production_tolerance"), def.ProductionTolerance),
	}
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i <= 0 {
		return def
	}
	return i
}

// toFloat понимает и "0,03" — так вводят операторы с европейской локалью.
func toFloat(s string, def float64) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
