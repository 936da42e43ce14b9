package service

import "prodrecon/internal/reconcile/model"

// ReconcileMaterials — left join материалов к производству по ключу заказа.
// Ожидаемый расход пересчитывается на фактически выпущенное количество:
// план 500, годных 445 -> ожидаем 89% от потребности по плану.
func ReconcileMaterials(materials, production []model.OrderAggregate) []model.MaterialRecord {
	prod := byOrder(production)
	out := make([]model.MaterialRecord, 0, len(materials))

	for _, m := range materials {
		rec := model.MaterialRecord{
			OrderKey:     m.OrderKey,
			Material:     m.Material,
			MaterialText: m.MaterialText,
			RequiredBase: m.Values[model.FieldQtyRequired],
			TakenQty:     m.Values[model.FieldQtyTaken],
		}

		p, ok := prod[m.OrderKey]
		switch {
		case !ok:
			rec.Origin = model.OriginNoProductionMatch
			rec.ExpectedQty = rec.RequiredBase
		case p.Values[model.FieldQtyPlanned] <= 0:
			rec.PlannedQty = p.Values[model.FieldQtyPlanned]
			rec.ActualQty = p.Values[model.FieldQtyActual]
			rec.Origin = model.OriginZeroPlanned
			rec.ExpectedQty = rec.RequiredBase
		default:
			rec.PlannedQty = p.Values[model.FieldQtyPlanned]
			rec.ActualQty = p.Values[model.FieldQtyActual]
			rec.AchievementRatio = rec.ActualQty / rec.PlannedQty
			rec.RatioApplied = true
			rec.Origin = model.OriginRatioAdjusted
			rec.ExpectedQty = rec.RequiredBase * rec.AchievementRatio
		}
		out = append(out, rec)
	}
	return out
}

// ReconcileTime — full outer join двух источников времени, без пересчёта.
// Отсутствующая сторона считается нулём, Origin это помечает.
// Знак: Deviation = reported - real.
func ReconcileTime(real, reported []model.OrderAggregate) []model.TimeRecord {
	rep := byOrder(reported)
	seen := make(map[string]bool, len(real))
	out := make([]model.TimeRecord, 0, len(real)+len(reported))

	for _, r := range real {
		seen[r.OrderKey] = true
		rec := model.TimeRecord{
			OrderKey: r.OrderKey,
			RealTime: r.Values[model.FieldTimeValue],
			Origin:   model.OriginMissingReported,
		}
		if p, ok := rep[r.OrderKey]; ok {
			rec.ReportedTime = p.Values[model.FieldTimeValue]
			rec.Origin = model.OriginMatched
		}
		rec.Deviation = rec.ReportedTime - rec.RealTime
		out = append(out, rec)
	}
	for _, p := range reported {
		if seen[p.OrderKey] {
			continue
		}
		rec := model.TimeRecord{
			OrderKey:     p.OrderKey,
			ReportedTime: p.Values[model.FieldTimeValue],
			Origin:       model.OriginMissingReal,
		}
		rec.Deviation = rec.ReportedTime - rec.RealTime
		out = append(out, rec)
	}
	return out
}

// ReconcileProduction — выпуск факт против плана по каждому заказу.
func ReconcileProduction(production []model.OrderAggregate) []model.ProductionRecord {
	out := make([]model.ProductionRecord, 0, len(production))
	for _, p := range production {
		rec := model.ProductionRecord{
			OrderKey:   p.OrderKey,
			PlannedQty: p.Values[model.FieldQtyPlanned],
			ActualQty:  p.Values[model.FieldQtyActual],
		}
		rec.Deviation = rec.ActualQty - rec.PlannedQty
		if rec.PlannedQty > 0 {
			rec.AchievementRatio = rec.ActualQty / rec.PlannedQty
			rec.DeviationPct = rec.Deviation / rec.PlannedQty
		}
		out = append(out, rec)
	}
	return out
}
