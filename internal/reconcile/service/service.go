package service

import (
	"fmt"
	"time"

	"prodrecon/internal/reconcile/model"
)

// Run — основная сверка одного пакета. Чистая функция: состояние между прогонами
// не хранится. Ошибка возвращается только на неверные параметры; проблемы схемы
// уходят в Result.Diagnostics.
func Run(batch model.Batch, p model.Params) (model.Result, error) {
	if err := ValidateParams(p); err != nil {
		return model.Result{}, err
	}
	start := time.Now()

	res := model.Result{
		Params:   p,
		Bindings: make(map[model.Role]map[model.Field]string, len(model.Roles)),
		Stats:    model.Stats{RawRows: make(map[model.Role]int, len(model.Roles))},
	}

	// 1) Маппинг колонок + нормализация, 2) агрегация по заказу
	aggs := make(map[model.Role][]model.OrderAggregate, len(model.Roles))
	resolved := make(map[model.Role]bool, len(model.Roles))
	for _, role := range model.Roles {
		raw := batch.Dataset(role)
		res.Stats.RawRows[role] = len(raw.Rows)

		canon, diags := Adapt(raw)
		res.Diagnostics = append(res.Diagnostics, diags...)
		resolved[role] = !hasError(diags)
		res.Bindings[role] = canon.Bindings
		aggs[role] = Aggregate(canon)
	}

	// 3) Производство
	if resolved[model.RoleProduction] {
		for _, rec := range ReconcileProduction(aggs[model.RoleProduction]) {
			res.Production = append(res.Production, ClassifyProduction(rec, p))
		}
	}

	// 4) Материалы: без производства пересчёт на факт невозможен
	switch {
	case resolved[model.RoleMaterials] && resolved[model.RoleProduction]:
		for _, rec := range ReconcileMaterials(aggs[model.RoleMaterials], aggs[model.RoleProduction]) {
			rec = ClassifyMaterial(rec, p)
			res.Materials = append(res.Materials, rec)
			if rec.Origin == model.OriginNoProductionMatch {
				res.Stats.Unmatched++
			}
			if rec.State != model.StateOnTarget && Visible(rec.Deviation, rec.ExpectedQty, p.VisibilityFloorPct) {
				res.MaterialDeviations = append(res.MaterialDeviations, rec)
			}
		}
	case resolved[model.RoleMaterials]:
		res.Diagnostics = append(res.Diagnostics, blocked(model.RoleMaterials, model.RoleProduction))
	}

	// 5) Время
	switch {
	case resolved[model.RoleRealTime] && resolved[model.RoleReportedTime]:
		for _, rec := range ReconcileTime(aggs[model.RoleRealTime], aggs[model.RoleReportedTime]) {
			rec = ClassifyTime(rec, p)
			res.Time = append(res.Time, rec)
			if rec.State != model.StateOnTarget && Visible(rec.Deviation, rec.RealTime, p.VisibilityFloorPct) {
				res.TimeDeviations = append(res.TimeDeviations, rec)
			}
		}
	case resolved[model.RoleRealTime]:
		res.Diagnostics = append(res.Diagnostics, blocked(model.RoleRealTime, model.RoleReportedTime))
	case resolved[model.RoleReportedTime]:
		res.Diagnostics = append(res.Diagnostics, blocked(model.RoleReportedTime, model.RoleRealTime))
	}

	res.Orders = SummarizeOrders(res.Materials)
	res.Recommendations = Recommend(res)

	res.Stats.Orders = countOrders(res)
	res.Stats.MaterialLines = len(res.Materials)
	res.Stats.MaterialAlerts = len(res.MaterialDeviations)
	res.Stats.TimeAlerts = len(res.TimeDeviations)
	res.Stats.Elapsed = time.Since(start).String()
	res.FinishedAt = time.Now()
	return res, nil
}

func hasError(diags []model.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == model.SeverityError {
			return true
		}
	}
	return false
}

func blocked(role, dependency model.Role) model.Diagnostic {
	return model.Diagnostic{
		Severity: model.SeverityError,
		Kind:     model.DiagBlocked,
		Role:     role,
		Message:  fmt.Sprintf("%s not reconciled: %s dataset has unresolved fields", role, dependency),
	}
}

func countOrders(res model.Result) int {
	seen := make(map[string]struct{})
	for _, r := range res.Materials {
		seen[r.OrderKey] = struct{}{}
	}
	for _, r := range res.Time {
		seen[r.OrderKey] = struct{}{}
	}
	for _, r := range res.Production {
		seen[r.OrderKey] = struct{}{}
	}
	return len(seen)
}
