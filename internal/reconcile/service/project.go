package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"prodrecon/internal/reconcile/model"
)

// Имена таблиц проекции (они же листы отчёта).
const (
	TableMaterials       = "materials"
	TableTime            = "time"
	TableProduction      = "production"
	TableOrders          = "orders"
	TableRecommendations = "recommendations"
	TableDiagnostics     = "diagnostics"
)

// Project выбирает, переименовывает и упорядочивает колонки для показа и экспорта.
// Числа округляются до 3 знаков.
func Project(res model.Result) []model.Table {
	return []model.Table{
		projectMaterials(res.MaterialDeviations),
		projectTime(res.TimeDeviations),
		projectProduction(res.Production),
		projectOrders(res.Orders),
		projectRecommendations(res.Recommendations),
		projectDiagnostics(res.Diagnostics),
	}
}

func projectMaterials(rows []model.MaterialRecord) model.Table {
	t := model.Table{
		Name: TableMaterials,
		Columns: []string{"Order", "Material", "Description", "Planned qty", "Actual qty", "Achievement %",
			"Required", "Expected", "Allowed max", "Taken", "Deviation", "Deviation %", "State", "Correction", "Origin"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderKey, r.Material, r.MaterialText,
			round(r.PlannedQty), round(r.ActualQty), round(r.AchievementRatio * 100),
			round(r.RequiredBase), round(r.ExpectedQty), round(r.AllowedMax), round(r.TakenQty),
			round(r.Deviation), round(r.DeviationPct), string(r.State), round(r.Correction), string(r.Origin),
		})
	}
	return t
}

func projectTime(rows []model.TimeRecord) model.Table {
	t := model.Table{
		Name:    TableTime,
		Columns: []string{"Order", "Real time", "Reported time", "Deviation", "Deviation %", "State", "Correction", "Origin"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderKey, round(r.RealTime), round(r.ReportedTime), round(r.Deviation),
			round(r.DeviationPct), string(r.State), round(r.Correction), string(r.Origin),
		})
	}
	return t
}

func projectProduction(rows []model.ProductionRecord) model.Table {
	t := model.Table{
		Name:    TableProduction,
		Columns: []string{"Order", "Planned qty", "Actual qty", "Achievement %", "Deviation", "Deviation %", "State"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderKey, round(r.PlannedQty), round(r.ActualQty), round(r.AchievementRatio * 100),
			round(r.Deviation), round(r.DeviationPct * 100), string(r.State),
		})
	}
	return t
}

func projectOrders(rows []model.OrderSummary) model.Table {
	t := model.Table{
		Name:    TableOrders,
		Columns: []string{"Order", "Materials", "Total expected", "Total taken", "Total deviation", "Max deviation %", "Flagged"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.OrderKey, r.Materials, round(r.TotalExpected), round(r.TotalTaken),
			round(r.TotalDeviation), round(r.MaxDeviationPct), r.Flagged,
		})
	}
	return t
}

func projectRecommendations(rows []model.Recommendation) model.Table {
	t := model.Table{
		Name:    TableRecommendations,
		Columns: []string{"Order", "Kind", "Material", "Message"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.OrderKey, string(r.Kind), r.Material, r.Message})
	}
	return t
}

func projectDiagnostics(rows []model.Diagnostic) model.Table {
	t := model.Table{
		Name:    TableDiagnostics,
		Columns: []string{"Severity", "Kind", "Dataset", "Field", "Message", "Suggestion", "Available columns"},
	}
	for _, d := range rows {
		t.Rows = append(t.Rows, []any{
			string(d.Severity), string(d.Kind), string(d.Role), string(d.Field),
			d.Message, d.Suggestion, strings.Join(d.Available, " | "),
		})
	}
	return t
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}
