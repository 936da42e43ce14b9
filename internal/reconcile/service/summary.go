package service

import (
	"fmt"

	"prodrecon/internal/reconcile/model"
)

// SummarizeOrders — итоги по материалам в разрезе заказа, в порядке первого появления.
func SummarizeOrders(materials []model.MaterialRecord) []model.OrderSummary {
	idx := make(map[string]int)
	var out []model.OrderSummary
	for _, m := range materials {
		i, ok := idx[m.OrderKey]
		if !ok {
			idx[m.OrderKey] = len(out)
			out = append(out, model.OrderSummary{OrderKey: m.OrderKey})
			i = len(out) - 1
		}
		s := &out[i]
		s.Materials++
		s.TotalExpected += m.ExpectedQty
		s.TotalTaken += m.TakenQty
		s.TotalDeviation += m.Deviation
		s.MaxDeviationPct = max(s.MaxDeviationPct, m.DeviationPct)
		if m.State != model.StateOnTarget {
			s.Flagged = true
		}
	}
	return out
}

// Recommend — подсказки оператору по каждому отклонению.
func Recommend(res model.Result) []model.Recommendation {
	var recs []model.Recommendation
	for _, t := range res.TimeDeviations {
		recs = append(recs, model.Recommendation{
			OrderKey: t.OrderKey,
			Kind:     model.RecTime,
			Message: fmt.Sprintf("review time: reported %.2f h vs real %.2f h, adjust reported by %+.2f h",
				t.ReportedTime, t.RealTime, t.Correction),
		})
	}
	for _, p := range res.Production {
		if p.State == model.StateOnTarget {
			continue
		}
		recs = append(recs, model.Recommendation{
			OrderKey: p.OrderKey,
			Kind:     model.RecProduction,
			Message: fmt.Sprintf("review production: actual %.2f vs planned %.2f (%+.1f%%)",
				p.ActualQty, p.PlannedQty, p.DeviationPct*100),
		})
	}
	for _, m := range res.MaterialDeviations {
		var msg string
		if m.State == model.StateExcess {
			msg = fmt.Sprintf("justify or reverse %.3f over allowed %.3f (taken %.3f)", m.Correction, m.AllowedMax, m.TakenQty)
		} else {
			msg = fmt.Sprintf("record additional consumption of %.3f (expected %.3f, taken %.3f)", m.Correction, m.ExpectedQty, m.TakenQty)
		}
		if m.Origin != model.OriginRatioAdjusted {
			msg += fmt.Sprintf("; expected not adjusted (%s)", m.Origin)
		}
		recs = append(recs, model.Recommendation{
			OrderKey: m.OrderKey,
			Kind:     model.RecMaterial,
			Material: m.Material,
			Message:  msg,
		})
	}
	return recs
}
