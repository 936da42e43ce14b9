package service

import "prodrecon/internal/reconcile/model"

// Aggregate схлопывает дубли по ключу заказа (для материалов — заказ+материал),
// суммируя все числовые поля. Порядок — по первому появлению ключа.
func Aggregate(ds model.CanonicalDataset) []model.OrderAggregate {
	idx := make(map[string]int, len(ds.Rows))
	out := make([]model.OrderAggregate, 0, len(ds.Rows))

	for _, r := range ds.Rows {
		key := aggregateKey(ds.Role, r.OrderKey, r.Material)
		i, ok := idx[key]
		if !ok {
			idx[key] = len(out)
			out = append(out, model.OrderAggregate{
				OrderKey:     r.OrderKey,
				Material:     r.Material,
				MaterialText: r.MaterialText,
				Values:       make(map[model.Field]float64, len(r.Values)),
			})
			i = len(out) - 1
		}
		ag := &out[i]
		ag.Rows++
		if ag.MaterialText == "" {
			ag.MaterialText = r.MaterialText
		}
		for f, v := range r.Values {
			ag.Values[f] += v
		}
	}
	return out
}

func aggregateKey(role model.Role, order, material string) string {
	if role == model.RoleMaterials {
		return order + "\x00" + material
	}
	return order
}

// byOrder индексирует агрегаты без материала.
func byOrder(aggs []model.OrderAggregate) map[string]model.OrderAggregate {
	m := make(map[string]model.OrderAggregate, len(aggs))
	for _, a := range aggs {
		m[a.OrderKey] = a
	}
	return m
}
