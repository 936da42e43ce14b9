package service

import (
	"fmt"
	"strings"

	"prodrecon/internal/reconcile/model"
)

// Adapt привязывает поля роли к колонкам и нормализует значения.
// Если не нашлось хоть одно обязательное поле — строк нет вовсе, только диагностика:
// частичная сверка без ключевого поля даёт вводящий в заблуждение отчёт.
func Adapt(raw model.RawDataset) (model.CanonicalDataset, []model.Diagnostic) {
	out := model.CanonicalDataset{
		Role:     raw.Role,
		Bindings: make(map[model.Field]string),
	}
	var diags []model.Diagnostic

	if len(raw.Rows) == 0 {
		diags = append(diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Kind:     model.DiagEmptyDataset,
			Role:     raw.Role,
			Message:  fmt.Sprintf("dataset %q has no data rows", raw.Name),
		})
	}

	specs := FieldSpecs(raw.Role)
	if len(specs) == 0 {
		diags = append(diags, model.Diagnostic{
			Severity: model.SeverityError,
			Kind:     model.DiagUnresolvedField,
			Role:     raw.Role,
			Message:  fmt.Sprintf("unknown dataset role %q", raw.Role),
		})
		return out, diags
	}

	var missing []model.FieldSpec
	taken := make(map[string]bool)
	for _, spec := range specs {
		col, ok := Resolve(raw.Columns, spec.Keywords)
		switch {
		case ok:
			out.Bindings[spec.Field] = col
			taken[col] = true
		case !spec.Optional:
			missing = append(missing, spec)
		}
	}
	if len(missing) > 0 {
		for _, spec := range missing {
			diags = append(diags, model.Diagnostic{
				Severity:   model.SeverityError,
				Kind:       model.DiagUnresolvedField,
				Role:       raw.Role,
				Field:      spec.Field,
				Keywords:   append([]string(nil), spec.Keywords...),
				Available:  append([]string(nil), raw.Columns...),
				Suggestion: suggestColumn(raw.Columns, spec.Keywords, taken),
				Message: fmt.Sprintf("no column matches %s (tried: %s)",
					spec.Field, strings.Join(spec.Keywords, ", ")),
			})
		}
		out.Bindings = map[model.Field]string{}
		return out, diags
	}

	for _, rec := range raw.Rows {
		row, ok := canonicalRow(rec, specs, out.Bindings)
		if !ok {
			out.Dropped++
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	if out.Dropped > 0 {
		diags = append(diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Kind:     model.DiagRowsDropped,
			Role:     raw.Role,
			Field:    model.FieldOrderID,
			Count:    out.Dropped,
			Message: fmt.Sprintf("%d row(s) without order number in column %q were skipped",
				out.Dropped, out.Bindings[model.FieldOrderID]),
		})
	}
	return out, diags
}

func canonicalRow(rec map[string]any, specs []model.FieldSpec, bind map[model.Field]string) (model.CanonicalRow, bool) {
	row := model.CanonicalRow{Values: make(map[model.Field]float64, len(specs))}
	for _, spec := range specs {
		col, ok := bind[spec.Field]
		if !ok {
			continue
		}
		v := rec[col]
		switch {
		case spec.Field == model.FieldOrderID:
			row.OrderKey = NormalizeKey(v)
		case spec.Field == model.FieldMaterial:
			row.Material = NormalizeText(v)
		case spec.Field == model.FieldMaterialText:
			row.MaterialText = NormalizeText(v)
		case spec.Numeric:
			row.Values[spec.Field] = NormalizeNumber(v)
		}
	}
	return row, row.OrderKey != ""
}
