package service

import "prodrecon/internal/reconcile/model"

// Ключевые слова в нижнем регистре, от самых специфичных к общим.
// Порядок значим: Resolve берёт первое совпадение без оценки.
var orderKeywords = []string{"orden", "order", "pedido", "auftrag", "заказ"}

var fieldSpecs = map[model.Role][]model.FieldSpec{
	model.RoleMaterials: {
		{Field: model.FieldOrderID, Keywords: orderKeywords},
		{Field: model.FieldMaterial, Keywords: []string{"código material", "codigo material", "material", "componente", "component", "artículo", "articulo", "sku", "артикул"}},
		{Field: model.FieldMaterialText, Keywords: []string{"descripción", "descripcion", "description", "texto", "denominación", "denominacion", "наименование"}, Optional: true},
		{Field: model.FieldQtyRequired, Keywords: []string{"cantidad necesaria", "necesaria", "requerida", "required", "requirement", "necesidad", "planificada", "потребность"}, Numeric: true},
		{Field: model.FieldQtyTaken, Keywords: []string{"cantidad tomada", "tomada", "consumida", "consumo", "retirada", "taken", "withdrawn", "issued", "consumed", "расход"}, Numeric: true},
	},
	model.RoleProduction: {
		{Field: model.FieldOrderID, Keywords: orderKeywords},
		{Field: model.FieldQtyPlanned, Keywords: []string{"cantidad orden", "cantidad planificada", "planificada", "prod_needed", "necesaria", "planned", "plan", "objetivo", "target", "план"}, Numeric: true},
		{Field: model.FieldQtyActual, Keywords: []string{"cantidad buena", "buena", "notificada", "producida", "realizada", "reportada", "prod_reported", "good", "produced", "actual", "факт"}, Numeric: true},
	},
	model.RoleRealTime: {
		{Field: model.FieldOrderID, Keywords: orderKeywords},
		{Field: model.FieldTimeValue, Keywords: []string{"tiempo real", "real", "duración", "duracion", "duration", "horas", "hours", "tiempo", "time", "время"}, Numeric: true},
	},
	model.RoleReportedTime: {
		{Field: model.FieldOrderID, Keywords: orderKeywords},
		{Field: model.FieldTimeValue, Keywords: []string{"tiempo informado", "informado", "notificado", "reportado", "reported", "sap", "horas", "hours", "tiempo", "time", "время"}, Numeric: true},
	},
}

// FieldSpecs возвращает таблицу полей роли.
func FieldSpecs(role model.Role) []model.FieldSpec {
	return fieldSpecs[role]
}
