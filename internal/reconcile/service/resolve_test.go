package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"prodrecon/internal/reconcile/model"
)

func TestResolve_KeywordPriorityBeatsColumnOrder(t *testing.T) {
	col, ok := Resolve([]string{"Tiempo total", "Tiempo real"}, []string{"tiempo real", "tiempo"})
	assert.True(t, ok)
	assert.Equal(t, "Tiempo real", col)
}

func TestResolve_FirstColumnWinsForSameKeyword(t *testing.T) {
	col, ok := Resolve([]string{"Orden SAP", "Orden"}, []string{"orden"})
	assert.True(t, ok)
	assert.Equal(t, "Orden SAP", col)
}

func TestResolve_CaseAndSeparatorsFolded(t *testing.T) {
	col, ok := Resolve([]string{"ID", "TIEMPO_REAL_POR_ORDEN"}, []string{"tiempo real"})
	assert.True(t, ok)
	assert.Equal(t, "TIEMPO_REAL_POR_ORDEN", col)

	col, ok = Resolve([]string{"Cantidad\nnecesaria"}, []string{"cantidad necesaria"})
	assert.True(t, ok)
	assert.Equal(t, "Cantidad\nnecesaria", col)
}

func TestResolve_NotFound(t *testing.T) {
	col, ok := Resolve([]string{"A", "B"}, []string{"orden"})
	assert.False(t, ok)
	assert.Empty(t, col)

	_, ok = Resolve(nil, []string{"orden"})
	assert.False(t, ok)
}

// Подстрочный матч без оценки: "real" цепляет "Realizado por".
func TestResolve_SubstringMisbindIsKept(t *testing.T) {
	spec := FieldSpecs(model.RoleRealTime)[1]
	col, ok := Resolve([]string{"Orden", "Realizado por", "Horas"}, spec.Keywords)
	assert.True(t, ok)
	assert.Equal(t, "Realizado por", col)
}

func TestSuggestColumn(t *testing.T) {
	cols := []string{"Orden", "Material", "Cant requerda", "Cantidad tomada"}
	kws := FieldSpecs(model.RoleMaterials)[3].Keywords
	taken := map[string]bool{"Orden": true, "Material": true, "Cantidad tomada": true}

	assert.Equal(t, "Cant requerda", suggestColumn(cols, kws, taken))
	assert.Empty(t, suggestColumn([]string{"xyz"}, kws, nil))
}

func TestFieldSpecs_AllRolesHaveOrderKey(t *testing.T) {
	for _, role := range model.Roles {
		specs := FieldSpecs(role)
		if assert.NotEmpty(t, specs, role) {
			assert.Equal(t, model.FieldOrderID, specs[0].Field, role)
		}
	}
}
