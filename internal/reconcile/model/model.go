package model

// Role — роль входной таблицы в сверке.
type Role string

const (
	RoleMaterials    Role = "materials"
	RoleProduction   Role = "production"
	RoleRealTime     Role = "real_time"
	RoleReportedTime Role = "reported_time"
)

// Roles в порядке загрузки и отчёта.
var Roles = []Role{RoleMaterials, RoleProduction, RoleRealTime, RoleReportedTime}

// Field — семантическое поле, которое ищем среди колонок.
type Field string

const (
	FieldOrderID      Field = "order_id"
	FieldMaterial     Field = "material"
	FieldMaterialText Field = "material_text"
	FieldQtyRequired  Field = "qty_required"
	FieldQtyTaken     Field = "qty_taken"
	FieldQtyPlanned   Field = "qty_planned"
	FieldQtyActual    Field = "qty_actual"
	FieldTimeValue    Field = "time_value"
)

// FieldSpec — поле + ключевые слова (подстроки, от самых специфичных к общим).
type FieldSpec struct {
	Field    Field
	Keywords []string
	Numeric  bool // прогонять через NormalizeNumber
	Optional bool // отсутствие не валит датасет
}

// RawDataset — таблица как её отдал загрузчик. Значения: string, числа или nil.
type RawDataset struct {
	Role    Role             `json:"role"`
	Name    string           `json:"name"`    // имя файла
	Columns []string         `json:"columns"` // в исходном порядке
	Rows    []map[string]any `json:"-"`
	Sheets  []string         `json:"sheets,omitempty"`
}

// Batch — четыре таблицы одной сверки.
type Batch struct {
	Materials    RawDataset
	Production   RawDataset
	RealTime     RawDataset
	ReportedTime RawDataset
}

// Dataset возвращает таблицу по роли.
func (b Batch) Dataset(role Role) RawDataset {
	var ds RawDataset
	switch role {
	case RoleMaterials:
		ds = b.Materials
	case RoleProduction:
		ds = b.Production
	case RoleRealTime:
		ds = b.RealTime
	case RoleReportedTime:
		ds = b.ReportedTime
	}
	ds.Role = role
	return ds
}

// Set кладёт таблицу на место по её роли.
func (b *Batch) Set(ds RawDataset) {
	switch ds.Role {
	case RoleMaterials:
		b.Materials = ds
	case RoleProduction:
		b.Production = ds
	case RoleRealTime:
		b.RealTime = ds
	case RoleReportedTime:
		b.ReportedTime = ds
	}
}

// CanonicalRow — строка после маппинга колонок и нормализации значений.
type CanonicalRow struct {
	OrderKey     string
	Material     string
	MaterialText string
	Values       map[Field]float64
}

type CanonicalDataset struct {
	Role     Role
	Bindings map[Field]string // поле -> реальная колонка
	Rows     []CanonicalRow
	Dropped  int // строки без ключа заказа
}

// OrderAggregate — одна строка на заказ (для материалов — на заказ×материал).
type OrderAggregate struct {
	OrderKey     string
	Material     string
	MaterialText string
	Rows         int
	Values       map[Field]float64
}
