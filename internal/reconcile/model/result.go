package model

import "time"

// State — классификация отклонения.
type State string

const (
	StateOnTarget  State = "on_target"
	StateExcess    State = "excess"
	StateShortfall State = "shortfall"
)

// Origin — откуда взялось ожидаемое значение.
type Origin string

const (
	OriginRatioAdjusted     Origin = "ratio_adjusted"
	OriginNoProductionMatch Origin = "no_production_match"
	OriginZeroPlanned       Origin = "zero_planned"

	OriginMatched         Origin = "matched"
	OriginMissingReal     Origin = "missing_real"
	OriginMissingReported Origin = "missing_reported"
)

// Params — настраиваемые оператором пороги.
type Params struct {
	WasteAllowance      float64 `json:"waste_allowance"`      // доля, 0.03 = 3%
	ShortfallFactor     float64 `json:"shortfall_factor"`     // shortfall если taken < expected*factor
	TimeDeadBand        float64 `json:"time_dead_band"`       // часы
	VisibilityFloorPct  float64 `json:"visibility_floor_pct"` // фильтр показа, %
	ProductionTolerance float64 `json:"production_tolerance"` // доля
}

// DefaultParams — значения по умолчанию.
func DefaultParams() Params {
	return Params{
		WasteAllowance:      0.03,
		ShortfallFactor:     0.95,
		TimeDeadBand:        0.05,
		VisibilityFloorPct:  0,
		ProductionTolerance: 0.05,
	}
}

type MaterialRecord struct {
	OrderKey         string  `json:"order"`
	Material         string  `json:"material"`
	MaterialText     string  `json:"material_text,omitempty"`
	PlannedQty       float64 `json:"planned_qty"`
	ActualQty        float64 `json:"actual_qty"`
	AchievementRatio float64 `json:"achievement_ratio"`
	RatioApplied     bool    `json:"ratio_applied"`
	RequiredBase     float64 `json:"required_base"`
	ExpectedQty      float64 `json:"expected_qty"`
	AllowedMax       float64 `json:"allowed_max"`
	TakenQty         float64 `json:"taken_qty"`
	Deviation        float64 `json:"deviation"`     // taken - allowed_max
	DeviationPct     float64 `json:"deviation_pct"` // |deviation| / expected * 100
	Origin           Origin  `json:"origin"`
	State            State   `json:"state"`
	Correction       float64 `json:"correction"`
}

// TimeRecord. Deviation = reported - real, Correction = real - reported.
type TimeRecord struct {
	OrderKey     string  `json:"order"`
	RealTime     float64 `json:"real_time"`
	ReportedTime float64 `json:"reported_time"`
	Deviation    float64 `json:"deviation"`
	DeviationPct float64 `json:"deviation_pct"`
	Origin       Origin  `json:"origin"`
	State        State   `json:"state"`
	Correction   float64 `json:"correction"`
}

type ProductionRecord struct {
	OrderKey         string  `json:"order"`
	PlannedQty       float64 `json:"planned_qty"`
	ActualQty        float64 `json:"actual_qty"`
	AchievementRatio float64 `json:"achievement_ratio"`
	Deviation        float64 `json:"deviation"`     // actual - planned
	DeviationPct     float64 `json:"deviation_pct"` // доля от plan
	State            State   `json:"state"`
}

// OrderSummary — итоги по материалам заказа.
type OrderSummary struct {
	OrderKey        string  `json:"order"`
	Materials       int     `json:"materials"`
	TotalExpected   float64 `json:"total_expected"`
	TotalTaken      float64 `json:"total_taken"`
	TotalDeviation  float64 `json:"total_deviation"`
	MaxDeviationPct float64 `json:"max_deviation_pct"`
	Flagged         bool    `json:"flagged"`
}

type RecommendationKind string

const (
	RecTime       RecommendationKind = "time"
	RecProduction RecommendationKind = "production"
	RecMaterial   RecommendationKind = "material"
)

type Recommendation struct {
	OrderKey string             `json:"order"`
	Kind     RecommendationKind `json:"kind"`
	Material string             `json:"material,omitempty"`
	Message  string             `json:"message"`
}

type Stats struct {
	RawRows        map[Role]int `json:"raw_rows"`
	Orders         int          `json:"orders"`
	MaterialLines  int          `json:"material_lines"`
	MaterialAlerts int          `json:"material_alerts"`
	TimeAlerts     int          `json:"time_alerts"`
	Unmatched      int          `json:"unmatched"` // материалы без производства
	Elapsed        string       `json:"elapsed"`
}

// Result — результат одного прогона. После возврата не изменяется.
type Result struct {
	Params             Params                    `json:"params"`
	Bindings           map[Role]map[Field]string `json:"bindings"`
	Materials          []MaterialRecord          `json:"materials"`
	Time               []TimeRecord              `json:"time"`
	Production         []ProductionRecord        `json:"production"`
	MaterialDeviations []MaterialRecord          `json:"material_deviations"`
	TimeDeviations     []TimeRecord              `json:"time_deviations"`
	Orders             []OrderSummary            `json:"orders"`
	Recommendations    []Recommendation          `json:"recommendations"`
	Diagnostics        []Diagnostic              `json:"diagnostics"`
	Stats              Stats                     `json:"stats"`
	FinishedAt         time.Time                 `json:"finished_at"`
}

// Trusted — нет ни одной ошибки схемы; только тогда таблицам можно верить.
func (r Result) Trusted() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Table — спроецированная таблица для показа/экспорта.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
