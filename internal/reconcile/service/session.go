package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"prodrecon/internal/reconcile/model"
)

// Session — принадлежащее вызывающему «рабочее место» сверки: параметры и
// неизменяемый результат последнего прогона. Сам движок состояния не хранит.
// Не потокобезопасна; параллельный доступ — забота владельца.
type Session struct {
	ID      string
	Params  model.Params
	Created time.Time

	log  zerolog.Logger
	last *model.Result
	runs int
}

func NewSession(p model.Params, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:      id,
		Params:  p,
		Created: time.Now(),
		log:     logger.With().Str("session", id).Logger(),
	}
}

// Run прогоняет пакет с параметрами сессии и запоминает результат.
// При ошибке предыдущий результат остаётся.
func (s *Session) Run(batch model.Batch) (*model.Result, error) {
	res, err := Run(batch, s.Params)
	if err != nil {
		s.log.Error().Err(err).Msg("reconcile rejected")
		return nil, err
	}
	s.runs++
	s.last = &res

	for _, d := range res.Diagnostics {
		ev := s.log.Warn()
		if d.Severity == model.SeverityError {
			ev = s.log.Error()
		}
		ev.Str("role", string(d.Role)).
			Str("kind", string(d.Kind)).
			Str("field", string(d.Field)).
			Str("suggestion", d.Suggestion).
			Msg(d.Message)
	}
	s.log.Info().
		Int("run", s.runs).
		Bool("trusted", res.Trusted()).
		Int("orders", res.Stats.Orders).
		Int("material_lines", res.Stats.MaterialLines).
		Int("material_alerts", res.Stats.MaterialAlerts).
		Int("time_alerts", res.Stats.TimeAlerts).
		Int("unmatched", res.Stats.Unmatched).
		Str("elapsed", res.Stats.Elapsed).
		Msg("reconcile done")
	return s.last, nil
}

// Last — результат последнего успешного прогона или nil.
func (s *Session) Last() *model.Result { return s.last }

// Tables — проекция последнего результата.
func (s *Session) Tables() []model.Table {
	if s.last == nil {
		return nil
	}
	return Project(*s.last)
}
