package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/asistencia/internal/domain/schedule"
	"github.com/okian/asistencia/pkg/logger"
)

const (
	settingsQuery = `
		SELECT "Nombre", "Valor"
		FROM "T_Ajustes_Generales_Sistema"
		WHERE "Nombre" IN ($1, $2)`

	startTimeQuery = `
		SELECT "Nombre", "Valor"
		FROM "T_Horarios_Asistencia"
		WHERE "Nombre" = $1`
)

// RecessConfig loads the recess settings of category. Absent, unparseable
// or non-positive values fall back to schedule.DefaultRecess field by field.
func (s *SQLStore) RecessConfig(ctx context.Context, category schedule.Category) (schedule.RecessConfig, error) {
	values, err := s.namedValues(ctx, "recess settings", settingsQuery,
		category.RecessBlockKey, category.RecessMinutesKey)
	if err != nil {
		return schedule.RecessConfig{}, err
	}

	cfg := schedule.RecessConfig{
		BlockBeforeRecess: s.positiveSetting(ctx, values, category.RecessBlockKey, schedule.DefaultRecess.BlockBeforeRecess),
		RecessMinutes:     s.positiveSetting(ctx, values, category.RecessMinutesKey, schedule.DefaultRecess.RecessMinutes),
	}
	return cfg.Normalize(), nil
}

func (s *SQLStore) positiveSetting(ctx context.Context, values map[string]any, key string, def int) int {
	raw, ok := values[key]
	if !ok || raw == nil {
		s.logger.Debug(ctx, "setting absent, using default", logger.String("key", key), logger.Int("default", def))
		return def
	}

	var n int
	switch v := raw.(type) {
	case int64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			s.logger.Warn(ctx, "setting not numeric, using default", logger.String("key", key), logger.String("value", v))
			return def
		}
		n = parsed
	default:
		s.logger.Warn(ctx, "setting has unexpected type, using default", logger.String("key", key), logger.String("type", fmt.Sprintf("%T", raw)))
		return def
	}

	if n <= 0 {
		return def
	}
	return n
}

// BaseStartTime returns the category's start time anchored on day. A missing
// row resolves to schedule.DefaultStartClock; a value in neither supported
// shape is schedule.ErrMalformedTime.
func (s *SQLStore) BaseStartTime(ctx context.Context, category schedule.Category, day time.Time) (time.Time, error) {
	values, err := s.namedValues(ctx, "start time", startTimeQuery, category.StartTimeKey)
	if err != nil {
		return time.Time{}, err
	}

	raw, ok := values[category.StartTimeKey]
	if !ok {
		s.logger.Debug(ctx, "start time absent, using default",
			logger.String("key", category.StartTimeKey), logger.String("default", schedule.DefaultStartClock))
	}
	return schedule.ParseClock(raw, day)
}
