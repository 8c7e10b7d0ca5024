package history

import (
	"context"

	"backend-pacetrack/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context, deviceID string) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, device_id, distance_m, avg_speed_mps, active_seconds, started_at, ended_at
		FROM pace_sessions WHERE device_id=$1
		ORDER BY ended_at DESC
	`, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.SessionID, &r.DeviceID, &r.DistanceM, &r.AvgSpeedMps, &r.ActiveSeconds, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, device_id, distance_m, avg_speed_mps, active_seconds, started_at, ended_at
		FROM pace_sessions WHERE id=$1
	`, id)
	var r Record
	if err := row.Scan(&r.SessionID, &r.DeviceID, &r.DistanceM, &r.AvgSpeedMps, &r.ActiveSeconds, &r.StartedAt, &r.EndedAt); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM pace_sessions WHERE id=$1`, id)
	return err
}
