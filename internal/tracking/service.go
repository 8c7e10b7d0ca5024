package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"backend-pacetrack/internal/db"
	"backend-pacetrack/internal/stream"
	"backend-pacetrack/internal/tracker"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Service manages one tracker per live session and archives summaries when
// sessions end. Devices push raw fixes and sensor errors in; viewers read
// snapshots over the stream hub.
type Service struct {
	db   db.Querier
	hub  *stream.Hub
	opts tracker.Options

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

type liveSession struct {
	tracker   *tracker.Tracker
	deviceID  string
	startedAt time.Time
}

func NewService(dbq db.Querier, hub *stream.Hub, opts tracker.Options) *Service {
	return &Service{
		db:       dbq,
		hub:      hub,
		opts:     opts,
		sessions: map[string]*liveSession{},
	}
}

// CreateSession allocates a session and its tracker. Every tick snapshot
// is broadcast to the session's live stream.
func (s *Service) CreateSession(deviceID string) Session {
	id := uuid.NewString()

	publish := func(snap tracker.Snapshot) {
		if s.hub == nil {
			return
		}
		payload, _ := json.Marshal(snap)
		s.hub.Broadcast(id, payload)
	}

	live := &liveSession{
		tracker:   tracker.New(s.opts, publish),
		deviceID:  deviceID,
		startedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[id] = live
	s.mu.Unlock()

	return Session{ID: id, DeviceID: deviceID, StartedAt: live.startedAt}
}

func (s *Service) StartSession(id string) (tracker.Snapshot, error) {
	live, err := s.get(id)
	if err != nil {
		return tracker.Snapshot{}, err
	}
	live.tracker.Start()
	return live.tracker.Snapshot(), nil
}

func (s *Service) PauseSession(id string) (tracker.Snapshot, error) {
	live, err := s.get(id)
	if err != nil {
		return tracker.Snapshot{}, err
	}
	live.tracker.Pause()
	return live.tracker.Snapshot(), nil
}

func (s *Service) ResetSession(id string) (tracker.Snapshot, error) {
	live, err := s.get(id)
	if err != nil {
		return tracker.Snapshot{}, err
	}
	live.tracker.Reset()
	return live.tracker.Snapshot(), nil
}

// PushFix feeds one raw fix into the session's pipeline. Gating decisions
// are not reported back: a rejected fix is normal operation.
func (s *Service) PushFix(id string, f tracker.Fix) error {
	live, err := s.get(id)
	if err != nil {
		return err
	}
	live.tracker.Offer(f)
	return nil
}

func (s *Service) PushSensorError(id, code string) error {
	live, err := s.get(id)
	if err != nil {
		return err
	}
	live.tracker.ReportError(tracker.SensorError(code))
	return nil
}

func (s *Service) SessionSnapshot(id string) (tracker.Snapshot, error) {
	live, err := s.get(id)
	if err != nil {
		return tracker.Snapshot{}, err
	}
	return live.tracker.Snapshot(), nil
}

// EndSession stops the tracker and archives the summary. Without a
// database the summary is still returned, just not persisted.
func (s *Service) EndSession(ctx context.Context, id string) (Summary, error) {
	s.mu.Lock()
	live, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return Summary{}, ErrSessionNotFound
	}

	live.tracker.Pause()
	snap := live.tracker.Snapshot()
	live.tracker.Stop()

	summary := Summary{
		SessionID:     id,
		DeviceID:      live.deviceID,
		DistanceM:     snap.DistanceM,
		ActiveSeconds: snap.ActiveSeconds,
		StartedAt:     live.startedAt,
		EndedAt:       time.Now(),
	}
	if snap.AvgSpeedMps != nil {
		summary.AvgSpeedMps = *snap.AvgSpeedMps
	}

	if s.db == nil {
		return summary, nil
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO pace_sessions (id, device_id, distance_m, avg_speed_mps, active_seconds, started_at, ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, summary.SessionID, summary.DeviceID, summary.DistanceM, summary.AvgSpeedMps, summary.ActiveSeconds, summary.StartedAt, summary.EndedAt)
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func (s *Service) get(id string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return live, nil
}
