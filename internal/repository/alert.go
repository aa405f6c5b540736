package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/service"
)

// AlertRepository хранит журнал оповещений и обработанных проверок
// позиции. Геозоны и состояние присутствия намеренно не сохраняются —
// долговременен только исходящий след оповещений.
type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{
		db: db,
	}
}

// SaveAlertEvent записывает событие оповещения в журнал.
func (r *AlertRepository) SaveAlertEvent(ctx context.Context, event *models.AlertEvent) error {
	query := `
		INSERT INTO alert_events (id, kind, entity_id, fence_id, fence_name, peer_id, distance_meters, latitude, longitude, occurred_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Kind,
		event.EntityID,
		event.FenceID,
		event.FenceName,
		event.PeerID,
		event.DistanceMeters,
		event.Latitude,
		event.Longitude,
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save alert event: %w", err)
	}
	return nil
}

// SaveLocationCheck записывает обработанное обновление позиции.
func (r *AlertRepository) SaveLocationCheck(ctx context.Context, check *models.LocationCheck) error {
	query := `
		INSERT INTO location_checks (entity_id, latitude, longitude, matched_fences, checked_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		check.EntityID,
		check.Latitude,
		check.Longitude,
		check.MatchedFences,
		check.CheckedAt,
	).Scan(&check.ID)
	if err != nil {
		return fmt.Errorf("failed to save location check: %w", err)
	}
	return nil
}

// ListAlertEvents возвращает последние события оповещений объекта.
func (r *AlertRepository) ListAlertEvents(ctx context.Context, entityID string, limit int) ([]*models.AlertEvent, error) {
	query := `
		SELECT
			id,
			kind,
			entity_id,
			COALESCE(fence_id, '') as fence_id,
			COALESCE(fence_name, '') as fence_name,
			COALESCE(peer_id, '') as peer_id,
			distance_meters,
			latitude,
			longitude,
			occurred_at
		FROM alert_events
		WHERE entity_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alert events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.AlertEvent, 0)
	for rows.Next() {
		event := &models.AlertEvent{}
		err := rows.Scan(
			&event.ID,
			&event.Kind,
			&event.EntityID,
			&event.FenceID,
			&event.FenceName,
			&event.PeerID,
			&event.DistanceMeters,
			&event.Latitude,
			&event.Longitude,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alert events iteration: %w", err)
	}
	return events, nil
}

// GetTrackedEntityStats возвращает количество уникальных объектов,
// позиции которых обрабатывались за последние minutes минут.
func (r *AlertRepository) GetTrackedEntityStats(ctx context.Context, minutes int) (int, error) {
	query := `
		SELECT COUNT(DISTINCT entity_id)
		FROM location_checks
		WHERE checked_at >= NOW() - ($1 * INTERVAL '1 minute');
	`
	var count int
	err := r.db.QueryRow(ctx, query, minutes).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get tracked entity stats: %w", err)
	}
	return count, nil
}
