package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/haversine/internal/models"
)

const maxProximityAttempts = 5

const fetchTasksQuery = `
	SELECT task_id, latitude, longitude
	FROM public.tasks
	WHERE
		latitude IS NOT NULL
		AND longitude IS NOT NULL
		AND dispatch_distance IS NULL
		AND is_closed = false
		AND proximity_attempts < $2
	ORDER BY created_at ASC
	LIMIT $1;
`

const fetchTasksInAreaQuery = `
	SELECT task_id, latitude, longitude
	FROM public.tasks
	WHERE
		latitude IS NOT NULL
		AND longitude IS NOT NULL
		AND dispatch_distance IS NULL
		AND is_closed = false
		AND proximity_attempts < $2
		AND latitude BETWEEN $3 AND $4
		AND longitude BETWEEN $5 AND $6
	ORDER BY created_at ASC
	LIMIT $1;
`

// FetchTasksForProximity retrieves geocoded tasks that have no dispatch proximity yet.
// It returns open tasks with both coordinates set, no stored distance and fewer than
// 5 failed attempts, oldest first. When area is not nil only tasks inside the box are returned.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of tasks to retrieve.
// - area: Optional service area prefilter.
func (r *Repository) FetchTasksForProximity(
	ctx context.Context,
	limit int,
	area *models.Bounds,
) ([]models.Task, error) {
	query, args := fetchTasksQuery, []any{limit, maxProximityAttempts}
	if area != nil {
		query = fetchTasksInAreaQuery
		args = append(args, area.MinLatitude, area.MaxLatitude, area.MinLongitude, area.MaxLongitude)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query geocoded tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if errScan := rows.Scan(&task.ID, &task.Location.Latitude, &task.Location.Longitude); errScan != nil {
			return nil, fmt.Errorf("failed to scan geocoded task: %w", errScan)
		}
		r.log.DebugContext(ctx, "A geocoded task without proximity has been received.",
			"ID", task.ID, "lat", task.Location.Latitude, "lon", task.Location.Longitude)
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return tasks, nil
}

// UpdateTaskProximity stores the dispatch distance and bearing of a task and clears
// any previous proximity error.
func (r *Repository) UpdateTaskProximity(ctx context.Context, taskID int, proximity models.Proximity) error {
	query := `
		UPDATE tasks
		SET
			dispatch_distance = $1,
			dispatch_bearing = $2,
			proximity_error = NULL
		WHERE
			task_id = $3;
	`

	_, err := r.db.Exec(ctx, query, proximity.Distance, proximity.Bearing, taskID)
	if err != nil {
		return fmt.Errorf("failed to update task proximity: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the proximity attempt counter of a task and records errMsg.
func (r *Repository) IncrementFailureCount(ctx context.Context, taskID int, errMsg string) error {
	query := `
		UPDATE tasks
		SET
			proximity_attempts = proximity_attempts + 1,
			proximity_error = $1
		WHERE task_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, taskID)
	if err != nil {
		return fmt.Errorf("failed to update proximity error and number of attempts: %w", err)
	}

	return nil
}
