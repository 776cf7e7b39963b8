package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/haversine"
	"github.com/UnknownOlympus/haversine/internal/metrics"
	"github.com/UnknownOlympus/haversine/internal/models"
	"github.com/UnknownOlympus/haversine/internal/repository"
)

const taskLimit = 100

// Dispatch describes where crews leave from and how distances are reported.
type Dispatch struct {
	Origin haversine.Point // Origin is the dispatch point all proximities are measured from.
	Unit   haversine.Unit  // Unit is the distance unit stored with each task.
	Radius float64         // Radius limits processing to a service area, 0 disables the limit.
}

// ProximityService computes the distance and bearing from the dispatch origin
// for every geocoded task and stores them back in the repository.
type ProximityService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	dispatch     Dispatch             // Dispatch origin and unit
	area         *models.Bounds       // Service area prefilter, nil when unlimited
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval between polls for new tasks
}

// NewProximityService creates a new instance of ProximityService.
// The service area box is derived once from the dispatch origin and radius.
func NewProximityService(
	log *slog.Logger,
	repo repository.Interface,
	metrics *metrics.Metrics,
	dispatch Dispatch,
	numWorkers int,
	pollInterval time.Duration,
) *ProximityService {
	return &ProximityService{
		log:          log,
		repo:         repo,
		metrics:      metrics,
		dispatch:     dispatch,
		area:         ServiceArea(dispatch.Origin, dispatch.Radius, dispatch.Unit),
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// Run polls for geocoded tasks every poll interval until ctx is canceled.
// It returns only after the batch in flight has been processed.
func (ps *ProximityService) Run(ctx context.Context) {
	ticker := time.NewTicker(ps.pollInterval)
	defer ticker.Stop()

	ps.log.InfoContext(ctx, "Proximity service started...",
		"origin_lat", ps.dispatch.Origin.Latitude,
		"origin_lon", ps.dispatch.Origin.Longitude,
		"unit", ps.dispatch.Unit.String(),
	)

	for {
		select {
		case <-ctx.Done():
			ps.log.InfoContext(ctx, "Proximity service stopped.")
			return
		case <-ticker.C:
			ps.log.InfoContext(ctx, "Polling for geocoded tasks...")
			ps.processTasks(ctx)
		}
	}
}

// Compute returns the proximity of location relative to the dispatch origin.
// Locations outside the geographic ranges are rejected before any computation.
func (ps *ProximityService) Compute(location haversine.Point) (models.Proximity, error) {
	if err := ValidateLocation(location); err != nil {
		return models.Proximity{}, err
	}

	proximity := models.Proximity{
		Distance: haversine.Distance(ps.dispatch.Origin, location, ps.dispatch.Unit),
		Bearing:  haversine.Bearing(ps.dispatch.Origin, location),
	}

	if !isFinite(proximity.Distance) || !isFinite(proximity.Bearing) {
		return models.Proximity{}, fmt.Errorf("%w: distance=%v bearing=%v",
			ErrNonFiniteResult, proximity.Distance, proximity.Bearing)
	}

	return proximity, nil
}

// processTasks fetches one batch of tasks and fans it out to the worker pool.
func (ps *ProximityService) processTasks(ctx context.Context) {
	tasks, err := ps.repo.FetchTasksForProximity(ctx, taskLimit, ps.area)
	if err != nil {
		ps.log.ErrorContext(ctx, "Failed to fetch tasks", "error", err)
		return
	}
	if len(tasks) == 0 {
		ps.log.InfoContext(ctx, "No tasks to process.")
		return
	}

	ps.log.InfoContext(ctx, "Found tasks to process. Starting worker pool.",
		"jobs", len(tasks),
		"num_workers", ps.numWorkers,
	)

	jobs := make(chan models.Task, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= ps.numWorkers; i++ {
		wgr.Add(1)
		go ps.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	ps.log.InfoContext(ctx, "Processing batch finished")
}

func (ps *ProximityService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Task) {
	defer wg.Done()
	for task := range jobs {
		ps.metrics.ActiveWorkers.Inc()
		ps.handle(ctx, idx, task)
		ps.metrics.ActiveWorkers.Dec()
	}
}

func (ps *ProximityService) handle(ctx context.Context, idx int, task models.Task) {
	ps.log.DebugContext(ctx, "Processing task", "worker", idx, "task", task.ID)

	proximity, err := ps.Compute(task.Location)
	if err != nil {
		ps.log.WarnContext(ctx, "Failed to compute proximity", "worker", idx, "task", task.ID, "error", err)
		ps.metrics.TaskProcessed.WithLabelValues("failure").Inc()
		if errors.Is(err, ErrInvalidCoordinates) {
			ps.metrics.InvalidLocations.Inc()
		}

		if err = ps.repo.IncrementFailureCount(ctx, task.ID, err.Error()); err != nil {
			ps.log.ErrorContext(ctx, "Could not update failure count for task",
				"worker", idx,
				"task", task.ID,
				"error", err,
			)
		}
		return
	}

	if err = ps.repo.UpdateTaskProximity(ctx, task.ID, proximity); err != nil {
		ps.log.ErrorContext(ctx, "Failed to update proximity for task",
			"worker", idx,
			"task", task.ID,
			"error", err,
		)
		ps.metrics.TaskProcessed.WithLabelValues("failure").Inc()
		return
	}

	ps.metrics.TaskProcessed.WithLabelValues("success").Inc()
	ps.metrics.TaskDistance.WithLabelValues(ps.dispatch.Unit.String()).Observe(proximity.Distance)

	ps.log.DebugContext(ctx, "Worker successfully processed the task",
		"worker", idx,
		"task", task.ID,
		"distance", proximity.Distance,
		"bearing", proximity.Bearing,
	)
}
