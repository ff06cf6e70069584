package session

import (
	"context"
	"errors"
	"log"
	"time"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/metrics"
	"hos-route-service/internal/ports"
	"hos-route-service/internal/services"
)

// Renderer drives one full render cycle: compose the route, derive the
// markers, and install the result in the session manager. It is the
// only component that mutates the live session.
type Renderer struct {
	manager  *Manager
	composer *services.Composer
	cache    ports.RouteCache   // optional
	metrics  *metrics.Collector // optional
}

func NewRenderer(manager *Manager, composer *services.Composer, cache ports.RouteCache, collector *metrics.Collector) *Renderer {
	r := &Renderer{
		manager:  manager,
		composer: composer,
		cache:    cache,
		metrics:  collector,
	}

	if collector != nil {
		manager.OnLiveChange(func(live bool) {
			if live {
				collector.LiveSessions.Set(1)
			} else {
				collector.LiveSessions.Set(0)
			}
		})
	}

	return r
}

// Render runs a composition for trip and returns the resulting state.
// If a newer render starts while this one is in flight, this one's
// result is discarded and the returned snapshot reflects the newer
// generation.
func (r *Renderer) Render(ctx context.Context, trip *domain.Trip) Snapshot {
	if trip == nil {
		return r.manager.Snapshot()
	}

	ctx, gen := r.manager.Begin(ctx)

	start := time.Now()

	comp, err := r.composeWithCache(ctx, trip)
	if err != nil {
		r.observe("error", start)

		var compErr *domain.CompositionError
		msg := "unable to load route"
		if errors.As(err, &compErr) {
			msg = compErr.Reason
		}

		if r.manager.Fail(gen, msg) {
			log.Printf("composition failed: trip_id=%d err=%v", trip.ID, err)
		}
		return r.manager.Snapshot()
	}

	markers := services.EndpointMarkers(trip, comp.Endpoints)
	markers = append(markers, services.AnnotateStops(comp.Route, trip.TotalDistance, trip.DailyLogs)...)

	content := domain.MapContent{
		Route:   comp.Route,
		Bounds:  comp.Bounds,
		Markers: markers,
	}

	if r.manager.Apply(gen, trip.ID, content) {
		r.observe("ready", start)
	}

	return r.manager.Snapshot()
}

func (r *Renderer) composeWithCache(ctx context.Context, trip *domain.Trip) (*domain.Composition, error) {
	if r.cache != nil && trip.ID != 0 {
		comp, ok, err := r.cache.GetComposition(ctx, trip.ID)
		if err != nil {
			log.Printf("route cache read failed: trip_id=%d err=%v", trip.ID, err)
		} else if ok {
			if r.metrics != nil {
				r.metrics.CacheHits.Inc()
			}
			return comp, nil
		} else if r.metrics != nil {
			r.metrics.CacheMisses.Inc()
		}
	}

	comp, err := r.composer.Compose(ctx, trip)
	if err != nil {
		return nil, err
	}

	if r.cache != nil && trip.ID != 0 {
		if err := r.cache.PutComposition(ctx, trip.ID, comp); err != nil {
			log.Printf("route cache write failed: trip_id=%d err=%v", trip.ID, err)
		}
	}

	return comp, nil
}

func (r *Renderer) observe(outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.Compositions.WithLabelValues(outcome).Inc()
	r.metrics.ComposeDuration.Observe(time.Since(start).Seconds())
}
