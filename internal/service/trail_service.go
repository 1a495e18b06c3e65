package service

import (
	"context"

	"github.com/trailhaven/trails-backend-go/internal/models"
	"github.com/trailhaven/trails-backend-go/internal/repository"
	"github.com/trailhaven/trails-backend-go/internal/spatial"
)

// TrailService handles business logic for trails
type TrailService struct {
	repo *repository.TrailRepository
}

// NewTrailService creates a new trail service
func NewTrailService(repo *repository.TrailRepository) *TrailService {
	return &TrailService{repo: repo}
}

// Search runs a filtered full-text trail search
func (s *TrailService) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	return s.repo.Search(ctx, req)
}

// GetTrailByID retrieves a single hydrated trail
func (s *TrailService) GetTrailByID(ctx context.Context, id int64, userID *int64) (*models.Trail, error) {
	return s.repo.GetTrailByID(ctx, id, userID)
}

// CreateTrail stores a new trail. Route length, elevation gain/loss and
// the trailhead location are derived from the coordinate geometry when
// it is present, and stored pre-converted in both unit systems.
func (s *TrailService) CreateTrail(ctx context.Context, t *models.Trail) (int64, error) {
	if len(t.Coords) > 0 {
		points := make([]spatial.Point, len(t.Coords))
		for i, c := range t.Coords {
			points[i] = spatial.Point{Lat: c.Lat, Lon: c.Lon, Elevation: c.Elevation}
		}

		meters := spatial.RouteLength(points)
		t.Miles = spatial.RoundTo(spatial.MetersToMiles(meters), 2)
		t.Kilometers = spatial.RoundTo(meters/1000, 2)

		gain, loss := spatial.ElevationProfile(points)
		t.ElevationGainM = spatial.RoundTo(gain, 1)
		t.ElevationGainFt = spatial.RoundTo(spatial.MetersToFeet(gain), 1)
		t.ElevationLossM = spatial.RoundTo(loss, 1)
		t.ElevationLossFt = spatial.RoundTo(spatial.MetersToFeet(loss), 1)

		// highest point along the route
		var peak float64
		for _, p := range points {
			if p.Elevation > peak {
				peak = p.Elevation
			}
		}
		if peak > 0 {
			t.ElevationM = spatial.RoundTo(peak, 1)
			t.ElevationFt = spatial.RoundTo(spatial.MetersToFeet(peak), 1)
		}

		t.Lat = points[0].Lat
		t.Lon = points[0].Lon
	}

	return s.repo.Create(ctx, t)
}
