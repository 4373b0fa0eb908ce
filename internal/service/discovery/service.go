package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/booklyhq/booking-api/internal/model"
	"github.com/booklyhq/booking-api/internal/repository"
	"github.com/booklyhq/booking-api/pkg/geo"
	"github.com/booklyhq/booking-api/pkg/geolocation"
	"github.com/booklyhq/booking-api/pkg/logger"
)

// DefaultMaxRadiusKm bounds discovery results when the caller does not
// pick a radius. A business at exactly this distance is still included.
const DefaultMaxRadiusKm = 200.0

const (
	businessCacheKey = "discovery:businesses"
	businessCacheTTL = 30 * time.Second
)

// RankByProximity annotates businesses with their distance from userLoc,
// drops the ones without resolvable coordinates or beyond maxRadiusKm
// and sorts the rest nearest first. With no user location it is a
// pass-through: no filtering, no annotation, original order, businesses
// without coordinates included.
func RankByProximity(businesses []*model.Business, userLoc *geo.Point, maxRadiusKm float64) []model.BusinessWithDistance {
	if userLoc == nil {
		result := make([]model.BusinessWithDistance, 0, len(businesses))
		for _, b := range businesses {
			result = append(result, model.BusinessWithDistance{Business: *b})
		}
		return result
	}

	if maxRadiusKm <= 0 {
		maxRadiusKm = DefaultMaxRadiusKm
	}

	result := make([]model.BusinessWithDistance, 0, len(businesses))
	for _, b := range businesses {
		loc, ok := resolveLocation(b)
		if !ok {
			continue
		}
		d := geo.DistanceKm(*userLoc, loc)
		if d > maxRadiusKm {
			continue
		}
		distance := d
		result = append(result, model.BusinessWithDistance{
			Business:   *b,
			DistanceKm: &distance,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return *result[i].DistanceKm < *result[j].DistanceKm
	})
	return result
}

// resolveLocation extracts a usable coordinate pair. Missing addresses
// and malformed (non-finite, out-of-range) coordinates both count as
// unresolvable rather than errors.
func resolveLocation(b *model.Business) (geo.Point, bool) {
	if b.Address == nil || b.Address.Latitude == nil || b.Address.Longitude == nil {
		return geo.Point{}, false
	}
	p := geo.Point{
		Latitude:  *b.Address.Latitude,
		Longitude: *b.Address.Longitude,
	}
	if !p.Valid() {
		return geo.Point{}, false
	}
	return p, true
}

// Service serves business discovery queries. The redis client and the
// locator are both optional; without them the service degrades to plain
// repository reads and location-less pass-through ranking.
type Service struct {
	repo        repository.BusinessRepository
	locator     geolocation.Locator
	cache       *redis.Client
	logger      *logger.Logger
	maxRadiusKm float64
}

// NewService builds the discovery service. maxRadiusKm is the search
// radius applied when a caller does not pick one; values <= 0 keep
// DefaultMaxRadiusKm.
func NewService(repo repository.BusinessRepository, locator geolocation.Locator, cache *redis.Client, logger *logger.Logger, maxRadiusKm float64) *Service {
	if maxRadiusKm <= 0 {
		maxRadiusKm = DefaultMaxRadiusKm
	}
	return &Service{
		repo:        repo,
		locator:     locator,
		cache:       cache,
		logger:      logger,
		maxRadiusKm: maxRadiusKm,
	}
}

// NearbyBusinesses ranks all businesses around userLoc. When the caller
// supplied no location the injected locator gets one chance to produce
// a fix; if it cannot, ranking degrades to a pass-through.
func (s *Service) NearbyBusinesses(ctx context.Context, userLoc *geo.Point, maxRadiusKm float64) ([]model.BusinessWithDistance, error) {
	if userLoc != nil && !userLoc.Valid() {
		userLoc = nil
	}
	if userLoc == nil && s.locator != nil {
		if pos, err := s.locator.CurrentPosition(ctx); err == nil {
			userLoc = &pos
		} else {
			s.logger.Warn("could not acquire caller position", "error", err.Error())
		}
	}

	if maxRadiusKm <= 0 {
		maxRadiusKm = s.maxRadiusKm
	}

	businesses, err := s.loadBusinesses(ctx)
	if err != nil {
		return nil, err
	}
	return RankByProximity(businesses, userLoc, maxRadiusKm), nil
}

func (s *Service) GetBusiness(ctx context.Context, id uuid.UUID) (*model.Business, error) {
	business, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return business, nil
}

// ListProfessionals returns a business's active professionals, the
// pool the client picks from before checking availability.
func (s *Service) ListProfessionals(ctx context.Context, businessID uuid.UUID) ([]*model.Professional, error) {
	professionals, err := s.repo.ListProfessionals(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return professionals, nil
}

func (s *Service) ListBusinesses(ctx context.Context) ([]*model.Business, error) {
	businesses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return businesses, nil
}

// loadBusinesses is a short-TTL read-through cache over the business and
// address join. Cache failures fall back to the repository silently.
func (s *Service) loadBusinesses(ctx context.Context) ([]*model.Business, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, businessCacheKey).Bytes(); err == nil {
			var cached []*model.Business
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	businesses, err := s.repo.ListWithAddresses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load businesses: %w", err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(businesses); err == nil {
			if err := s.cache.Set(ctx, businessCacheKey, raw, businessCacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache business list", "error", err.Error())
			}
		}
	}
	return businesses, nil
}
