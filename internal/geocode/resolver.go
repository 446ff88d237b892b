package geocode

import (
	"context"
	"strings"
	"time"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"roadsense/internal/logger"
	"roadsense/internal/types"
)

// Geocoder is the narrow slice of the upstream client the resolver needs;
// tests substitute their own.
type Geocoder interface {
	Geocode(address string) (*geo.Location, error)
}

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Resolver turns location names into coordinates through Nominatim. The
// service imposes a strict minimum delay between requests, enforced here by
// one shared limiter regardless of how many callers resolve concurrently.
type Resolver struct {
	geocoder  Geocoder
	limiter   *rate.Limiter
	qualifier string
	log       *logger.Logger
}

// NewResolver builds a Nominatim-backed resolver. qualifier is appended to
// every query ("<location>, <qualifier>") to anchor lookups to the metro
// area; minInterval is the per-request floor the upstream service requires.
func NewResolver(qualifier string, minInterval time.Duration) *Resolver {
	return &Resolver{
		geocoder:  openstreetmap.Geocoder(),
		limiter:   rate.NewLimiter(rate.Every(minInterval), 1),
		qualifier: qualifier,
		log:       logger.New(),
	}
}

// Resolve geocodes one location name. A nil result with nil error means the
// service had no match, distinct from a failed call.
func (r *Resolver) Resolve(ctx context.Context, location string) (*Coordinates, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	loc, err := r.geocoder.Geocode(location + ", " + r.qualifier)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return &Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// ResolveAll geocodes each distinct location once, skipping null and error
// sentinels silently. Failed lookups are reported and mapped to nil so the
// map stage can drop them without aborting.
func (r *Resolver) ResolveAll(ctx context.Context, locations []string) map[string]*Coordinates {
	coords := map[string]*Coordinates{}
	for _, loc := range locations {
		if _, seen := coords[loc]; seen {
			continue
		}
		lower := strings.ToLower(loc)
		if loc == "" || lower == types.LocationNull || lower == types.LocationError {
			continue
		}

		c, err := r.Resolve(ctx, loc)
		if err != nil {
			r.log.WithError(err).WithField("location", loc).Warn("geocoding failed")
			coords[loc] = nil
			continue
		}
		if c == nil {
			r.log.WithField("location", loc).Info("location not found")
			coords[loc] = nil
			continue
		}
		r.log.WithFields(logrus.Fields{
			"location": loc,
			"lat":      c.Lat,
			"lng":      c.Lng,
		}).Info("geocoded location")
		coords[loc] = c
	}
	return coords
}
