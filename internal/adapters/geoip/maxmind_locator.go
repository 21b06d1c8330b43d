package geoip

import (
	"context"
	"errors"
	"fmt"
	"hospital-locator-service/internal/domain"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindLocator resolves a best-effort position for a client IP from a
// local GeoLite2 City database. City-level precision is enough here: the
// coordinate only seeds the hospital search center and the user can
// recenter afterwards.
type MaxMindLocator struct {
	db *geoip2.Reader
}

func NewMaxMindLocator(dbPath string) (*MaxMindLocator, error) {
	db, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %q: %w", dbPath, err)
	}
	return &MaxMindLocator{db: db}, nil
}

func (l *MaxMindLocator) Locate(ctx context.Context, clientIP string) (domain.Coordinates, error) {
	ip := net.ParseIP(clientIP)
	if ip == nil {
		return domain.Coordinates{}, fmt.Errorf("locate: invalid ip %q", clientIP)
	}

	record, err := l.db.City(ip)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("locate %s: %w", clientIP, err)
	}

	if record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return domain.Coordinates{}, errors.New("locate: no location for ip")
	}

	return domain.Coordinates{
		Lat: record.Location.Latitude,
		Lng: record.Location.Longitude,
	}, nil
}

func (l *MaxMindLocator) Close() error {
	return l.db.Close()
}
