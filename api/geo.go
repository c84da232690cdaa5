package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/roadside-api/schema"
)

var errInvalidGeoPosition = fmt.Errorf("invalid geo-position value")

// parseGeoPosition reads a `lat;lng` Geo-Position header value
func parseGeoPosition(geoPosition string) (schema.Location, error) {
	positions := strings.Split(geoPosition, ";")
	if len(positions) != 2 {
		return schema.Location{}, errInvalidGeoPosition
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(positions[0]), 64)
	if err != nil {
		return schema.Location{}, err
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(positions[1]), 64)
	if err != nil {
		return schema.Location{}, err
	}

	loc := schema.Location{Latitude: lat, Longitude: lng}
	if !loc.Valid() {
		return schema.Location{}, errInvalidGeoPosition
	}
	return loc, nil
}

// updateGeoPositionMiddleware keeps the last known location of the caller
// from the Geo-Position header. A bad header never fails the request.
func (s *Server) updateGeoPositionMiddleware(c *gin.Context) {
	gp := c.GetHeader("Geo-Position")
	accountID := c.GetString("requester")

	if gp != "" && accountID != "" {
		if loc, err := parseGeoPosition(gp); err == nil {
			if err := s.store.UpdateAccountGeoPosition(accountID, loc.Latitude, loc.Longitude); err != nil {
				c.Error(err)
			}
		} else {
			c.Error(err)
		}
	}
	c.Next()
}
