package geo

import (
	"testing"

	"cleanup-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	gliwice := models.Coordinates{Latitude: 50.30, Longitude: 18.70}

	t.Run("zero for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Distance(gliwice, gliwice))
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		north := models.Coordinates{Latitude: 51.30, Longitude: 18.70}
		d := Distance(gliwice, north)
		assert.InDelta(t, 111195, d, 50)
	})

	t.Run("symmetric", func(t *testing.T) {
		other := models.Coordinates{Latitude: 50.25, Longitude: 18.65}
		assert.InDelta(t, Distance(gliwice, other), Distance(other, gliwice), 1e-9)
	})
}
