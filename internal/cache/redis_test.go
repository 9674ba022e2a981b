package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisCache_Keys(t *testing.T) {
	c := NewRedisCache(nil, "aviapp:", time.Hour, time.Hour, time.Hour)

	assert.Equal(t, "aviapp:cache:cities", c.citiesKey())
	assert.Equal(t, "aviapp:cache:airports:Москва", c.airportsKey("Москва"))
	assert.Equal(t, "aviapp:cache:airlines", c.airlinesKey())
}

// Каждый вид справочных данных живет со своим TTL
func TestRedisCache_PerKindTTL(t *testing.T) {
	c := NewRedisCache(nil, "aviapp:", time.Hour, 2*time.Hour, 3*time.Hour)

	assert.Equal(t, time.Hour, c.citiesTTL)
	assert.Equal(t, 2*time.Hour, c.airportsTTL)
	assert.Equal(t, 3*time.Hour, c.airlinesTTL)
}
