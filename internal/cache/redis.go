package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novikovva/aviapp/internal/domain"
)

// RedisCache keeps slow-changing reference data (cities, airports,
// airlines) and publishes booking events to the shared channel.
type RedisCache struct {
	client      *redis.Client
	prefix      string
	citiesTTL   time.Duration
	airportsTTL time.Duration
	airlinesTTL time.Duration
}

func NewRedisCache(client *redis.Client, prefix string, citiesTTL, airportsTTL, airlinesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      client,
		prefix:      prefix,
		citiesTTL:   citiesTTL,
		airportsTTL: airportsTTL,
		airlinesTTL: airlinesTTL,
	}
}

func (c *RedisCache) GetCities(ctx context.Context) ([]string, error) {
	var cities []string
	ok, err := c.getJSON(ctx, c.citiesKey(), &cities)
	if err != nil || !ok {
		return nil, err
	}
	return cities, nil
}

func (c *RedisCache) SetCities(ctx context.Context, cities []string) error {
	return c.setJSON(ctx, c.citiesKey(), cities, c.citiesTTL)
}

func (c *RedisCache) GetAirports(ctx context.Context, city string) ([]string, error) {
	var airports []string
	ok, err := c.getJSON(ctx, c.airportsKey(city), &airports)
	if err != nil || !ok {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, city string, airports []string) error {
	return c.setJSON(ctx, c.airportsKey(city), airports, c.airportsTTL)
}

func (c *RedisCache) GetAirlines(ctx context.Context) ([]domain.Airline, error) {
	var airlines []domain.Airline
	ok, err := c.getJSON(ctx, c.airlinesKey(), &airlines)
	if err != nil || !ok {
		return nil, err
	}
	return airlines, nil
}

func (c *RedisCache) SetAirlines(ctx context.Context, airlines []domain.Airline) error {
	return c.setJSON(ctx, c.airlinesKey(), airlines, c.airlinesTTL)
}

// Publish sends a payload to a channel under the application prefix.
// Delivery is fire-and-forget: subscribers that are not listening at
// publish time never see the message.
func (c *RedisCache) Publish(ctx context.Context, channel string, payload []byte) error {
	return c.client.Publish(ctx, c.prefix+channel, payload).Err()
}

func (c *RedisCache) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *RedisCache) citiesKey() string {
	return c.prefix + "cache:cities"
}

func (c *RedisCache) airportsKey(city string) string {
	return c.prefix + "cache:airports:" + city
}

func (c *RedisCache) airlinesKey() string {
	return c.prefix + "cache:airlines"
}
