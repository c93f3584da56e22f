package config

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	AppointmentKey       = "APPOINTMENT:"
	MedicalRecordKey     = "MEDICALRECORD:"
	LocationListKey      = "LOCATIONS:ALL"
	SpecialtyLocationKey = "SPECIALTIES:LOCATION:"
	DoctorListKey        = "DOCTORS:"
)

const cacheTTL = 10 * time.Minute

var Rdb *redis.Client

func ConnectRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     Getenv("REDIS_ADDR", "localhost:6379"),
		Password: Getenv("REDIS_PASSWORD", ""),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		Log.Error("Error while pinging redis: ", err)
		return err
	}
	Rdb = client
	return nil
}

/*
* Marshal the value and set it with the shared TTL
* Cache failures are for the caller to log, never to fail the request on
 */
func SetCache(ctx context.Context, key string, value interface{}) error {
	if Rdb == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Rdb.Set(ctx, key, raw, cacheTTL).Err()
}

/*
* Fetch and unmarshal into out
* Returns false on a miss, the caller falls through to mongo
 */
func GetCache(ctx context.Context, key string, out interface{}) (bool, error) {
	if Rdb == nil {
		return false, nil
	}
	raw, err := Rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func DeleteCache(ctx context.Context, keys ...string) error {
	if Rdb == nil || len(keys) == 0 {
		return nil
	}
	return Rdb.Del(ctx, keys...).Err()
}
