package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	TotalCents int64 `json:"total_cents"`
	Count      int   `json:"count"`
}

func TestService_Get_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	stored, err := json.Marshal(statsFixture{TotalCents: 1500, Count: 3})
	require.NoError(t, err)
	mock.ExpectGet("tixly:merchant:stats:uuid:m1").SetVal(string(stored))

	var got statsFixture
	err = svc.Get(context.Background(), "tixly:merchant:stats:uuid:m1", &got)

	assert.NoError(t, err)
	assert.Equal(t, int64(1500), got.TotalCents)
	assert.Equal(t, 3, got.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Get_MissReturnsErrCacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("tixly:merchant:stats:uuid:absent").RedisNil()

	var got statsFixture
	err := svc.Get(context.Background(), "tixly:merchant:stats:uuid:absent", &got)

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	value := statsFixture{TotalCents: 900, Count: 1}
	data, err := json.Marshal(value)
	require.NoError(t, err)

	mock.ExpectSet("tixly:notifications:unread:uuid:u1", data, time.Minute).SetVal("OK")

	err = svc.Set(context.Background(), "tixly:notifications:unread:uuid:u1", value, time.Minute)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectDel("tixly:merchant:stats:uuid:m1").SetVal(1)

	assert.NoError(t, svc.Delete(context.Background(), "tixly:merchant:stats:uuid:m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetOrSet_MissCallsFetcher(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("tixly:merchant:stats:uuid:m2").RedisNil()

	fetched := false
	var got statsFixture
	err := svc.GetOrSet(context.Background(), "tixly:merchant:stats:uuid:m2", time.Minute,
		func() (interface{}, error) {
			fetched = true
			return statsFixture{TotalCents: 4200, Count: 7}, nil
		}, &got)

	assert.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, int64(4200), got.TotalCents)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "tixly:merchant:stats:uuid:m1", MerchantStatsKey("m1"))
	assert.Equal(t, "tixly:notifications:unread:uuid:u1", UnreadCountKey("u1"))
	assert.Equal(t, "tixly:merchant:*:uuid:m1", MerchantPattern("m1"))
}
