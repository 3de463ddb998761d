package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client backed by an embedded redis server. The
// server is shared across scenarios and flushed between them.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{
			Addr: server.Addr(),
		})
	})

	return redisConn
}

func ClearRedis(conn *redis.Client) error {
	return conn.FlushAll(context.TODO()).Err()
}
