package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/redis/go-redis/v9"
)

// publisher is the part of the redis client used here.
type publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Connect opens a client and checks the server answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}
	utils.Log.WithField("addr", addr).Info("connected to redis")
	return client, nil
}

// Publisher sends booking events as JSON on a pub/sub channel.
type Publisher struct {
	client  publisher
	channel string
}

func NewPublisher(client publisher, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

func (p *Publisher) Publish(ctx context.Context, ev services.BookingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, payload).Err()
}
