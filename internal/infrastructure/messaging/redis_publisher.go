package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/questforge/quest-registry/internal/domain/shared"
	"github.com/questforge/quest-registry/pkg/circuitbreaker"
)

// DefaultChannelPrefix namespaces the registry's pub/sub channels.
const DefaultChannelPrefix = "registry:"

// RedisConfig holds connection settings for the pub/sub mirror.
type RedisConfig struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// ChannelPrefix namespaces the channels events are published to.
	ChannelPrefix string

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultRedisConfig returns a sensible default configuration.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:          "localhost",
		Port:          6379,
		DB:            0,
		ChannelPrefix: DefaultChannelPrefix,
		DialTimeout:   5 * time.Second,
		WriteTimeout:  3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisPublisher mirrors committed registry events onto Redis pub/sub
// channels so off-chain indexers and dashboards can follow the registry
// without polling. Each event type gets its own channel plus a firehose
// channel carrying everything.
//
// The mirror is advisory. A failed publish is logged and dropped, never
// surfaced to the transition that raised the event.
type RedisPublisher struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewRedisPublisher connects to Redis and returns a publisher.
func NewRedisPublisher(cfg RedisConfig, logger *zap.Logger) (*RedisPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ChannelPrefix == "" {
		cfg.ChannelPrefix = DefaultChannelPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis publisher: connect %s: %w", cfg.Addr(), err)
	}

	p := &RedisPublisher{
		client:  client,
		prefix:  cfg.ChannelPrefix,
		timeout: cfg.WriteTimeout,
		logger:  logger,
	}
	p.breaker = circuitbreaker.MirrorBreaker(func(name string, from, to circuitbreaker.State) {
		logger.Warn("event mirror: circuit state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()))
	})
	return p, nil
}

// Channel returns the pub/sub channel for an event type.
func (p *RedisPublisher) Channel(eventType shared.EventType) string {
	return p.prefix + string(eventType)
}

// FirehoseChannel returns the channel carrying every event.
func (p *RedisPublisher) FirehoseChannel() string {
	return p.prefix + "all"
}

// Handler returns an event handler suitable for bus.SubscribeAll.
func (p *RedisPublisher) Handler() shared.EventHandler {
	return func(event shared.Event) error {
		p.Mirror(event)
		return nil
	}
}

// Mirror publishes one event to its type channel and the firehose. Publishes
// go through a circuit breaker: while Redis is down events are dropped without
// touching the connection until the breaker probes again.
func (p *RedisPublisher) Mirror(event shared.Event) {
	env, err := Envelope(event)
	if err != nil {
		p.logger.Warn("event mirror: envelope failed",
			zap.String("event_type", string(event.EventType())),
			zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err = p.breaker.Execute(ctx, func(ctx context.Context) error {
		var publishErr error
		for _, channel := range []string{p.Channel(event.EventType()), p.FirehoseChannel()} {
			if err := p.client.Publish(ctx, channel, encodeEnvelope(env)).Err(); err != nil {
				publishErr = errors.Join(publishErr, fmt.Errorf("channel %s: %w", channel, err))
			}
		}
		return publishErr
	})
	if err != nil {
		p.logger.Warn("event mirror: publish failed",
			zap.String("event_id", env.ID),
			zap.String("event_type", string(event.EventType())),
			zap.Error(err))
	}
}

// Close closes the Redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
