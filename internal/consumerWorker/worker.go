package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"github.com/KantapongChamnankit/Booking/internal/dto"
	"github.com/KantapongChamnankit/Booking/internal/rabbit"
)

// Sweeper removes expired bookings and reports how many were deleted.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

type Reader struct {
	RMQ     *rabbit.Client
	sweeper Sweeper
	done    chan struct{}
	cancel  context.CancelFunc
}

func NewReader(rmq *rabbit.Client, sweeper Sweeper) *Reader {
	return &Reader{
		RMQ:     rmq,
		sweeper: sweeper,
		done:    make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("RabbitMQ cleanup reader started")

	go func() {
		defer close(r.done)

		if err := r.RMQ.Consume(func(body []byte) error {
			return r.HandleMessage(cctx, body)
		}); err != nil {
			zlog.Logger.Error().Err(err).Msg("Failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("RabbitMQ cleanup reader stopped by context")
	}()
}

// HandleMessage runs the idempotent expiry sweep for a delayed cleanup
// message. The sweep is global, so a message for an already-deleted booking
// is harmless.
func (r *Reader) HandleMessage(ctx context.Context, body []byte) error {
	var msg dto.CleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		zlog.Logger.Error().
			Err(err).
			Msgf("Failed to unmarshal cleanup message: %s", string(body))
		return err
	}

	zlog.Logger.Info().
		Str("booking_id", msg.BookingID).
		Time("expire_at", msg.ExpireAt).
		Msg("Received cleanup message from RabbitMQ")

	deleted, err := r.sweeper.SweepExpired(ctx)
	if err != nil {
		zlog.Logger.Error().
			Err(err).
			Str("booking_id", msg.BookingID).
			Msg("Failed to sweep expired bookings")
		return err
	}

	if deleted == 0 {
		zlog.Logger.Info().
			Str("booking_id", msg.BookingID).
			Msg("Nothing expired at message time, skipping")
		return nil
	}

	zlog.Logger.Info().
		Int("deleted", deleted).
		Str("booking_id", msg.BookingID).
		Msg("Expired bookings removed by worker")
	return nil
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
