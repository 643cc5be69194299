package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/KantapongChamnankit/Booking/internal/booking"
	"github.com/KantapongChamnankit/Booking/internal/dto"
	"github.com/KantapongChamnankit/Booking/internal/model"
	"github.com/KantapongChamnankit/Booking/internal/notifier"
	"github.com/KantapongChamnankit/Booking/internal/rabbit"
	"github.com/KantapongChamnankit/Booking/internal/repo"
	"github.com/KantapongChamnankit/Booking/internal/session"
	"github.com/KantapongChamnankit/Booking/pkg/validator"
)

type Config struct {
	Machines    []string
	OffsetHours int
	Grace       time.Duration
	SessionTTL  time.Duration
}

type Service interface {
	Session(ctx *ginext.Context)
	ListBookings(ctx *ginext.Context)
	CreateBooking(ctx *ginext.Context)
	DeleteBooking(ctx *ginext.Context)
	Cleanup(ctx *ginext.Context)
	SweepExpired(ctx context.Context) (int, error)
}

type service struct {
	repo repo.Repository
	log  *zerolog.Logger
	rbt  *rabbit.Client
	sms  notifier.Client
	cfg  Config
}

func NewService(repo repo.Repository, logger *zerolog.Logger, rbt *rabbit.Client, sms notifier.Client, cfg Config) Service {
	return &service{
		repo: repo,
		log:  logger,
		rbt:  rbt,
		sms:  sms,
		cfg:  cfg,
	}
}

func (s *service) Session(ctx *ginext.Context) {
	token := session.Ensure(ctx, s.cfg.SessionTTL)
	dto.SuccessResponse(ctx, dto.SessionResponse{SessionID: token})
}

func (s *service) ListBookings(ctx *ginext.Context) {
	token := session.Ensure(ctx, s.cfg.SessionTTL)

	// Listing doubles as the polling-driven cleanup trigger. A failed sweep
	// must not hide the current rows from the caller.
	if _, err := s.SweepExpired(ctx.Request.Context()); err != nil {
		s.log.Error().Err(err).Msg("failed to sweep expired bookings before listing")
	}

	bookings, err := s.repo.ListBookings(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list bookings")
		dto.InternalServerError(ctx)
		return
	}

	views := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		views = append(views, dto.NewBookingResponse(&bookings[i], token))
	}

	dto.SuccessResponse(ctx, dto.ListBookingsResponse{
		Bookings:  views,
		Count:     len(views),
		SessionID: token,
	})
}

func (s *service) CreateBooking(ctx *ginext.Context) {
	token, ok := session.FromRequest(ctx)
	if !ok {
		dto.UnauthorizedError(ctx)
		return
	}

	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadRequestError(ctx, dto.MsgInvalidJSON)
		return
	}
	req.Phone = validator.NormalizePhone(req.Phone)

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", verr))
		return
	}

	if !knownMachine(s.cfg.Machines, req.Machine) {
		dto.BadRequestError(ctx, dto.MsgUnknownMachine)
		return
	}

	startMin, err := booking.ClockMinutes(req.StartTime)
	if err != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", err))
		return
	}
	endMin, err := booking.ClockMinutes(req.EndTime)
	if err != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", err))
		return
	}
	if endMin <= startMin {
		dto.BadRequestError(ctx, dto.MsgEndBeforeStart)
		return
	}

	future, err := booking.IsFuture(req.Date, req.StartTime, s.cfg.OffsetHours, time.Now())
	if err != nil {
		dto.BadRequestError(ctx, fmt.Sprintf("%v", err))
		return
	}
	if !future {
		dto.BadRequestError(ctx, dto.MsgStartNotFuture)
		return
	}

	// Re-read current rows right before the overlap check. Without a
	// storage-level exclusion constraint two concurrent submissions can
	// still both pass; that race is accepted.
	existing, err := s.repo.ListByMachineDate(ctx.Request.Context(), req.Machine, req.Date)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read bookings for overlap check")
		dto.InternalServerError(ctx)
		return
	}
	for i := range existing {
		exStart, err := booking.ClockMinutes(existing[i].StartTime)
		if err != nil {
			continue
		}
		exEnd, err := booking.ClockMinutes(existing[i].EndTime)
		if err != nil {
			continue
		}
		if booking.Overlap(exStart, exEnd, startMin, endMin) {
			dto.ConflictError(ctx)
			return
		}
	}

	b := &model.Booking{
		ID:         uuid.NewString(),
		BookerName: req.BookerName,
		Phone:      req.Phone,
		Machine:    req.Machine,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		SessionID:  token,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.InsertBooking(ctx.Request.Context(), b); err != nil {
		s.log.Error().Err(err).Msg("failed to insert booking")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Str("booking_id", b.ID).
		Str("machine", b.Machine).
		Str("date", b.Date).
		Msg("booking created successfully")

	s.scheduleExpiry(b)

	if s.sms != nil {
		msg := notifier.BookingCreatedMessage(b.Machine, b.Date, b.StartTime, b.EndTime)
		if err := s.sms.Send(b.Phone, msg); err != nil {
			s.log.Warn().Err(err).Str("booking_id", b.ID).Msg("failed to send booking SMS")
		}
	}

	dto.SuccessCreatedResponse(ctx, dto.NewBookingResponse(b, token))
}

func (s *service) DeleteBooking(ctx *ginext.Context) {
	token, ok := session.FromRequest(ctx)
	if !ok {
		dto.UnauthorizedError(ctx)
		return
	}

	id := ctx.Param("id")

	// DELETE bodies are optional; an absent or malformed body means no
	// admin override.
	var req dto.DeleteBookingRequest
	_ = ctx.ShouldBindJSON(&req)

	b, err := s.repo.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrBookingNotFound) {
			dto.NotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking for deletion")
		dto.InternalServerError(ctx)
		return
	}

	if !req.IsAdmin && b.SessionID != token {
		dto.ForbiddenError(ctx)
		return
	}

	if err := s.repo.DeleteBookings(ctx.Request.Context(), []string{id}); err != nil {
		s.log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Str("booking_id", id).Bool("admin", req.IsAdmin).Msg("booking deleted")
	dto.SuccessResponse(ctx, dto.DeleteBookingResponse{Deleted: dto.NewBookingResponse(b, token)})
}

func (s *service) Cleanup(ctx *ginext.Context) {
	deleted, err := s.SweepExpired(ctx.Request.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("cleanup failed")
		dto.InternalServerError(ctx)
		return
	}

	message := "No expired bookings"
	if deleted > 0 {
		message = fmt.Sprintf("Removed %d expired booking(s)", deleted)
	}
	dto.SuccessResponse(ctx, dto.CleanupResponse{
		Success:      true,
		Message:      message,
		DeletedCount: deleted,
	})
}

// SweepExpired deletes every booking whose end instant is past the grace
// window. Repeated invocation with no newly-expired rows deletes nothing.
func (s *service) SweepExpired(ctx context.Context) (int, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list bookings for sweep: %w", err)
	}

	now := time.Now()
	var expired []string
	for i := range bookings {
		if booking.IsExpired(bookings[i].Date, bookings[i].EndTime, s.cfg.OffsetHours, s.cfg.Grace, now) {
			expired = append(expired, bookings[i].ID)
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	if err := s.repo.DeleteBookings(ctx, expired); err != nil {
		return 0, fmt.Errorf("failed to delete expired bookings: %w", err)
	}

	s.log.Info().Int("count", len(expired)).Msg("expired bookings removed")
	return len(expired), nil
}

func (s *service) scheduleExpiry(b *model.Booking) {
	if s.rbt == nil {
		return
	}

	end, err := booking.Instant(b.Date, b.EndTime, s.cfg.OffsetHours)
	if err != nil {
		s.log.Error().Err(err).Str("booking_id", b.ID).Msg("failed to compute expiry instant")
		return
	}

	msg := dto.CleanupMessage{
		BookingID: b.ID,
		ExpireAt:  end.Add(s.cfg.Grace),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal cleanup message")
		return
	}

	delaySeconds := int(time.Until(msg.ExpireAt).Seconds()) + 1
	if delaySeconds < 0 {
		delaySeconds = 0
	}
	if err := s.rbt.Publish(payload, delaySeconds); err != nil {
		s.log.Warn().Err(err).Str("booking_id", b.ID).Msg("failed to publish cleanup message to RabbitMQ")
	}
}

func knownMachine(machines []string, machine string) bool {
	for _, m := range machines {
		if m == machine {
			return true
		}
	}
	return false
}
