package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"

	"github.com/KantapongChamnankit/Booking/internal/model"
)

const (
	MsgInvalidJSON     = "Invalid JSON format"
	MsgMissingSession  = "Session required"
	MsgNotOwner        = "You can only delete your own bookings"
	MsgBookingNotFound = "Booking not found"
	MsgUnknownMachine  = "Unknown machine"
	MsgEndBeforeStart  = "End time must be after start time"
	MsgStartNotFuture  = "Start time must be in the future"
	MsgSlotConflict    = "Time slot conflicts with an existing booking"
	MsgInternalError   = "Service is currently unavailable. Please try again later."
)

type CreateBookingRequest struct {
	BookerName string `json:"bookerName" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"required,thaiphone"`
	Machine    string `json:"machine" validate:"required"`
	Date       string `json:"date" validate:"required,civildate"`
	StartTime  string `json:"startTime" validate:"required,clock"`
	EndTime    string `json:"endTime" validate:"required,clock"`
}

type DeleteBookingRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	BookerName string    `json:"bookerName"`
	Phone      string    `json:"phone"`
	Machine    string    `json:"machine"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	CreatedAt  time.Time `json:"createdAt"`
	IsOwner    bool      `json:"isOwner"`
}

type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	Count     int               `json:"count"`
	SessionID string            `json:"sessionId"`
}

type DeleteBookingResponse struct {
	Deleted BookingResponse `json:"deleted"`
}

type CleanupResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// CleanupMessage is the delayed RabbitMQ payload published when a booking is
// created, due once the booking's grace window has elapsed.
type CleanupMessage struct {
	BookingID string    `json:"booking_id"`
	ExpireAt  time.Time `json:"expire_at"`
}

func NewBookingResponse(b *model.Booking, sessionID string) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		BookerName: b.BookerName,
		Phone:      b.Phone,
		Machine:    b.Machine,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		CreatedAt:  b.CreatedAt,
		IsOwner:    b.SessionID == sessionID,
	}
}

func BadRequestError(c *ginext.Context, desc string) {
	c.JSON(400, ErrorResponse{Error: desc})
}

func UnauthorizedError(c *ginext.Context) {
	c.JSON(401, ErrorResponse{Error: MsgMissingSession})
}

func ForbiddenError(c *ginext.Context) {
	c.JSON(403, ErrorResponse{Error: MsgNotOwner})
}

func NotFoundError(c *ginext.Context) {
	c.JSON(404, ErrorResponse{Error: MsgBookingNotFound})
}

func ConflictError(c *ginext.Context) {
	c.JSON(409, ErrorResponse{Error: MsgSlotConflict})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, ErrorResponse{Error: MsgInternalError})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, data)
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, data)
}
