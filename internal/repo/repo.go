package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	supa "github.com/supabase-community/supabase-go"

	"github.com/KantapongChamnankit/Booking/internal/model"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	ListByMachineDate(ctx context.Context, machine, date string) ([]model.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*model.Booking, error)
	InsertBooking(ctx context.Context, b *model.Booking) error
	DeleteBookings(ctx context.Context, ids []string) error
}

type repository struct {
	client *supa.Client
	table  string
	log    *zerolog.Logger
}

func NewSupabaseClient(url, key string) (*supa.Client, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}
	return supa.NewClient(url, key, nil)
}

func NewRepository(client *supa.Client, table string, log *zerolog.Logger) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("supabase client cannot be nil")
	}
	if table == "" {
		table = "bookings"
	}
	return &repository{client: client, table: table, log: log}, nil
}

func (r *repository) ListBookings(ctx context.Context) ([]model.Booking, error) {
	data, _, err := r.client.From(r.table).
		Select("*", "", false).
		Order("date", nil).
		Order("start_time", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) ListByMachineDate(ctx context.Context, machine, date string) ([]model.Booking, error) {
	data, _, err := r.client.From(r.table).
		Select("*", "", false).
		Eq("machine", machine).
		Eq("date", date).
		Order("start_time", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s on %s: %w", machine, date, err)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id string) (*model.Booking, error) {
	data, _, err := r.client.From(r.table).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %s: %w", id, err)
	}

	var bookings []model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return &bookings[0], nil
}

func (r *repository) InsertBooking(ctx context.Context, b *model.Booking) error {
	row := map[string]interface{}{
		"id":          b.ID,
		"booker_name": b.BookerName,
		"phone":       b.Phone,
		"machine":     b.Machine,
		"date":        b.Date,
		"start_time":  b.StartTime,
		"end_time":    b.EndTime,
		"session_id":  b.SessionID,
		"created_at":  b.CreatedAt,
	}

	_, _, err := r.client.From(r.table).
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

func (r *repository) DeleteBookings(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	_, _, err := r.client.From(r.table).
		Delete("", "").
		In("id", ids).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete bookings: %w", err)
	}
	return nil
}
