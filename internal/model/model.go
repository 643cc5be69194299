package model

import "time"

type Booking struct {
	ID         string    `db:"id" json:"id"`
	BookerName string    `db:"booker_name" json:"booker_name"`
	Phone      string    `db:"phone" json:"phone"`
	Machine    string    `db:"machine" json:"machine"`
	Date       string    `db:"date" json:"date"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	SessionID  string    `db:"session_id" json:"session_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
