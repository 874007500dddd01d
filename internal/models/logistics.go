package models

import (
	"time"

	"github.com/google/uuid"
)

// Business event logistics, all keyed to a calendar event.

type EventTravel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Airline       string     `gorm:"size:100" json:"airline"`
	FlightNumber  string     `gorm:"size:20" json:"flight_number"`
	DepartAirport string     `gorm:"size:10" json:"depart_airport"`
	ArriveAirport string     `gorm:"size:10" json:"arrive_airport"`
	DepartAt      *time.Time `json:"depart_at"`
	ArriveAt      *time.Time `json:"arrive_at"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type EventHotel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	HotelName        string     `gorm:"size:200" json:"hotel_name"`
	Address          string     `gorm:"size:400" json:"address"`
	CheckIn          *time.Time `gorm:"type:date" json:"check_in"`
	CheckOut         *time.Time `gorm:"type:date" json:"check_out"`
	ConfirmationCode string     `gorm:"size:50" json:"confirmation_code"`
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type EventTransport struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EventID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"event_id"`
	Kind            string     `gorm:"size:30" json:"kind"`
	PickupLocation  string     `gorm:"size:300" json:"pickup_location"`
	DropoffLocation string     `gorm:"size:300" json:"dropoff_location"`
	PickupAt        *time.Time `json:"pickup_at"`
	Notes           string     `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type EventContact struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	RoleTitle string    `gorm:"size:100" json:"role_title"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
