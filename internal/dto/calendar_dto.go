package dto

import (
	"github.com/google/uuid"

	"github.com/showcall/showcall-backend/internal/models"
)

// EventRequest carries a calendar event create/update payload. Dates use
// YYYY-MM-DD, times HH:MM.
type EventRequest struct {
	TalentID        *uuid.UUID `json:"talent_id"`
	EventTitle      string     `json:"event_title"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	AllDay          bool       `json:"all_day"`
	Status          string     `json:"status"`
	VenueName       string     `json:"venue_name"`
	LocationCity    string     `json:"location_city"`
	LocationState   string     `json:"location_state"`
	LocationCountry string     `json:"location_country"`
	NotesPublic     string     `json:"notes_public"`
	URL             string     `json:"url"`
}

type LogisticsResponse struct {
	Travel    []models.EventTravel    `json:"travel"`
	Hotels    []models.EventHotel     `json:"hotels"`
	Transport []models.EventTransport `json:"transport"`
	Contacts  []models.EventContact   `json:"contacts"`
}

type TravelRequest struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flight_number"`
	DepartAirport string `json:"depart_airport"`
	ArriveAirport string `json:"arrive_airport"`
	DepartAt      string `json:"depart_at"` // RFC 3339
	ArriveAt      string `json:"arrive_at"`
	Notes         string `json:"notes"`
}

type HotelRequest struct {
	HotelName        string `json:"hotel_name"`
	Address          string `json:"address"`
	CheckIn          string `json:"check_in"` // YYYY-MM-DD
	CheckOut         string `json:"check_out"`
	ConfirmationCode string `json:"confirmation_code"`
	Notes            string `json:"notes"`
}

type TransportRequest struct {
	Kind            string `json:"kind"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PickupAt        string `json:"pickup_at"` // RFC 3339
	Notes           string `json:"notes"`
}

type ContactRequest struct {
	Name      string `json:"name"`
	RoleTitle string `json:"role_title"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}
