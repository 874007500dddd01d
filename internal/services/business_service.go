package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
)

var (
	ErrEventNotFound     = errors.New("calendar event not found")
	ErrLogisticsNotFound = errors.New("logistics record not found")
)

// BusinessService manages business account linkage and per-event logistics.
type BusinessService struct {
	db *gorm.DB
}

func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

// EnsureAccount creates the business account row if absent. Calling it any
// number of times yields exactly one row per user.
func (s *BusinessService) EnsureAccount(userID uuid.UUID) (*models.BusinessAccount, error) {
	return ensureBusinessAccount(s.db, userID)
}

// AccountForUser returns the linkage row, or nil when the user has none.
func (s *BusinessService) AccountForUser(userID uuid.UUID) (*models.BusinessAccount, error) {
	var acct models.BusinessAccount
	err := s.db.First(&acct, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

// ensureBusinessAccount is shared with the role transition transaction.
func ensureBusinessAccount(tx *gorm.DB, userID uuid.UUID) (*models.BusinessAccount, error) {
	var acct models.BusinessAccount
	err := tx.First(&acct, "user_id = ?", userID).Error
	if err == nil {
		return &acct, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	acct = models.BusinessAccount{ID: uuid.New(), UserID: userID}
	if err := tx.Create(&acct).Error; err != nil {
		// a concurrent ensure may have won the unique index; re-read
		var again models.BusinessAccount
		if e := tx.First(&again, "user_id = ?", userID).Error; e == nil {
			return &again, nil
		}
		return nil, fmt.Errorf("failed to create business account: %w", err)
	}
	return &acct, nil
}

func (s *BusinessService) eventExists(eventID uuid.UUID) error {
	var ev models.CalendarEvent
	if err := s.db.Select("id").First(&ev, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// Logistics returns all logistics records attached to an event.
func (s *BusinessService) Logistics(actor Actor, eventID uuid.UUID) (*dto.LogisticsResponse, error) {
	if !actor.Can(permissions.BusinessEvents) {
		return nil, ErrNotAuthorized
	}
	if err := s.eventExists(eventID); err != nil {
		return nil, err
	}

	resp := &dto.LogisticsResponse{}
	if err := s.db.Where("event_id = ?", eventID).Order("depart_at ASC").Find(&resp.Travel).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("event_id = ?", eventID).Order("check_in ASC").Find(&resp.Hotels).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("event_id = ?", eventID).Order("pickup_at ASC").Find(&resp.Transport).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("event_id = ?", eventID).Order("name ASC").Find(&resp.Contacts).Error; err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *BusinessService) AddTravel(actor Actor, eventID uuid.UUID, req *dto.TravelRequest) (*models.EventTravel, error) {
	if !actor.Can(permissions.BusinessEvents) {
		return nil, ErrNotAuthorized
	}
	if err := s.eventExists(eventID); err != nil {
		return nil, err
	}

	travel := models.EventTravel{
		ID:            uuid.New(),
		EventID:       eventID,
		Airline:       req.Airline,
		FlightNumber:  req.FlightNumber,
		DepartAirport: req.DepartAirport,
		ArriveAirport: req.ArriveAirport,
		DepartAt:      parseTimestamp(req.DepartAt),
		ArriveAt:      parseTimestamp(req.ArriveAt),
		Notes:         req.Notes,
	}
	if err := s.db.Create(&travel).Error; err != nil {
		return nil, fmt.Errorf("failed to create travel record: %w", err)
	}
	return &travel, nil
}

func (s *BusinessService) AddHotel(actor Actor, eventID uuid.UUID, req *dto.HotelRequest) (*models.EventHotel, error) {
	if !actor.Can(permissions.BusinessEvents) {
		return nil, ErrNotAuthorized
	}
	if err := s.eventExists(eventID); err != nil {
		return nil, err
	}

	hotel := models.EventHotel{
		ID:               uuid.New(),
		EventID:          eventID,
		HotelName:        req.HotelName,
		Address:          req.Address,
		CheckIn:          parseDate(req.CheckIn),
		CheckOut:         parseDate(req.CheckOut),
		ConfirmationCode: req.ConfirmationCode,
		Notes:            req.Notes,
	}
	if err := s.db.Create(&hotel).Error; err != nil {
		return nil, fmt.Errorf("failed to create hotel record: %w", err)
	}
	return &hotel, nil
}

func (s *BusinessService) AddTransport(actor Actor, eventID uuid.UUID, req *dto.TransportRequest) (*models.EventTransport, error) {
	if !actor.Can(permissions.BusinessEvents) {
		return nil, ErrNotAuthorized
	}
	if err := s.eventExists(eventID); err != nil {
		return nil, err
	}

	transport := models.EventTransport{
		ID:              uuid.New(),
		EventID:         eventID,
		Kind:            req.Kind,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupAt:        parseTimestamp(req.PickupAt),
		Notes:           req.Notes,
	}
	if err := s.db.Create(&transport).Error; err != nil {
		return nil, fmt.Errorf("failed to create transport record: %w", err)
	}
	return &transport, nil
}

func (s *BusinessService) AddContact(actor Actor, eventID uuid.UUID, req *dto.ContactRequest) (*models.EventContact, error) {
	if !actor.Can(permissions.BusinessEvents) {
		return nil, ErrNotAuthorized
	}
	if req.Name == "" {
		return nil, errors.New("contact name is required")
	}
	if err := s.eventExists(eventID); err != nil {
		return nil, err
	}

	contact := models.EventContact{
		ID:        uuid.New(),
		EventID:   eventID,
		Name:      req.Name,
		RoleTitle: req.RoleTitle,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
	}
	if err := s.db.Create(&contact).Error; err != nil {
		return nil, fmt.Errorf("failed to create contact record: %w", err)
	}
	return &contact, nil
}

// DeleteLogistics removes one logistics record of the given kind.
func (s *BusinessService) DeleteLogistics(actor Actor, kind string, id uuid.UUID) error {
	if !actor.Can(permissions.BusinessEvents) {
		return ErrNotAuthorized
	}

	var model interface{}
	switch kind {
	case "travel":
		model = &models.EventTravel{}
	case "hotel":
		model = &models.EventHotel{}
	case "transport":
		model = &models.EventTransport{}
	case "contact":
		model = &models.EventContact{}
	default:
		return ErrLogisticsNotFound
	}

	res := s.db.Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLogisticsNotFound
	}
	return nil
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
