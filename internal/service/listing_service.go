package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/tutor_market/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateListingInput данные нового объявления.
// Поля ученика заполняются для student_request, поля репетитора для tutor_profile.
type CreateListingInput struct {
	Type          model.ListingType `validate:"required,oneof=student_request tutor_profile"`
	OwnerID       string            `validate:"required,max=64"`
	SubjectID     int64             `validate:"gte=0"`
	SubjectName   string            `validate:"required,max=100"`
	Address       string            `validate:"max=255"`
	Latitude      float64           `validate:"latitude"`
	Longitude     float64           `validate:"longitude"`
	AvailableTime string            `validate:"max=255"`

	ChildName     string      `validate:"max=100"`
	ChildGrade    string      `validate:"max=50"`
	HourlyRateMin model.Money `validate:"gte=0"`
	HourlyRateMax model.Money `validate:"gte=0,gtefield=HourlyRateMin"`
	Requirements  string

	HourlyRate        model.Money `validate:"gte=0"`
	Description       string
	TargetGradeLevels string `validate:"max=255"`
}

// NearbyListing открытое объявление и расстояние до него
type NearbyListing struct {
	Listing    *model.Listing `json:"listing"`
	DistanceKm float64        `json:"distance_km"`
}

type ListingService struct {
	listingRepo ListingStore
	users       UserDirectory
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewListingService(listingRepo ListingStore, users UserDirectory, logger *zap.Logger) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		users:       users,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Create публикует объявление от имени владельца
func (s *ListingService) Create(ctx context.Context, in CreateListingInput) (*model.Listing, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	owner, err := s.users.GetByID(ctx, in.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if owner == nil {
		return nil, model.ErrUserNotFound
	}
	if !owner.IsActive() {
		return nil, model.ErrUserDisabled
	}

	listing := &model.Listing{
		Type:          in.Type,
		OwnerID:       in.OwnerID,
		SubjectID:     in.SubjectID,
		SubjectName:   in.SubjectName,
		Address:       in.Address,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		AvailableTime: in.AvailableTime,
		Status:        in.Type.OpenStatus(),
	}

	switch in.Type {
	case model.ListingTypeStudentRequest:
		listing.Request = &model.StudentRequestDetails{
			ChildName:     in.ChildName,
			ChildGrade:    in.ChildGrade,
			HourlyRateMin: in.HourlyRateMin,
			HourlyRateMax: in.HourlyRateMax,
			Requirements:  in.Requirements,
		}
	case model.ListingTypeTutorProfile:
		listing.Profile = &model.TutorProfileDetails{
			HourlyRate:        in.HourlyRate,
			Description:       in.Description,
			TargetGradeLevels: in.TargetGradeLevels,
		}
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("Listing created",
		zap.Int64("listing_id", listing.ID),
		zap.String("type", string(listing.Type)),
		zap.String("owner_id", listing.OwnerID),
		zap.String("subject", listing.SubjectName),
	)

	return listing, nil
}

// GetByID получает объявление
func (s *ListingService) GetByID(ctx context.Context, id int64, listingType model.ListingType) (*model.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id, listingType)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, model.ErrListingNotFound
	}
	return listing, nil
}

// Nearby ищет открытые объявления в радиусе radiusKm, ближние первыми
func (s *ListingService) Nearby(ctx context.Context, listingType model.ListingType, lat, lon, radiusKm float64, subjectName string) ([]NearbyListing, error) {
	if !listingType.Valid() {
		return nil, model.ErrInvalidListingType
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", model.ErrValidation)
	}

	listings, err := s.listingRepo.ListOpen(ctx, listingType, subjectName)
	if err != nil {
		return nil, err
	}

	result := make([]NearbyListing, 0, len(listings))
	for _, l := range listings {
		d := model.DistanceKm(lat, lon, l.Latitude, l.Longitude)
		if d <= radiusKm {
			result = append(result, NearbyListing{Listing: l, DistanceKm: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	return result, nil
}

// validationError переводит ошибки validator в ErrValidation с перечнем полей
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", model.ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: invalid fields: %s", model.ErrValidation, strings.Join(fields, ", "))
}
