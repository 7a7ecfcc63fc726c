package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindOrCreateClient matches on phone, then email.
func (r *ClientGormRepository) FindOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client

	q := r.db.WithContext(ctx)
	var err error
	switch {
	case phone != "":
		err = q.Where("phone = ?", phone).First(&client).Error
	case email != "":
		err = q.Where("LOWER(email) = LOWER(?)", email).First(&client).Error
	default:
		return nil, gorm.ErrRecordNotFound
	}

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
		Tags:  []string{models.TagNew},
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *ClientGormRepository) SaveClientStats(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).
		Model(c).
		Select("total_visits", "total_spent", "no_show_count", "last_visit", "tags").
		Updates(c).Error
}

func (r *ClientGormRepository) LatestCompletedDate(
	ctx context.Context,
	clientID uint,
	excludeID uint,
) (*string, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Select("date").
		Where(
			"client_id = ? AND status = ? AND id <> ?",
			clientID, string(domain.StatusCompleted), excludeID,
		).
		Order("date DESC").
		First(&ap).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &ap.Date, nil
}

// Compile-time check
var _ domain.ClientRepository = (*ClientGormRepository)(nil)
