package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/harentsoaR/smile-care-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DoctorService struct {
	doctors DoctorStore
}

func NewDoctorService(doctors DoctorStore) *DoctorService {
	return &DoctorService{doctors: doctors}
}

func (s *DoctorService) Create(ctx context.Context, d *models.Doctor) (primitive.ObjectID, error) {
	d.ID = primitive.NilObjectID
	id, err := s.doctors.Insert(ctx, d)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create doctor: %w", err)
	}
	return id, nil
}

func (s *DoctorService) List(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.doctors.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *DoctorService) Delete(ctx context.Context, hexID string) error {
	id, err := parseID("doctor", hexID)
	if err != nil {
		return err
	}
	err = s.doctors.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("doctor")
	}
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}
