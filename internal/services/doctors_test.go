package services

import (
	"context"
	"testing"

	"github.com/harentsoaR/smile-care-api/internal/apperrors"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"github.com/harentsoaR/smile-care-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDoctorService_Lifecycle(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewDoctorService(store.DoctorStore())
	ctx := context.Background()

	id, err := svc.Create(ctx, &models.Doctor{Name: "Dr. Rahman", Email: "dr@x.com", Specialty: "Orthodontics"})
	require.NoError(t, err)

	doctors, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, id, doctors[0].ID)

	require.NoError(t, svc.Delete(ctx, id.Hex()))

	err = svc.Delete(ctx, id.Hex())
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	err = svc.Delete(ctx, "bad")
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))

	err = svc.Delete(ctx, primitive.NewObjectID().Hex())
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}
