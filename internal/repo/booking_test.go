package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/ybfstudio/booking-api/internal/domain"
	"github.com/ybfstudio/booking-api/internal/repo"
)

// bookingFixture returns a BookingInput ready for insertion against the given
// serviceID.
func bookingFixture(serviceID uuid.UUID) domain.BookingInput {
	return domain.BookingInput{
		ServiceID:           serviceID,
		CustomerName:        "Alice",
		CustomerEmail:       "alice@example.com",
		ProjectName:         "My Track",
		ProjectDescription:  "Two-verse demo, needs vocal polish",
		SpecialInstructions: "Keep the low end tight",
		PricePaid:           50,
	}
}

func TestBookingRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	bookings := repo.NewBookingRepo(tx)

	serviceID := mustInsertService(t, tx, "Stereo Mix", "active", false)
	input := bookingFixture(serviceID)

	got, err := bookings.Create(context.Background(), input, nil)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.UUID{}, got.ID, "ID should be DB-generated UUID")
	assert.Nil(t, got.UserID, "UserID should be nil for anonymous bookings")
	assert.Equal(t, serviceID, got.ServiceID)
	assert.Equal(t, input.CustomerName, got.CustomerName)
	assert.Equal(t, input.CustomerEmail, got.CustomerEmail)
	assert.Equal(t, input.ProjectName, got.ProjectName)
	assert.Equal(t, input.ProjectDescription, got.ProjectDescription)
	assert.Equal(t, input.SpecialInstructions, got.SpecialInstructions)
	assert.InDelta(t, input.PricePaid, got.PricePaid, 0.001)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestBookingRepo_Create_WithUserID(t *testing.T) {
	tx := newTestTx(t)
	bookings := repo.NewBookingRepo(tx)

	serviceID := mustInsertService(t, tx, "Stereo Mix", "active", false)
	userID := "user-42"

	got, err := bookings.Create(context.Background(), bookingFixture(serviceID), &userID)

	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, "user-42", *got.UserID)
}

// TestBookingRepo_Create_NoDeduplication pins the accepted behavior that
// repeated identical submissions create distinct rows.
func TestBookingRepo_Create_NoDeduplication(t *testing.T) {
	tx := newTestTx(t)
	bookings := repo.NewBookingRepo(tx)

	serviceID := mustInsertService(t, tx, "Stereo Mix", "active", false)
	input := bookingFixture(serviceID)

	first, err := bookings.Create(context.Background(), input, nil)
	require.NoError(t, err)
	second, err := bookings.Create(context.Background(), input, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "identical submissions create distinct records")
}

func TestBookingRepo_Create_UnknownServiceFails(t *testing.T) {
	tx := newTestTx(t)
	bookings := repo.NewBookingRepo(tx)

	// The FK constraint rejects inserts against a nonexistent service.
	_, err := bookings.Create(context.Background(), bookingFixture(uuid.New()), nil)

	assert.Error(t, err)
}
