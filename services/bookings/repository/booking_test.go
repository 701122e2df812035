package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/bookings/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingColumns = []string{
	"booking_id", "ride_id", "user_id", "seats", "total_price",
	"status", "hold_token_id", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		BookingID:   uuid.New(),
		RideID:      uuid.New(),
		UserID:      uuid.New(),
		Seats:       2,
		TotalPrice:  300000,
		Status:      models.BookingStatusPending,
		HoldTokenID: uuid.New(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func bookingRow(b *models.Booking) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		b.BookingID, b.RideID, b.UserID, b.Seats, b.TotalPrice,
		b.Status, b.HoldTokenID, b.CreatedAt, b.UpdatedAt,
	)
}

func TestCreateBooking_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	booking := sampleBooking()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(
			booking.BookingID, booking.RideID, booking.UserID,
			booking.Seats, booking.TotalPrice, booking.Status,
			booking.HoldTokenID, booking.CreatedAt, booking.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.CreateBooking(context.Background(), booking)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBooking_Found(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	booking := sampleBooking()

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs(booking.BookingID).
		WillReturnRows(bookingRow(booking))

	got, err := repo.GetBooking(context.Background(), booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, booking.BookingID, got.BookingID)
	assert.Equal(t, booking.HoldTokenID, got.HoldTokenID)
	assert.Equal(t, models.BookingStatusPending, got.Status)
}

func TestGetBooking_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	bookingID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetBooking(context.Background(), bookingID)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestUpdateBookingStatus_FromPending(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	bookingID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = $2 WHERE booking_id = $3 AND status IN ($4)")).
		WithArgs(models.BookingStatusConfirmed, sqlmock.AnyArg(), bookingID, models.BookingStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateBookingStatus(context.Background(), bookingID,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusConfirmed)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatus_MultipleSourceStates(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	bookingID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("AND status IN ($4, $5)")).
		WithArgs(models.BookingStatusCancelled, sqlmock.AnyArg(), bookingID,
			models.BookingStatusPending, models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateBookingStatus(context.Background(), bookingID,
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.BookingStatusCancelled)
	assert.NoError(t, err)
}

func TestUpdateBookingStatus_InvalidTransition(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	booking := sampleBooking()
	booking.Status = models.BookingStatusCancelled

	// Guard matches no row; the follow-up read finds the booking so the
	// failure is an invalid transition, not a missing record
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1")).
		WithArgs(models.BookingStatusConfirmed, sqlmock.AnyArg(), booking.BookingID, models.BookingStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs(booking.BookingID).
		WillReturnRows(bookingRow(booking))

	err := repo.UpdateBookingStatus(context.Background(), booking.BookingID,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	bookingID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1")).
		WithArgs(models.BookingStatusCancelled, sqlmock.AnyArg(), bookingID, models.BookingStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	err := repo.UpdateBookingStatus(context.Background(), bookingID,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)
}

func TestListByStatus_ReturnsOpenBookings(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	pending := sampleBooking()
	confirmed := sampleBooking()
	confirmed.Status = models.BookingStatusConfirmed

	rows := sqlmock.NewRows(bookingColumns).
		AddRow(
			pending.BookingID, pending.RideID, pending.UserID, pending.Seats,
			pending.TotalPrice, pending.Status, pending.HoldTokenID,
			pending.CreatedAt, pending.UpdatedAt,
		).
		AddRow(
			confirmed.BookingID, confirmed.RideID, confirmed.UserID, confirmed.Seats,
			confirmed.TotalPrice, confirmed.Status, confirmed.HoldTokenID,
			confirmed.CreatedAt, confirmed.UpdatedAt,
		)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status IN ($1, $2)")).
		WithArgs(models.BookingStatusPending, models.BookingStatusConfirmed).
		WillReturnRows(rows)

	got, err := repo.ListByStatus(context.Background(),
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, pending.BookingID, got[0].BookingID)
	assert.Equal(t, models.BookingStatusConfirmed, got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByStatus_EmptyLedger(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status IN ($1)")).
		WithArgs(models.BookingStatusPending).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	got, err := repo.ListByStatus(context.Background(),
		[]models.BookingStatus{models.BookingStatusPending})
	require.NoError(t, err)
	assert.Empty(t, got)
}
