package constants

// NATS Subjects
const (
	// Booking events
	SubjectBookingRequested = "booking.requested"
	SubjectBookingConfirmed = "booking.confirmed"
	SubjectBookingCancelled = "booking.cancelled"
)
