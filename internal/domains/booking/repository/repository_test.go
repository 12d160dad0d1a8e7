package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayengine/internal/domains/booking/repository"
	"stayengine/shared/daterange"
)

func TestFilterActiveOverlapping(t *testing.T) {
	stay, err := daterange.Parse("2024-06-12", "2024-06-15")
	require.NoError(t, err)

	filter := repository.FilterActiveOverlapping("property-1", stay, "")
	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(rental_bookings.property_id = :property_id AND rental_bookings.status IN (:holding_status_0, :holding_status_1, :holding_status_2) AND rental_bookings.check_in_date < :range_end AND rental_bookings.check_out_date > :range_start)",
		where,
	)
	assert.Equal(t, "property-1", args["property_id"])
	assert.Equal(t, "pending", args["holding_status_0"])
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), args["range_end"])
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), args["range_start"])
	assert.NotContains(t, args, "exclude_id")
}

func TestFilterActiveOverlapping_ExcludesBooking(t *testing.T) {
	stay, err := daterange.Parse("2024-06-10", "2024-06-13")
	require.NoError(t, err)

	filter := repository.FilterActiveOverlapping("property-1", stay, "booking-1")
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "rental_bookings.id != :exclude_id")
	assert.Equal(t, "booking-1", args["exclude_id"])
}
