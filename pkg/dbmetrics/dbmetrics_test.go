package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AiroFix-BookingService/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("SELECT id FROM bookings"))
	assert.Equal(t, "update", Operation("  UPDATE bookings SET status = $1"))
	assert.Equal(t, "unknown", Operation(""))
}

func TestDB_ObservesQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("test", reg)
	wrapped := Wrap(db, m)

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))

	_, err = wrapped.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "completed")
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "db_query_duration_seconds" {
			found = true
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, uint64(1), f.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
