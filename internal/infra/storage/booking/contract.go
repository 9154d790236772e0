package booking

import "github.com/m04kA/AiroFix-BookingService/pkg/dbmetrics"

// DBExecutor реализуется *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
