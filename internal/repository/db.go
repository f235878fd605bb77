package repository

// scanner is the common subset of *sql.Row and *sql.Rows the scan helpers
// need.
type scanner interface {
	Scan(dest ...any) error
}
