package repository

import "database/sql"

// sqlNullString is sql.NullString with a pointer accessor, which keeps
// multi-column scans readable.
type sqlNullString struct{ sql.NullString }

func (n sqlNullString) ptr() *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}
