// internal/db/venues.go
package db

import "context"

const listVenues = `
SELECT id, name, address
FROM venues
ORDER BY name
`

func (q *Queries) ListVenues(ctx context.Context) ([]Venue, error) {
	rows, err := q.db.QueryContext(ctx, listVenues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Address); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

const getVenueByID = `
SELECT id, name, address
FROM venues
WHERE id = ?
`

func (q *Queries) GetVenueByID(ctx context.Context, id int64) (Venue, error) {
	var v Venue
	err := q.db.QueryRowContext(ctx, getVenueByID, id).Scan(&v.ID, &v.Name, &v.Address)
	return v, err
}
