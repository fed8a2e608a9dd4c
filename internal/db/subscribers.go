// internal/db/subscribers.go
package db

import "context"

const createSubscriber = `
INSERT INTO subscribers (email, confirmed)
VALUES (?, 0)
ON CONFLICT (email) DO NOTHING
`

func (q *Queries) CreateSubscriber(ctx context.Context, email string) error {
	_, err := q.db.ExecContext(ctx, createSubscriber, email)
	return err
}

const confirmSubscriber = `
UPDATE subscribers SET confirmed = 1 WHERE email = ?
`

func (q *Queries) ConfirmSubscriber(ctx context.Context, email string) error {
	_, err := q.db.ExecContext(ctx, confirmSubscriber, email)
	return err
}

const getSubscriberByEmail = `
SELECT id, email, confirmed FROM subscribers WHERE email = ?
`

func (q *Queries) GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error) {
	var s Subscriber
	err := q.db.QueryRowContext(ctx, getSubscriberByEmail, email).
		Scan(&s.ID, &s.Email, &s.Confirmed)
	return s, err
}

const listConfirmedSubscribers = `
SELECT id, email, confirmed FROM subscribers WHERE confirmed = 1 ORDER BY email
`

func (q *Queries) ListConfirmedSubscribers(ctx context.Context) ([]Subscriber, error) {
	rows, err := q.db.QueryContext(ctx, listConfirmedSubscribers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Confirmed); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

const deleteSubscriber = `DELETE FROM subscribers WHERE email = ?`

func (q *Queries) DeleteSubscriber(ctx context.Context, email string) error {
	_, err := q.db.ExecContext(ctx, deleteSubscriber, email)
	return err
}
