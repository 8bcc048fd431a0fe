// Package queries contains the read-side operations: cart contents, order
// history and details, courier listings and the delivery chat lookup. Query
// handlers read the database directly with raw SQL instead of going through
// the aggregates; responses are flat DTOs ready for serialization.
package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderSummary is one row of an order listing. Identifier and money fields are
// strings so the summary marshals to JSON without custom codecs; that also
// keeps the cached payload format trivial.
type OrderSummary struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	Total          string     `json:"total"`
	Mode           string     `json:"mode"`
	ReceiverName   string     `json:"receiver_name"`
	Address        string     `json:"address,omitempty"`
	IsFreeDelivery bool       `json:"is_free_delivery"`
	Rating         *int       `json:"rating,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
}

const orderSummaryColumns = `
	id,
	status,
	total,
	mode,
	receiver_name,
	address,
	is_free_delivery,
	rating,
	created_at,
	delivered_at
`

func scanOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var summary OrderSummary
		var id uuid.UUID
		var rating sql.NullInt64
		var deliveredAt sql.NullTime

		err := rows.Scan(
			&id,
			&summary.Status,
			&summary.Total,
			&summary.Mode,
			&summary.ReceiverName,
			&summary.Address,
			&summary.IsFreeDelivery,
			&rating,
			&summary.CreatedAt,
			&deliveredAt,
		)
		if err != nil {
			return nil, err
		}

		summary.ID = id.String()
		if rating.Valid {
			value := int(rating.Int64)
			summary.Rating = &value
		}
		if deliveredAt.Valid {
			summary.DeliveredAt = &deliveredAt.Time
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func queryOrderSummaries(db *gorm.DB, query string, args ...any) ([]OrderSummary, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
