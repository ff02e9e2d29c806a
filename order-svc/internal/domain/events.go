package domain

import "time"

const (
	TableOrders = "orders"
)

type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
	OpDelete ChangeOp = "DELETE"
	// OpResync is emitted locally when notifications may have been lost.
	// Consumers must treat it as "everything changed".
	OpResync ChangeOp = "RESYNC"
)

// ChangeEvent is a row change on a watched table. It only says which row
// moved; readers re-fetch the row instead of trusting these fields.
type ChangeEvent struct {
	Table      string    `json:"table"`
	Op         ChangeOp  `json:"op"`
	OrderID    string    `json:"id"`
	Status     Status    `json:"status,omitempty"`
	IsPaid     bool      `json:"is_paid"`
	IsArchived bool      `json:"is_archived"`
	At         time.Time `json:"at"`
}

func ResyncEvent() ChangeEvent {
	return ChangeEvent{Table: TableOrders, Op: OpResync, At: time.Now()}
}

func (e ChangeEvent) IsResync() bool {
	return e.Op == OpResync
}
