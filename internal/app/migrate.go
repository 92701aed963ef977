package app

import (
	"github.com/shkhalid/maxerp/internal/balance"
	"github.com/shkhalid/maxerp/internal/leave"
	"github.com/shkhalid/maxerp/internal/user"

	"gorm.io/gorm"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const outboxIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_next_retry
ON outbox_events (status, next_retry_at)`

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&balance.LeaveBalance{},
		&leave.LeaveRequest{},
	); err != nil {
		return err
	}

	// Outbox rows are written with raw SQL, not a gorm model.
	if err := db.Exec(outboxTableDDL).Error; err != nil {
		return err
	}
	return db.Exec(outboxIndexDDL).Error
}
