package database

import (
	"tixly/internal/merchant"
	"tixly/internal/notifications"
	"tixly/internal/profile"
	"tixly/internal/tickets"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&profile.Profile{},
		&tickets.Event{},
		&tickets.Ticket{},
		&notifications.Notification{},
		&merchant.Transaction{},
		&merchant.QRCode{},
	)
}
