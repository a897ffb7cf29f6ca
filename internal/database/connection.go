package database

import (
	"errors"
	"os"

	"github.com/thereayou/studybud/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the services layer relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Room{},
		&models.Message{},
		&models.Poll{},
		&models.PollOption{},
		&models.EmojiReaction{},
		&models.RoomJoinRequest{},
	)
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
