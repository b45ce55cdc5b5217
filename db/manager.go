package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"devforum/config"
	"devforum/models"
)

var ORM *gorm.DB

// ConnectDB открывает базу для слота сессии. По умолчанию sqlite-файл
// (локальный аналог localStorage), postgres - для общего развертывания.
func ConnectDB() (err error) {
	if ORM != nil {
		log.Println("ORM is already initialized")
		return nil
	}

	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}

	driver := config.AppConfig.Database.Driver
	dsn := config.AppConfig.Database.DSN
	if dsn == "" {
		dsn = "devforum.db"
	}

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
			NoLowerCase:   false,
		},
	})
	if err != nil {
		return err
	}

	if err = database.AutoMigrate(&models.SessionRecord{}); err != nil {
		return err
	}

	ORM = database
	return nil
}
