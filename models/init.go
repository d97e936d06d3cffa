package models

import (
	"cardserver/db"
)

func Init() {
	db.Instance.AutoMigrate(&SystemConfig{})
	db.Instance.AutoMigrate(&Field{})
	db.Instance.AutoMigrate(&Generation{})
}
