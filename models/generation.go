package models

import (
	"cardserver/db"

	"github.com/google/uuid"
)

// Generation is the audit trail of one completed card generation. Rows are
// written once, after both sides rendered successfully, and never updated.
type Generation struct {
	ID             uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt      int64  `json:"created_at"`
	Token          string `gorm:"type:varchar(40);uniqueIndex" json:"token"`
	PersonName     string `gorm:"type:varchar(300)" json:"person_name"`
	PersonNumber   string `gorm:"type:varchar(100)" json:"person_number"`
	PhotoPath      string `gorm:"type:varchar(500)" json:"-"`
	PhotoThumbPath string `gorm:"type:varchar(500)" json:"-"`
	FrontPath      string `gorm:"type:varchar(500)" json:"-"`
	BackPath       string `gorm:"type:varchar(500)" json:"-"`
}

func NewGeneration(personName, personNumber string) Generation {
	return Generation{
		Token:        uuid.NewString(),
		PersonName:   personName,
		PersonNumber: personNumber,
	}
}

func (g *Generation) Create() error {
	return db.Instance.Create(g).Error
}

func GenerationByToken(token string) (Generation, error) {
	gen := Generation{}
	err := db.Instance.Where("token = ?", token).First(&gen).Error
	return gen, err
}

// LatestGenerations returns the history, most recent first.
func LatestGenerations(limit int) ([]Generation, error) {
	gens := []Generation{}
	err := db.Instance.Order("created_at DESC, id DESC").Limit(limit).Find(&gens).Error
	return gens, err
}

func CountGenerations() (count int64, err error) {
	err = db.Instance.Model(&Generation{}).Count(&count).Error
	return
}
