package model

import (
	"time"
)

// Location is a serviceable city. Main cities get the shorter home delivery estimate.
type Location struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	City       string `gorm:"size:100;uniqueIndex;not null" json:"city"`
	ZipCode    string `gorm:"size:10" json:"zip_code"`
	IsMainCity bool   `gorm:"not null;default:false" json:"is_main_city"`
}

func (Location) TableName() string {
	return "locations"
}

type Address struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HouseNumber int       `gorm:"not null" json:"house_number"`
	Street      string    `gorm:"size:200;not null" json:"street"`
	City        string    `gorm:"size:100;not null" json:"city"`
	State       string    `gorm:"size:100" json:"state"`
	LocationID  uint      `gorm:"not null;index" json:"location_id"`
	CreatedAt   time.Time `json:"created_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (Address) TableName() string {
	return "addresses"
}
