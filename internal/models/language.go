package models

import "time"

type Language struct {
	ID     uint    `json:"id" gorm:"primaryKey"`
	Name   string  `json:"name" gorm:"uniqueIndex;not null;size:80"`
	ImgURL *string `json:"img_url" gorm:"column:img_url;size:2048"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Language) TableName() string {
	return "languages"
}
