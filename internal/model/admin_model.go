package model

type Admin struct {
	AdminId     int64  `gorm:"column:admin_id;primaryKey;autoIncrement:false"`
	Username    string `gorm:"type:varchar(255)"`
	FirstName   string `gorm:"type:varchar(255)"`
	LastName    string `gorm:"type:varchar(255)"`
	IsSuperuser bool   `gorm:"not null;default:false"`
}

func (Admin) TableName() string {
	return "admins"
}
