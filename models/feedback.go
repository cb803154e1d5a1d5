package models

// Feedback kullanıcının ayarlar ekranından gönderdiği geri bildirim.
type Feedback struct {
	BaseModel
	OwnerEmail string `gorm:"type:varchar(320);not null;index" json:"owner_email"`
	Message    string `gorm:"type:text;not null" json:"message"`
}

// TableName tablo adı.
func (Feedback) TableName() string { return "feedbacks" }
