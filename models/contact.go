package models

import "time"

// Contact yerel kullanıcının başka bir hesaba ait karta işaretçisi.
// Kopya değildir; görüntülenecek veri okuma anında referans verilen karttan çözülür.
// (OwnerEmail, DonorCardID) çifti benzersizdir.
type Contact struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerEmail  string    `gorm:"type:varchar(320);not null;uniqueIndex:idx_contact_owner_card,priority:1" json:"owner_email"`
	DonorEmail  string    `gorm:"type:varchar(320);not null" json:"donor_email"`
	DonorCardID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_contact_owner_card,priority:2" json:"donor_card_id"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// TableName tablo adı.
func (Contact) TableName() string { return "contacts" }

// ContactCard çözülmüş kişi: referans ve işaret ettiği kart.
type ContactCard struct {
	Contact Contact      `json:"contact"`
	Card    BusinessCard `json:"card"`
}
