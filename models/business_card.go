package models

import "vcard.link/pkg/cardcodec"

// CardStatus kartvizitin görünürlük durumu.
type CardStatus string

const (
	CardStatusValid   CardStatus = "valid"   // Aktif kart
	CardStatusInvalid CardStatus = "invalid" // Arşivlenmiş kart
)

// IsKnown geçerli bir durum değeri mi?
func (s CardStatus) IsKnown() bool {
	return s == CardStatusValid || s == CardStatusInvalid
}

// BusinessCard bir hesaba ait dijital kartvizit.
// Kayıtlar fiziksel olarak silinmez; arşivleme Status ile yapılır.
type BusinessCard struct {
	BaseModel
	OwnerEmail string `gorm:"type:varchar(320);not null;index:idx_card_owner_status" json:"owner_email"`

	// Zorunlu alanlar
	Name           string `gorm:"type:varchar(150);not null" json:"name"`
	Company        string `gorm:"type:varchar(150);not null" json:"company"`
	Role           string `gorm:"type:varchar(100);not null" json:"role"`
	Email          string `gorm:"type:varchar(320);not null" json:"email"`
	Mobile         string `gorm:"type:varchar(30);not null" json:"mobile"`
	OfficeAddress  string `gorm:"type:text;not null" json:"office_address"`
	CompanyWebsite string `gorm:"type:varchar(500);not null" json:"company_website"`

	// Opsiyonel alanlar
	Whatsapp     string `gorm:"type:varchar(30)" json:"whatsapp"`
	ProfileURL   string `gorm:"type:varchar(500)" json:"profile_url"`
	LinkedinURL  string `gorm:"type:varchar(500)" json:"linkedin_url"`
	TwitterURL   string `gorm:"type:varchar(500)" json:"twitter_url"`
	FacebookURL  string `gorm:"type:varchar(500)" json:"facebook_url"`
	InstagramURL string `gorm:"type:varchar(500)" json:"instagram_url"`

	Status CardStatus `gorm:"type:varchar(10);not null;default:'valid';index:idx_card_owner_status" json:"status"`
}

// TableName tablo adı.
func (BusinessCard) TableName() string { return "business_cards" }

// CodecCard kartı paylaşım formatına çevirir.
func (c BusinessCard) CodecCard() cardcodec.Card {
	return cardcodec.Card{
		ID:             c.ID,
		Name:           c.Name,
		Status:         string(c.Status),
		Role:           c.Role,
		ProfileURL:     c.ProfileURL,
		TwitterURL:     c.TwitterURL,
		InstagramURL:   c.InstagramURL,
		FacebookURL:    c.FacebookURL,
		LinkedinURL:    c.LinkedinURL,
		Mobile:         c.Mobile,
		Whatsapp:       c.Whatsapp,
		Email:          c.Email,
		Company:        c.Company,
		OfficeAddress:  c.OfficeAddress,
		CompanyWebsite: c.CompanyWebsite,
	}
}

// BusinessCardInput oluşturma/güncelleme formu.
type BusinessCardInput struct {
	Name           string `json:"name" form:"name"`
	Company        string `json:"company" form:"company"`
	Role           string `json:"role" form:"role"`
	Email          string `json:"email" form:"email"`
	Mobile         string `json:"mobile" form:"mobile"`
	OfficeAddress  string `json:"office_address" form:"office_address"`
	CompanyWebsite string `json:"company_website" form:"company_website"`
	Whatsapp       string `json:"whatsapp" form:"whatsapp"`
	ProfileURL     string `json:"profile_url" form:"profile_url"`
	LinkedinURL    string `json:"linkedin_url" form:"linkedin_url"`
	TwitterURL     string `json:"twitter_url" form:"twitter_url"`
	FacebookURL    string `json:"facebook_url" form:"facebook_url"`
	InstagramURL   string `json:"instagram_url" form:"instagram_url"`
}

// Apply form değerlerini trim ederek karta kopyalar. ID, sahip ve durum değişmez.
func (in BusinessCardInput) Apply(card *BusinessCard) {
	card.Name = trim(in.Name)
	card.Company = trim(in.Company)
	card.Role = trim(in.Role)
	card.Email = trim(in.Email)
	card.Mobile = trim(in.Mobile)
	card.OfficeAddress = trim(in.OfficeAddress)
	card.CompanyWebsite = trim(in.CompanyWebsite)
	card.Whatsapp = trim(in.Whatsapp)
	card.ProfileURL = trim(in.ProfileURL)
	card.LinkedinURL = trim(in.LinkedinURL)
	card.TwitterURL = trim(in.TwitterURL)
	card.FacebookURL = trim(in.FacebookURL)
	card.InstagramURL = trim(in.InstagramURL)
}
