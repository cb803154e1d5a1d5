// Package cardcodec kartvizitin QR koduna gömülen paylaşım metnini üretir ve çözer.
//
// Format sabit sıralı, virgülle ayrılmış ve kaçışsızdır:
//
//	thalachira,<ownerEmail>,<cardId>,<name>,<status>,<role>,<profileURL>,<twitterURL>,
//	<instagramURL>,<facebookURL>,<linkedinURL>,<mobile>,<whatsapp>,<email>,<company>,
//	<officeAddress>,<companyWebsite>,<status>
//
// status alanı iki kez yer alır; eski istemcilerle uyum için bu sıra korunmalıdır.
package cardcodec

import "strings"

const (
	// Marker uygulamanın QR kodlarını tanımlayan sabit önek.
	Marker = "thalachira"
	// Delimiter alan ayırıcı.
	Delimiter = ","
)

// minFields owner email ve card id için gereken en az alan sayısı.
const minFields = 2

// Card paylaşılan kartvizit alanları. ID store tarafından atanır.
type Card struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Role           string `json:"role"`
	ProfileURL     string `json:"profile_url"`
	TwitterURL     string `json:"twitter_url"`
	InstagramURL   string `json:"instagram_url"`
	FacebookURL    string `json:"facebook_url"`
	LinkedinURL    string `json:"linkedin_url"`
	Mobile         string `json:"mobile"`
	Whatsapp       string `json:"whatsapp"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	OfficeAddress  string `json:"office_address"`
	CompanyWebsite string `json:"company_website"`
}

// Payload çözülmüş QR içeriği.
type Payload struct {
	OwnerEmail string `json:"owner_email"`
	Card
}

// CardID kartın kimliği (okunabilirlik için).
func (p Payload) CardID() string { return p.ID }

// Encode kartı ve sahibinin e-postasını paylaşım metnine çevirir.
// Saf fonksiyondur; boş alanlar yerlerini korur, virgüller kaçışlanmaz.
func Encode(card Card, ownerEmail string) string {
	fields := []string{
		Marker,
		ownerEmail,
		card.ID,
		card.Name,
		card.Status,
		card.Role,
		card.ProfileURL,
		card.TwitterURL,
		card.InstagramURL,
		card.FacebookURL,
		card.LinkedinURL,
		card.Mobile,
		card.Whatsapp,
		card.Email,
		card.Company,
		card.OfficeAddress,
		card.CompanyWebsite,
		card.Status,
	}
	return strings.Join(fields, Delimiter)
}

// Decode taranan metni doğrular ve alanlarına ayırır.
// Hatalı girdide panic olmaz; *InvalidPayloadError döner.
func Decode(raw string) (Payload, error) {
	prefix := Marker + Delimiter
	if !strings.HasPrefix(raw, prefix) {
		return Payload{}, &InvalidPayloadError{Reason: ReasonUnrecognized}
	}

	fields := strings.Split(strings.TrimPrefix(raw, prefix), Delimiter)
	if len(fields) < minFields {
		return Payload{}, &InvalidPayloadError{Reason: ReasonMalformed}
	}

	// Eksik kuyruk alanları boş string sayılır (eski encoder'lar kısa payload üretebilir)
	at := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}

	p := Payload{
		OwnerEmail: strings.TrimSpace(at(0)),
		Card: Card{
			ID:             strings.TrimSpace(at(1)),
			Name:           at(2),
			Status:         at(3),
			Role:           at(4),
			ProfileURL:     at(5),
			TwitterURL:     at(6),
			InstagramURL:   at(7),
			FacebookURL:    at(8),
			LinkedinURL:    at(9),
			Mobile:         at(10),
			Whatsapp:       at(11),
			Email:          at(12),
			Company:        at(13),
			OfficeAddress:  at(14),
			CompanyWebsite: at(15),
		},
	}
	if p.Status == "" {
		p.Status = at(16)
	}

	if p.OwnerEmail == "" || p.ID == "" {
		return Payload{}, &InvalidPayloadError{Reason: ReasonMalformed}
	}
	return p, nil
}
