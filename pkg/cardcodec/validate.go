package cardcodec

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// MaxEmailLen e-posta kolonlarının uzunluğu.
	MaxEmailLen = 320
	// MaxCardIDLen store'un atadığı UUID kimliğinin uzunluğu.
	MaxCardIDLen = 36
	// MaxPayloadBytes paylaşım metninin üst sınırı. Medium düzeltme seviyesinde
	// en büyük QR sürümü 2331 bayt taşır.
	MaxPayloadBytes = 2048

	maxNameLen    = 150
	maxRoleLen    = 100
	maxPhoneLen   = 30
	maxAddressLen = 500
	maxURLLen     = 500
)

var (
	emailRegex     = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRegex     = regexp.MustCompile(`^\+\d+\d+$`)
	linkedinRegex  = regexp.MustCompile(`^https://www\.linkedin\.com/in/[a-zA-Z0-9-]{5,30}/?$`)
	twitterRegex   = regexp.MustCompile(`^https?://twitter\.com/(#!/)?[a-zA-Z0-9_]{1,15}/?$`)
	facebookRegex  = regexp.MustCompile(`^(https?://)?(www\.)?facebook.com/(profile.php\?id=\d+|.*?/)?([a-zA-Z0-9.]{5,})/?$`)
	instagramRegex = regexp.MustCompile(`^https?://(www\.)?instagram\.com/[a-zA-Z0-9_]{1,30}/?$`)
	webRegex       = regexp.MustCompile(`^https?://(www\.)?([a-zA-Z0-9-]+\.)*[a-zA-Z0-9-]+\.[a-z]{2,}(:[0-9]+)?(/.*)?$`)
)

func IsEmail(v string) bool { return emailRegex.MatchString(v) }

// IsPhone mobile ve whatsapp için: '+' ve ardından rakamlar.
func IsPhone(v string) bool { return phoneRegex.MatchString(v) }

func IsLinkedinURL(v string) bool  { return linkedinRegex.MatchString(v) }
func IsTwitterURL(v string) bool   { return twitterRegex.MatchString(v) }
func IsFacebookURL(v string) bool  { return facebookRegex.MatchString(v) }
func IsInstagramURL(v string) bool { return instagramRegex.MatchString(v) }

// IsWebURL profileURL ve companyWebsite için genel http(s) kalıbı.
func IsWebURL(v string) bool { return webRegex.MatchString(v) }

// ContainsDelimiter alan değeri payload'ı bozacak bir ayırıcı içeriyor mu?
func ContainsDelimiter(v string) bool { return strings.Contains(v, Delimiter) }

type fieldRule struct {
	name     string
	value    string
	required bool
	max      int
	check    func(string) bool
	message  string
}

// ValidateCard formdan gelen kartı doğrular. Değerlerin trim edilmiş olduğu varsayılır.
// Hata yoksa nil, varsa FieldErrors döner.
func ValidateCard(c Card) error {
	rules := []fieldRule{
		{name: "name", value: c.Name, required: true, max: maxNameLen},
		{name: "company", value: c.Company, required: true, max: maxNameLen},
		{name: "role", value: c.Role, required: true, max: maxRoleLen},
		{name: "email", value: c.Email, required: true, max: MaxEmailLen, check: IsEmail, message: "must be a valid email address"},
		{name: "mobile", value: c.Mobile, required: true, max: maxPhoneLen, check: IsPhone, message: "must start with + followed by digits"},
		{name: "officeAddress", value: c.OfficeAddress, required: true, max: maxAddressLen},
		{name: "companyWebsite", value: c.CompanyWebsite, required: true, max: maxURLLen, check: IsWebURL, message: "must be a valid http(s) URL"},
		{name: "whatsapp", value: c.Whatsapp, max: maxPhoneLen, check: IsPhone, message: "must start with + followed by digits"},
		{name: "profileURL", value: c.ProfileURL, max: maxURLLen, check: IsWebURL, message: "must be a valid http(s) URL"},
		{name: "linkedinURL", value: c.LinkedinURL, max: maxURLLen, check: IsLinkedinURL, message: "must look like https://www.linkedin.com/in/<handle>"},
		{name: "twitterURL", value: c.TwitterURL, max: maxURLLen, check: IsTwitterURL, message: "must look like https://twitter.com/<handle>"},
		{name: "facebookURL", value: c.FacebookURL, max: maxURLLen, check: IsFacebookURL, message: "must be a facebook.com profile URL"},
		{name: "instagramURL", value: c.InstagramURL, max: maxURLLen, check: IsInstagramURL, message: "must look like https://instagram.com/<handle>"},
	}

	errs := FieldErrors{}
	for _, r := range rules {
		if strings.TrimSpace(r.value) == "" {
			if r.required {
				errs[r.name] = "is required"
			}
			continue
		}
		if r.max > 0 && utf8.RuneCountInString(r.value) > r.max {
			errs[r.name] = "must be at most " + strconv.Itoa(r.max) + " characters"
			continue
		}
		if ContainsDelimiter(r.value) {
			errs[r.name] = "must not contain '" + Delimiter + "'"
			continue
		}
		if r.check != nil && !r.check(r.value) {
			errs[r.name] = r.message
		}
	}

	if len(errs) > 0 {
		return errs
	}
	if n := worstCasePayloadLen(c); n > MaxPayloadBytes {
		return FieldErrors{"card": "encoded card is " + strconv.Itoa(n) + " bytes, at most " + strconv.Itoa(MaxPayloadBytes) + " fit in a QR code"}
	}
	return nil
}

// worstCasePayloadLen kartın en uzun sahip e-postası, kimliği ve durumu ile
// kodlandığında tutacağı bayt sayısı.
func worstCasePayloadLen(c Card) int {
	c.ID = strings.Repeat("0", MaxCardIDLen)
	c.Status = "invalid"
	return len(Encode(c, strings.Repeat("a", MaxEmailLen)))
}
