package cardcodec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		value string
		want  bool
	}{
		{"mobile with plus", IsPhone, "+14155551234", true},
		{"mobile without plus", IsPhone, "14155551234", false},
		{"mobile single digit", IsPhone, "+1", false},
		{"mobile with spaces", IsPhone, "+1 415 555", false},

		{"email ok", IsEmail, "jane@acme.io", true},
		{"email no tld", IsEmail, "jane@acme", false},
		{"email with space", IsEmail, "jane doe@acme.io", false},

		{"linkedin ok", IsLinkedinURL, "https://www.linkedin.com/in/jane-doe", true},
		{"linkedin trailing slash", IsLinkedinURL, "https://www.linkedin.com/in/jane-doe/", true},
		{"linkedin missing www and in", IsLinkedinURL, "https://linkedin.com/jane", false},
		{"linkedin handle too short", IsLinkedinURL, "https://www.linkedin.com/in/jan", false},

		{"twitter ok", IsTwitterURL, "https://twitter.com/jane_doe", true},
		{"twitter http", IsTwitterURL, "http://twitter.com/jd", true},
		{"twitter handle too long", IsTwitterURL, "https://twitter.com/abcdefghijklmnop", false},

		{"facebook ok", IsFacebookURL, "https://www.facebook.com/jane.doe", true},
		{"facebook profile id", IsFacebookURL, "https://facebook.com/profile.php?id=1234567", true},
		{"facebook other host", IsFacebookURL, "https://example.com/jane.doe", false},

		{"instagram ok", IsInstagramURL, "https://instagram.com/jane_doe", true},
		{"instagram www", IsInstagramURL, "https://www.instagram.com/jane", true},
		{"instagram bad host", IsInstagramURL, "https://insta.com/jane", false},

		{"web ok", IsWebURL, "https://acme.io", true},
		{"web with port and path", IsWebURL, "http://acme.io:8080/about", true},
		{"web no scheme", IsWebURL, "acme.io", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.value))
		})
	}
}

func TestValidateCard_Valid(t *testing.T) {
	assert.NoError(t, ValidateCard(sampleCard()))
}

func TestValidateCard_CollectsAllErrors(t *testing.T) {
	c := sampleCard()
	c.Name = "  "
	c.Mobile = "14155551234"
	c.LinkedinURL = "https://linkedin.com/jane"
	c.Company = "Acme, Inc"

	err := ValidateCard(c)
	require.Error(t, err)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 4)
	assert.Equal(t, "is required", fe["name"])
	assert.Contains(t, fe, "mobile")
	assert.Contains(t, fe, "linkedinURL")
	assert.Contains(t, fe["company"], "must not contain")
	assert.Contains(t, err.Error(), "company:")
}

func TestValidateCard_OptionalFieldsMayBeEmpty(t *testing.T) {
	c := sampleCard()
	c.ProfileURL, c.TwitterURL, c.FacebookURL, c.LinkedinURL, c.InstagramURL, c.Whatsapp = "", "", "", "", "", ""
	assert.NoError(t, ValidateCard(c))
}

func TestValidateCard_FieldLengths(t *testing.T) {
	c := sampleCard()
	c.Name = strings.Repeat("a", 151)
	c.OfficeAddress = strings.Repeat("b", 3000)
	c.Mobile = "+" + strings.Repeat("1", 30)

	var fe FieldErrors
	require.ErrorAs(t, ValidateCard(c), &fe)
	assert.Equal(t, "must be at most 150 characters", fe["name"])
	assert.Equal(t, "must be at most 500 characters", fe["officeAddress"])
	assert.Equal(t, "must be at most 30 characters", fe["mobile"])

	// Sınır değerleri kabul edilir; çok baytlı karakterler tek sayılır
	c = sampleCard()
	c.Name = strings.Repeat("ş", 150)
	assert.NoError(t, ValidateCard(c))
}

func TestValidateCard_PayloadBudget(t *testing.T) {
	c := sampleCard()
	c.Name = strings.Repeat("n", 150)
	c.Company = strings.Repeat("c", 150)
	c.Role = strings.Repeat("r", 100)
	c.OfficeAddress = strings.Repeat("o", 500)
	c.ProfileURL = "https://jane.dev/" + strings.Repeat("p", 483)
	c.CompanyWebsite = "https://acme.io/" + strings.Repeat("w", 484)

	var fe FieldErrors
	require.ErrorAs(t, ValidateCard(c), &fe)
	assert.Len(t, fe, 1)
	assert.Contains(t, fe["card"], "fit in a QR code")

	// Kabul edilen her kart en kötü sahip ve kimlikle bile sınırda kalır
	c.OfficeAddress = "1 Market St"
	require.NoError(t, ValidateCard(c))
	assert.LessOrEqual(t, len(Encode(c, strings.Repeat("a", MaxEmailLen))), MaxPayloadBytes)
}
