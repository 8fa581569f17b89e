package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers typed without a country code.
const DefaultRegion = "US"

// NormalizePhone converts a phone number to E.164. Returns "" when the number
// cannot be parsed.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	parsedNumber, err := phonenumbers.Parse(phone, DefaultRegion)
	if err != nil {
		return ""
	}
	return phonenumbers.Format(parsedNumber, phonenumbers.E164)
}

// TelURI builds a tel: link for a display phone number such as "(228) 365-3626".
func TelURI(phone string) string {
	e164 := NormalizePhone(phone)
	if e164 == "" {
		return ""
	}
	return "tel:" + e164
}
