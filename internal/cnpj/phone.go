package cnpj

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultPhoneRegion = "BR"

// mapper converts upstream payloads into registry records.
type mapper struct {
	region string
}

// phone formats raw as E.164 when it is a valid number for the region,
// otherwise keeps its digits. Blank input yields nil.
func (m *mapper) phone(raw string) *string {
	digits := onlyDigits(raw)
	if digits == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(digits, m.region)
	if err == nil && phonenumbers.IsValidNumber(parsed) {
		formatted := phonenumbers.Format(parsed, phonenumbers.E164)
		return &formatted
	}
	return &digits
}

func onlyDigits(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, value)
}
