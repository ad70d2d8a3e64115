// Package coupon parses Memberful coupon codes.
//
// Codes are made of a coupon base naming the promotion or partner, optionally
// followed by an invoice number when the membership was paid by invoice:
//
//	STUDENTCSAS      -> base STUDENTCSAS
//	CSAS12345        -> base CSAS, invoice 12345
//	STUD2023         -> base STUD2023 (four digits are a year, not an invoice)
package coupon

import (
	"regexp"
	"strings"
)

// Parts are the fields extracted from a coupon code, absent fields are "".
type Parts struct {
	CouponBase string
	InvoiceID  string
}

var invoiceRe = regexp.MustCompile(`^(.*[A-Z])(\d{5,})$`)

// Parse never fails, malformed or empty input produces empty fields.
func Parse(code string) Parts {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Parts{}
	}
	if groups := invoiceRe.FindStringSubmatch(code); groups != nil {
		return Parts{CouponBase: groups[1], InvoiceID: groups[2]}
	}
	return Parts{CouponBase: code}
}
