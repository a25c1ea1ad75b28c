// Package bahttext renders baht amounts as Thai words, as printed on
// government payment documents (e.g. 1021.50 → หนึ่งพันยี่สิบเอ็ดบาทห้าสิบสตางค์).
package bahttext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	wordZero    = "ศูนย์"
	wordNegate  = "ลบ"
	wordBaht    = "บาท"
	wordSatang  = "สตางค์"
	wordExact   = "ถ้วน"
	wordMillion = "ล้าน"
	wordEt      = "เอ็ด"
	wordYi      = "ยี่"
	wordTen     = "สิบ"
)

var digitWords = [10]string{"", "หนึ่ง", "สอง", "สาม", "สี่", "ห้า", "หก", "เจ็ด", "แปด", "เก้า"}

// place names for positions 0..5 within a million group
var placeWords = [6]string{"", "สิบ", "ร้อย", "พัน", "หมื่น", "แสน"}

// Convert returns the Thai reading of amount rounded half-up to the satang.
// Zero renders as ศูนย์บาทถ้วน and negative amounts are prefixed with ลบ.
func Convert(amount decimal.Decimal) string {
	amount = amount.Round(2)
	if amount.IsZero() {
		return wordZero + wordBaht + wordExact
	}

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteString(wordNegate)
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	bahtDigits, satangDigits := fixed[:dot], fixed[dot+1:]

	if baht := readInteger(bahtDigits); baht != "" {
		b.WriteString(baht)
		b.WriteString(wordBaht)
	}
	if satang := readInteger(satangDigits); satang != "" {
		b.WriteString(satang)
		b.WriteString(wordSatang)
	} else {
		b.WriteString(wordExact)
	}
	return b.String()
}

// ErrNegativeSatang is returned by FromParts for a satang part below zero.
var ErrNegativeSatang = errors.New("negative satang")

// FromParts renders baht and satang given separately. Satang beyond 99
// carries into baht; the sign of the amount comes from baht alone.
func FromParts(baht, satang int64) (string, error) {
	if satang < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeSatang, satang)
	}
	frac := decimal.New(satang, -2)
	if baht < 0 {
		frac = frac.Neg()
	}
	return Convert(decimal.NewFromInt(baht).Add(frac)), nil
}

// readInteger reads a non-negative decimal digit string. It returns "" for zero.
func readInteger(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return ""
	}

	// split into million groups, most significant first
	var groups []string
	for len(digits) > 6 {
		groups = append([]string{digits[len(digits)-6:]}, groups...)
		digits = digits[:len(digits)-6]
	}
	groups = append([]string{digits}, groups...)

	var b strings.Builder
	for i, g := range groups {
		b.WriteString(readGroup(g, b.Len() > 0))
		if i < len(groups)-1 {
			b.WriteString(wordMillion)
		}
	}
	return b.String()
}

// readGroup reads up to six digits. A trailing one reads เอ็ด when any
// higher digit is non-zero, in this group or an earlier one.
func readGroup(group string, hasHigher bool) string {
	var b strings.Builder
	n := len(group)
	for i := 0; i < n; i++ {
		d := group[i] - '0'
		pos := n - i - 1
		if d == 0 {
			continue
		}
		switch {
		case pos == 1 && d == 1:
			b.WriteString(wordTen)
		case pos == 1 && d == 2:
			b.WriteString(wordYi + wordTen)
		case pos == 0 && d == 1 && (hasHigher || b.Len() > 0):
			b.WriteString(wordEt)
		default:
			b.WriteString(digitWords[d])
			b.WriteString(placeWords[pos])
		}
	}
	return b.String()
}
