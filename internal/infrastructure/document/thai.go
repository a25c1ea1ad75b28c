package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// buddhistEraOffset converts a Gregorian year to the Thai solar calendar.
const buddhistEraOffset = 543

var thaiMonths = [...]string{
	"", "มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var thaiShortMonths = [...]string{
	"", "ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

var printer = message.NewPrinter(language.Thai)

// ThaiDate formats t as "3 มีนาคม 2568".
func ThaiDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()], t.Year()+buddhistEraOffset)
}

// ThaiShortDate formats t as "3 มี.ค. 68".
func ThaiShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s %02d", t.Day(), thaiShortMonths[t.Month()], (t.Year()+buddhistEraOffset)%100)
}

// ThaiDateTime formats t as "3 มีนาคม 2568 เวลา 08:30 น.".
func ThaiDateTime(t time.Time) string {
	return fmt.Sprintf("%s เวลา %s น.", ThaiDate(t), t.Format("15:04"))
}

// FormatBaht renders an amount with thousands separators and two decimals,
// e.g. 12,345.50. The integer part is grouped exactly, without floats.
func FormatBaht(d decimal.Decimal) string {
	fixed := d.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + printer.Sprintf("%d", n) + "." + frac
}

// sectionCategory is the short category printed in the form's type column.
func sectionCategory(s entity.Section) string {
	switch s {
	case entity.SectionPerDiem:
		return "เบี้ยเลี้ยง"
	case entity.SectionAccommodation:
		return "ที่พัก"
	case entity.SectionTransportation:
		return "พาหนะ"
	case entity.SectionTrainingMeal:
		return "อาหารฝึกอบรม"
	default:
		return "อื่น ๆ"
	}
}
