package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/camelcase"
)

// TimestampLayout is the fixed textual form of every timestamp in a report.
const TimestampLayout = "2006-01-02 15:04:05"

// timestampLayouts are the string encodings drivers use for date-times that
// get normalised to TimestampLayout. Date-only strings are left alone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
}

// FormatValue renders a result value for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case time.Time:
		return t.Format(TimestampLayout)
	case *time.Time:
		if t == nil {
			return "NULL"
		}
		return t.Format(TimestampLayout)
	case []byte:
		return formatString(string(t))
	case string:
		return formatString(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return fmt.Sprint(t)
	}
}

func formatString(s string) string {
	if len(s) < len("2006-01-02T15:04") || !unicode.IsDigit(rune(s[0])) {
		return s
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Format(TimestampLayout)
		}
	}
	return s
}

// HumanizeColumn turns a raw field name into a display label:
// "Daily_Quantity" and "DailyQuantity" both become "Daily Quantity".
func HumanizeColumn(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var words []string
	for _, p := range parts {
		for _, w := range camelcase.Split(p) {
			if strings.TrimSpace(w) != "" {
				words = append(words, w)
			}
		}
	}
	if len(words) == 0 {
		return key
	}
	return strings.Join(words, " ")
}
