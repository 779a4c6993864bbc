package roster

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout は入社日のワイヤーフォーマットです。
const DateLayout = "2006-01-02"

// ParseHireDate は YYYY-MM-DD 形式の入社日を UTC 0 時の日付として解釈します。
// 不正な値は既定日付に置き換えず ErrInvalidHireDate を返します。
func ParseHireDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	t, err := time.ParseInLocation(DateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidHireDate, raw)
	}
	return t, nil
}

// FormatDate は日付を YYYY-MM-DD 形式で返します。
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf は t をそのロケーションでの暦日に切り詰め、UTC 0 時として返します。
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today は clock の現在時刻を loc の暦日に変換します。loc が nil の場合は UTC を使います。
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}
