package roster

import "time"

const hoursPerDay = 24

// YearsOfService は入社日から today までに経過した満年数を返します。
// 今年の記念日が today より後であれば 1 年差し引き、当日は経過済みとみなします。
// 入社日が未来の場合も同じ計算をそのまま適用します。
func YearsOfService(hireDate, today time.Time) int {
	hire := DateOf(hireDate)
	now := DateOf(today)

	years := now.Year() - hire.Year()
	if monthDayBefore(now, hire) {
		years--
	}
	return years
}

// DaysUntilAnniversary は次の入社記念日までの日数を返します。当日は 0 です。
// 2 月 29 日入社でうるう年でない年は 3 月 1 日に繰り越されます。
func DaysUntilAnniversary(hireDate, today time.Time) int {
	hire := DateOf(hireDate)
	now := DateOf(today)

	next := time.Date(now.Year(), hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(now) {
		next = time.Date(now.Year()+1, hire.Month(), hire.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(now).Hours() / hoursPerDay)
}

func monthDayBefore(a, b time.Time) bool {
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	return a.Day() < b.Day()
}
