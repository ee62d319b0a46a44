package update

import "github.com/sandeepkv93/todocal/internal/model"

var zeroDate model.Date

// clamp bounds a cursor to [0, n).
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// sameDayIn moves d into month m, keeping the day of month where it exists.
func sameDayIn(d model.Date, m model.Month) model.Date {
	day := min(max(d.Day, 1), m.Last().Day)
	return model.Date{Year: m.Year, Month: m.Month, Day: day}
}
