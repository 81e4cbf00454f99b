package pattern

// Part identifies one of the seven schedule fields. The ordinal order
// (second through year) is the order the next-match carry algorithm walks
// fields in; it is a scan order, not calendar significance: day-of-week
// deliberately sits between month and year.
type Part int

const (
	// PartSecond is the seconds field (0-59).
	PartSecond Part = iota
	// PartMinute is the minutes field (0-59).
	PartMinute
	// PartHour is the hours field (0-23).
	PartHour
	// PartDayOfMonth is the day-of-month field (1-31).
	PartDayOfMonth
	// PartMonth is the month field, 1-based (1-12).
	PartMonth
	// PartDayOfWeek is the day-of-week field, 0-based; 0 and 7 both mean Sunday.
	PartDayOfWeek
	// PartYear is the year field (1970-2099).
	PartYear

	partCount = int(PartYear) + 1
)

var partRanges = [partCount][2]int{
	PartSecond:     {0, 59},
	PartMinute:     {0, 59},
	PartHour:       {0, 23},
	PartDayOfMonth: {1, 31},
	PartMonth:      {1, 12},
	PartDayOfWeek:  {0, 7},
	PartYear:       {1970, 2099},
}

var partNames = [partCount]string{
	PartSecond:     "second",
	PartMinute:     "minute",
	PartHour:       "hour",
	PartDayOfMonth: "day-of-month",
	PartMonth:      "month",
	PartDayOfWeek:  "day-of-week",
	PartYear:       "year",
}

// Min returns the smallest legal value for the field. This is the value a
// field is reset to when a higher-order field advances during a next-match
// search.
func (p Part) Min() int {
	return partRanges[p][0]
}

// Max returns the largest legal value for the field.
func (p Part) Max() int {
	return partRanges[p][1]
}

// String returns the field name.
func (p Part) String() string {
	if p < 0 || int(p) >= partCount {
		return "unknown"
	}
	return partNames[p]
}
