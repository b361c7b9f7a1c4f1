package core

// FieldFunction names a function that can be applied to a field in a
// field selection, e.g. year(created_at) or json(data$.a.b).
type FieldFunction string

// Supported field functions.
const (
	FuncYear    FieldFunction = "year"
	FuncMonth   FieldFunction = "month"
	FuncWeek    FieldFunction = "week"
	FuncDay     FieldFunction = "day"
	FuncWeekday FieldFunction = "weekday"
	FuncHour    FieldFunction = "hour"
	FuncMinute  FieldFunction = "minute"
	FuncSecond  FieldFunction = "second"
	FuncCount   FieldFunction = "count"
	FuncJSON    FieldFunction = "json"
)

// FieldFunctions lists every supported function in declaration order.
var FieldFunctions = []FieldFunction{
	FuncYear, FuncMonth, FuncWeek, FuncDay, FuncWeekday,
	FuncHour, FuncMinute, FuncSecond,
	FuncCount, FuncJSON,
}

// DateParts lists the date-part extraction functions.
var DateParts = []FieldFunction{
	FuncYear, FuncMonth, FuncWeek, FuncDay, FuncWeekday,
	FuncHour, FuncMinute, FuncSecond,
}

// IsValid reports whether f is one of the supported functions.
func (f FieldFunction) IsValid() bool {
	for _, known := range FieldFunctions {
		if f == known {
			return true
		}
	}
	return false
}

// IsDatePart reports whether f extracts a part of a date or time value.
func (f FieldFunction) IsDatePart() bool {
	for _, part := range DateParts {
		if f == part {
			return true
		}
	}
	return false
}

// String returns the function name.
func (f FieldFunction) String() string {
	return string(f)
}
