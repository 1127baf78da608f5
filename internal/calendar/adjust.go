package calendar

// Adjust applies a district's offsets to one day. Only the hour:minute of each
// anchor changes; a shift past midnight wraps within the same nominal day.
func Adjust(d DayRecord, o DistrictOffset) DayRecord {
	d.Start = d.Start.AddMinutes(o.StartOffset)
	d.End = d.End.AddMinutes(o.EndOffset)
	return d
}

// AdjustAll returns the effective calendar for a district. The input is not
// modified.
func AdjustAll(c Calendar, o DistrictOffset) Calendar {
	out := make(Calendar, len(c))
	for i, d := range c {
		out[i] = Adjust(d, o)
	}
	return out
}
