package calendar

// Khorezm2026 is the published Ramadan 2026 calendar for Urganch, the
// regional centre. District tables shift it by a few minutes.
var Khorezm2026 = Calendar{
	day(1, "19-Fevral", "06:32", "18:37"),
	day(2, "20-Fevral", "06:30", "18:39"),
	day(3, "21-Fevral", "06:29", "18:40"),
	day(4, "22-Fevral", "06:28", "18:41"),
	day(5, "23-Fevral", "06:26", "18:42"),
	day(6, "24-Fevral", "06:25", "18:44"),
	day(7, "25-Fevral", "06:23", "18:45"),
	day(8, "26-Fevral", "06:22", "18:46"),
	day(9, "27-Fevral", "06:20", "18:47"),
	day(10, "28-Fevral", "06:19", "18:49"),
	day(11, "1-Mart", "06:18", "18:50"),
	day(12, "2-Mart", "06:16", "18:51"),
	day(13, "3-Mart", "06:14", "18:52"),
	day(14, "4-Mart", "06:13", "18:53"),
	day(15, "5-Mart", "06:11", "18:54"),
	day(16, "6-Mart", "06:10", "18:56"),
	day(17, "7-Mart", "06:08", "18:57"),
	day(18, "8-Mart", "06:07", "18:58"),
	day(19, "9-Mart", "06:05", "18:59"),
	day(20, "10-Mart", "06:03", "19:00"),
	day(21, "11-Mart", "06:02", "19:01"),
	day(22, "12-Mart", "06:00", "19:03"),
	day(23, "13-Mart", "05:58", "19:04"),
	day(24, "14-Mart", "05:56", "19:05"),
	day(25, "15-Mart", "05:55", "19:06"),
	day(26, "16-Mart", "05:53", "19:07"),
	day(27, "17-Mart", "05:51", "19:08"),
	day(28, "18-Mart", "05:50", "19:09"),
	day(29, "19-Mart", "05:48", "19:10"),
	day(30, "20-Mart", "05:46", "19:11"),
}

func day(n int, date, start, end string) DayRecord {
	return DayRecord{
		Day:   n,
		Date:  date,
		Start: MustParseTimeOfDay(start),
		End:   MustParseTimeOfDay(end),
	}
}
