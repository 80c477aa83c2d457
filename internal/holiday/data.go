package holiday

// Embedded calendar data covering 2024-2027. Exchange closures list
// weekday non-session days per exchange calendar code; weekends are
// derived and never listed. Public holiday names are keyed by market
// code and ISO date, with local names already translated to English.

var exchangeClosures = map[string][]string{
	"XTKS": {
		// 2024
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-08", "2024-02-12",
		"2024-02-23", "2024-03-20", "2024-04-29", "2024-05-03", "2024-05-06",
		"2024-07-15", "2024-08-12", "2024-09-16", "2024-09-23", "2024-10-14",
		"2024-11-04", "2024-12-31",
		// 2025
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-13", "2025-02-11",
		"2025-02-24", "2025-03-20", "2025-04-29", "2025-05-05", "2025-05-06",
		"2025-07-21", "2025-08-11", "2025-09-15", "2025-09-23", "2025-10-13",
		"2025-11-03", "2025-11-24", "2025-12-31",
		// 2026
		"2026-01-01", "2026-01-02", "2026-01-12", "2026-02-11", "2026-02-23",
		"2026-03-20", "2026-04-29", "2026-05-04", "2026-05-05", "2026-05-06",
		"2026-07-20", "2026-08-11", "2026-09-21", "2026-09-22", "2026-09-23",
		"2026-10-12", "2026-11-03", "2026-11-23", "2026-12-31",
		// 2027
		"2027-01-01", "2027-01-11", "2027-02-11", "2027-02-23", "2027-12-31",
	},
	"XHKG": {
		// 2024
		"2024-01-01", "2024-02-12", "2024-02-13", "2024-03-29", "2024-04-01",
		"2024-04-04", "2024-05-01", "2024-05-15", "2024-06-10", "2024-07-01",
		"2024-09-18", "2024-10-01", "2024-10-11", "2024-12-25", "2024-12-26",
		// 2025
		"2025-01-01", "2025-01-29", "2025-01-30", "2025-01-31", "2025-04-04",
		"2025-04-18", "2025-04-21", "2025-05-01", "2025-05-05", "2025-07-01",
		"2025-10-01", "2025-10-07", "2025-10-29", "2025-12-25", "2025-12-26",
		// 2026
		"2026-01-01", "2026-02-17", "2026-02-18", "2026-02-19", "2026-04-03",
		"2026-04-06", "2026-04-07", "2026-05-01", "2026-05-25", "2026-06-19",
		"2026-07-01", "2026-09-28", "2026-10-01", "2026-10-19", "2026-12-25",
		// 2027
		"2027-01-01", "2027-02-08", "2027-02-09", "2027-12-27",
	},
	"XSES": {
		// 2024
		"2024-01-01", "2024-02-12", "2024-03-29", "2024-04-10", "2024-05-01",
		"2024-05-22", "2024-06-17", "2024-08-09", "2024-10-31", "2024-12-25",
		// 2025
		"2025-01-01", "2025-01-29", "2025-01-30", "2025-03-31", "2025-04-18",
		"2025-05-01", "2025-05-12", "2025-06-06", "2025-10-20", "2025-12-25",
		// 2026
		"2026-01-01", "2026-02-17", "2026-02-18", "2026-03-20", "2026-04-03",
		"2026-05-01", "2026-05-27", "2026-06-01", "2026-08-10", "2026-11-09",
		"2026-12-25",
		// 2027
		"2027-01-01", "2027-02-08", "2027-12-27",
	},
	"XNSE": {
		// 2024
		"2024-01-26", "2024-03-08", "2024-03-25", "2024-03-29", "2024-04-11",
		"2024-05-01", "2024-06-17", "2024-08-15", "2024-10-02", "2024-11-01",
		"2024-12-25",
		// 2025
		"2025-02-26", "2025-03-14", "2025-04-18", "2025-05-01", "2025-08-15",
		"2025-10-02", "2025-10-21", "2025-10-22", "2025-12-25",
		// 2026
		"2026-01-26", "2026-03-04", "2026-04-03", "2026-04-14", "2026-05-01",
		"2026-10-02", "2026-11-09", "2026-12-25",
		// 2027
		"2027-01-26", "2027-11-01",
	},
	"XASX": {
		// 2024
		"2024-01-01", "2024-01-26", "2024-03-29", "2024-04-01", "2024-04-25",
		"2024-06-10", "2024-12-25", "2024-12-26",
		// 2025
		"2025-01-01", "2025-01-27", "2025-04-18", "2025-04-21", "2025-04-25",
		"2025-06-09", "2025-12-25", "2025-12-26",
		// 2026
		"2026-01-01", "2026-01-26", "2026-04-03", "2026-04-06", "2026-06-08",
		"2026-12-25", "2026-12-28",
		// 2027
		"2027-01-01", "2027-01-26", "2027-12-27", "2027-12-28",
	},
	"XKRX": {
		// 2024
		"2024-01-01", "2024-02-09", "2024-02-12", "2024-03-01", "2024-04-10",
		"2024-05-01", "2024-05-06", "2024-05-15", "2024-06-06", "2024-08-15",
		"2024-09-16", "2024-09-17", "2024-09-18", "2024-10-01", "2024-10-03",
		"2024-10-09", "2024-12-25", "2024-12-31",
		// 2025
		"2025-01-01", "2025-01-28", "2025-01-29", "2025-01-30", "2025-03-03",
		"2025-05-01", "2025-05-05", "2025-05-06", "2025-06-06", "2025-08-15",
		"2025-10-03", "2025-10-06", "2025-10-07", "2025-10-08", "2025-10-09",
		"2025-12-25", "2025-12-31",
		// 2026
		"2026-01-01", "2026-02-16", "2026-02-17", "2026-02-18", "2026-03-02",
		"2026-05-01", "2026-05-05", "2026-05-25", "2026-09-24", "2026-09-25",
		"2026-10-09", "2026-12-25", "2026-12-31",
		// 2027
		"2027-01-01", "2027-02-08", "2027-02-09", "2027-12-31",
	},
	"XTAI": {
		// 2024
		"2024-01-01", "2024-02-08", "2024-02-09", "2024-02-12", "2024-02-13",
		"2024-02-14", "2024-02-28", "2024-04-04", "2024-04-05", "2024-05-01",
		"2024-06-10", "2024-09-17", "2024-10-10",
		// 2025
		"2025-01-01", "2025-01-27", "2025-01-28", "2025-01-29", "2025-01-30",
		"2025-01-31", "2025-02-28", "2025-04-03", "2025-04-04", "2025-05-01",
		"2025-05-30", "2025-10-06", "2025-10-10",
		// 2026
		"2026-01-01", "2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19",
		"2026-02-20", "2026-04-03", "2026-04-06", "2026-05-01", "2026-06-19",
		"2026-09-25", "2026-10-09",
		// 2027
		"2027-01-01", "2027-02-08", "2027-02-09", "2027-02-10", "2027-02-11",
		"2027-02-12",
	},
	"XSHG": {
		// 2024
		"2024-01-01", "2024-02-09", "2024-02-12", "2024-02-13", "2024-02-14",
		"2024-02-15", "2024-02-16", "2024-04-04", "2024-04-05", "2024-05-01",
		"2024-05-02", "2024-05-03", "2024-06-10", "2024-09-16", "2024-09-17",
		"2024-10-01", "2024-10-02", "2024-10-03", "2024-10-04", "2024-10-07",
		// 2025
		"2025-01-01", "2025-01-28", "2025-01-29", "2025-01-30", "2025-01-31",
		"2025-02-03", "2025-02-04", "2025-04-04", "2025-05-01", "2025-05-02",
		"2025-05-05", "2025-06-02", "2025-10-01", "2025-10-02", "2025-10-03",
		"2025-10-06", "2025-10-07", "2025-10-08",
		// 2026
		"2026-01-01", "2026-01-02", "2026-02-16", "2026-02-17", "2026-02-18",
		"2026-02-19", "2026-02-20", "2026-02-23", "2026-02-24", "2026-04-06",
		"2026-05-01", "2026-05-04", "2026-05-05", "2026-06-19", "2026-09-25",
		"2026-10-01", "2026-10-02", "2026-10-05", "2026-10-06", "2026-10-07",
		"2026-10-08",
		// 2027
		"2027-01-01", "2027-02-08", "2027-02-09", "2027-02-10", "2027-02-11",
		"2027-02-12", "2027-10-01", "2027-10-04", "2027-10-05", "2027-10-06",
		"2027-10-07", "2027-10-08",
	},
}

var publicHolidayNames = map[string]map[string]string{
	"JP": {
		"2025-01-01": "New Year's Day",
		"2025-01-13": "Coming of Age Day",
		"2025-02-11": "National Foundation Day",
		"2025-02-24": "Emperor's Birthday",
		"2025-03-20": "Vernal Equinox Day",
		"2025-04-29": "Showa Day",
		"2025-05-05": "Children's Day",
		"2025-05-06": "Greenery Day",
		"2025-07-21": "Marine Day",
		"2025-08-11": "Mountain Day",
		"2025-09-15": "Respect for the Aged Day",
		"2025-09-23": "Autumnal Equinox Day",
		"2025-10-13": "Sports Day",
		"2025-11-03": "Culture Day",
		"2025-11-24": "Labor Thanksgiving Day",
		"2026-01-01": "New Year's Day",
		"2026-01-12": "Coming of Age Day",
		"2026-02-11": "National Foundation Day",
		"2026-02-23": "Emperor's Birthday",
		"2026-03-20": "Vernal Equinox Day",
		"2026-04-29": "Showa Day",
		"2026-05-04": "Greenery Day",
		"2026-05-05": "Children's Day",
		"2026-05-06": "Constitution Memorial Day",
		"2026-07-20": "Marine Day",
		"2026-08-11": "Mountain Day",
		"2026-09-21": "Respect for the Aged Day",
		"2026-09-23": "Autumnal Equinox Day",
		"2026-10-12": "Sports Day",
		"2026-11-03": "Culture Day",
		"2026-11-23": "Labor Thanksgiving Day",
		"2027-01-01": "New Year's Day",
	},
	"HK": {
		"2025-01-01": "New Year's Day",
		"2025-01-29": "Lunar New Year",
		"2025-01-30": "Lunar New Year",
		"2025-01-31": "Lunar New Year",
		"2025-04-04": "Ching Ming Festival",
		"2025-04-18": "Good Friday",
		"2025-04-21": "Easter Monday",
		"2025-05-01": "Labour Day",
		"2025-05-05": "Buddha's Birthday",
		"2025-07-01": "HKSAR Establishment Day",
		"2025-10-01": "National Day",
		"2025-10-07": "Day following Mid-Autumn Festival",
		"2025-10-29": "Chung Yeung Festival",
		"2025-12-25": "Christmas Day",
		"2025-12-26": "Boxing Day",
		"2026-01-01": "New Year's Day",
		"2026-02-17": "Lunar New Year",
		"2026-02-18": "Lunar New Year",
		"2026-02-19": "Lunar New Year",
		"2026-04-03": "Good Friday",
		"2026-04-06": "Easter Monday",
		"2026-04-07": "Ching Ming Festival",
		"2026-05-01": "Labour Day",
		"2026-05-25": "Buddha's Birthday",
		"2026-06-19": "Tuen Ng Festival",
		"2026-07-01": "HKSAR Establishment Day",
		"2026-09-28": "Day following Mid-Autumn Festival",
		"2026-10-01": "National Day",
		"2026-10-19": "Chung Yeung Festival",
		"2026-12-25": "Christmas Day",
		"2027-01-01": "New Year's Day",
	},
	"SG": {
		"2025-01-01": "New Year's Day",
		"2025-01-29": "Chinese New Year",
		"2025-01-30": "Chinese New Year",
		"2025-03-31": "Hari Raya Puasa",
		"2025-04-18": "Good Friday",
		"2025-05-01": "Labour Day",
		"2025-05-12": "Vesak Day",
		"2025-06-06": "Hari Raya Haji",
		"2025-10-20": "Deepavali",
		"2025-12-25": "Christmas Day",
		"2026-01-01": "New Year's Day",
		"2026-02-17": "Chinese New Year",
		"2026-02-18": "Chinese New Year",
		"2026-03-20": "Hari Raya Puasa",
		"2026-04-03": "Good Friday",
		"2026-05-01": "Labour Day",
		"2026-05-27": "Hari Raya Haji",
		"2026-06-01": "Vesak Day",
		"2026-08-10": "National Day",
		"2026-11-09": "Deepavali",
		"2026-12-25": "Christmas Day",
		"2027-01-01": "New Year's Day",
	},
	"IN": {
		"2025-02-26": "Maha Shivaratri",
		"2025-03-14": "Holi",
		"2025-04-18": "Good Friday",
		"2025-05-01": "Maharashtra Day",
		"2025-08-15": "Independence Day",
		"2025-10-02": "Gandhi Jayanti",
		"2025-10-21": "Diwali",
		"2025-10-22": "Diwali",
		"2025-12-25": "Christmas Day",
		"2026-01-26": "Republic Day",
		"2026-03-04": "Holi",
		"2026-04-03": "Good Friday",
		"2026-04-14": "Dr. Ambedkar Jayanti",
		"2026-05-01": "Maharashtra Day",
		"2026-08-15": "Independence Day",
		"2026-10-02": "Gandhi Jayanti",
		"2026-11-09": "Diwali",
		"2026-12-25": "Christmas Day",
		"2027-01-26": "Republic Day",
	},
	"AU": {
		"2025-01-01": "New Year's Day",
		"2025-01-27": "Australia Day",
		"2025-04-18": "Good Friday",
		"2025-04-21": "Easter Monday",
		"2025-04-25": "Anzac Day",
		"2025-06-09": "King's Birthday",
		"2025-12-25": "Christmas Day",
		"2025-12-26": "Boxing Day",
		"2026-01-01": "New Year's Day",
		"2026-01-26": "Australia Day",
		"2026-04-03": "Good Friday",
		"2026-04-06": "Easter Monday",
		"2026-04-25": "Anzac Day",
		"2026-06-08": "King's Birthday",
		"2026-12-25": "Christmas Day",
		"2026-12-28": "Boxing Day",
		"2027-01-01": "New Year's Day",
	},
	"KR": {
		"2025-01-01": "New Year's Day",
		"2025-01-28": "Lunar New Year",
		"2025-01-29": "Lunar New Year",
		"2025-01-30": "Lunar New Year",
		"2025-03-03": "Independence Movement Day",
		"2025-05-01": "Labour Day",
		"2025-05-05": "Children's Day",
		"2025-05-06": "Buddha's Birthday",
		"2025-06-06": "Memorial Day",
		"2025-08-15": "Liberation Day",
		"2025-10-03": "National Foundation Day",
		"2025-10-06": "Chuseok",
		"2025-10-07": "Chuseok",
		"2025-10-08": "Chuseok",
		"2025-10-09": "Hangeul Day",
		"2025-12-25": "Christmas Day",
		"2026-01-01": "New Year's Day",
		"2026-02-16": "Lunar New Year",
		"2026-02-17": "Lunar New Year",
		"2026-02-18": "Lunar New Year",
		"2026-03-02": "Independence Movement Day",
		"2026-05-01": "Labour Day",
		"2026-05-05": "Children's Day",
		"2026-05-25": "Buddha's Birthday",
		"2026-09-24": "Chuseok",
		"2026-09-25": "Chuseok",
		"2026-10-09": "Hangeul Day",
		"2026-12-25": "Christmas Day",
		"2027-01-01": "New Year's Day",
	},
	"TW": {
		"2025-01-01": "New Year's Day",
		"2025-01-27": "Lunar New Year",
		"2025-01-28": "Lunar New Year",
		"2025-01-29": "Lunar New Year",
		"2025-01-30": "Lunar New Year",
		"2025-01-31": "Lunar New Year",
		"2025-02-28": "Peace Memorial Day",
		"2025-04-03": "Children's Day",
		"2025-04-04": "Tomb Sweeping Day",
		"2025-05-01": "Labour Day",
		"2025-05-30": "Dragon Boat Festival",
		"2025-10-06": "Mid-Autumn Festival",
		"2025-10-10": "National Day",
		"2026-01-01": "New Year's Day",
		"2026-02-16": "Lunar New Year",
		"2026-02-17": "Lunar New Year",
		"2026-02-18": "Lunar New Year",
		"2026-02-19": "Lunar New Year",
		"2026-02-20": "Lunar New Year",
		"2026-04-03": "Children's Day",
		"2026-04-06": "Tomb Sweeping Day",
		"2026-05-01": "Labour Day",
		"2026-06-19": "Dragon Boat Festival",
		"2026-09-25": "Mid-Autumn Festival",
		"2026-10-09": "National Day",
		"2027-01-01": "New Year's Day",
	},
	"CN": {
		"2025-01-01": "New Year's Day",
		"2025-01-28": "Chinese New Year",
		"2025-01-29": "Chinese New Year",
		"2025-01-30": "Chinese New Year",
		"2025-01-31": "Chinese New Year",
		"2025-02-03": "Chinese New Year",
		"2025-02-04": "Chinese New Year",
		"2025-04-04": "Qingming Festival",
		"2025-05-01": "Labor Day",
		"2025-05-02": "Labor Day",
		"2025-05-05": "Labor Day",
		"2025-06-02": "Dragon Boat Festival",
		"2025-10-01": "National Day",
		"2025-10-02": "National Day",
		"2025-10-03": "National Day",
		"2025-10-06": "National Day",
		"2025-10-07": "National Day",
		"2025-10-08": "National Day",
		"2026-01-01": "New Year's Day",
		"2026-01-02": "New Year's Day",
		"2026-02-16": "Chinese New Year",
		"2026-02-17": "Chinese New Year",
		"2026-02-18": "Chinese New Year",
		"2026-02-19": "Chinese New Year",
		"2026-02-20": "Chinese New Year",
		"2026-02-23": "Chinese New Year",
		"2026-02-24": "Chinese New Year",
		"2026-04-06": "Qingming Festival",
		"2026-05-01": "Labor Day",
		"2026-05-04": "Labor Day",
		"2026-05-05": "Labor Day",
		"2026-06-19": "Dragon Boat Festival",
		"2026-09-25": "Mid-Autumn Festival",
		"2026-10-01": "National Day",
		"2026-10-02": "National Day",
		"2026-10-05": "National Day",
		"2026-10-06": "National Day",
		"2026-10-07": "National Day",
		"2026-10-08": "National Day",
		"2027-01-01": "New Year's Day",
	},
}
