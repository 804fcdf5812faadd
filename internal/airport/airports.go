package airport

// canadianAirports is the embedded table of departure airports covered by APPR.
// It is read once by Default and never mutated.
var canadianAirports = []Entry{
	// Major international
	{Code: "YYZ", Name: "Toronto Pearson International Airport"},
	{Code: "YVR", Name: "Vancouver International Airport"},
	{Code: "YUL", Name: "Montreal-Pierre Elliott Trudeau International Airport"},
	{Code: "YYC", Name: "Calgary International Airport"},
	{Code: "YWG", Name: "Winnipeg James Armstrong Richardson International Airport"},
	{Code: "YOW", Name: "Ottawa Macdonald-Cartier International Airport"},
	{Code: "YHZ", Name: "Halifax Stanfield International Airport"},
	{Code: "YEG", Name: "Edmonton International Airport"},
	{Code: "YQB", Name: "Quebec City Jean Lesage International Airport"},
	{Code: "YXE", Name: "Saskatoon John G. Diefenbaker International Airport"},

	// Regional
	{Code: "YYJ", Name: "Victoria International Airport"},
	{Code: "YKF", Name: "Kitchener/Waterloo Regional Airport"},
	{Code: "YHM", Name: "John C. Munro Hamilton International Airport"},
	{Code: "YFB", Name: "Iqaluit Airport"},
	{Code: "YXY", Name: "Whitehorse International Airport"},
	{Code: "YZF", Name: "Yellowknife Airport"},
	{Code: "YQR", Name: "Regina International Airport"},
	{Code: "YQT", Name: "Thunder Bay International Airport"},
	{Code: "YSJ", Name: "Saint John Airport"},
	{Code: "YFC", Name: "Fredericton International Airport"},
	{Code: "YQM", Name: "Greater Moncton Roméo LeBlanc International Airport"},
	{Code: "YQX", Name: "Gander International Airport"},
	{Code: "YYT", Name: "St. John's International Airport"},
	{Code: "YXU", Name: "London International Airport"},
	{Code: "YKA", Name: "Kamloops Airport"},
	{Code: "YPG", Name: "Prince George Airport"},
	{Code: "YQU", Name: "Grande Prairie Airport"},
	{Code: "YMM", Name: "Fort McMurray Airport"},
	{Code: "YLW", Name: "Kelowna International Airport"},
	{Code: "YXS", Name: "Prince Albert Glass Field"},
	{Code: "YBR", Name: "Brandon Municipal Airport"},
	{Code: "YTS", Name: "Timmins Victor M. Power Airport"},
	{Code: "YSB", Name: "Sudbury Airport"},
	{Code: "YAM", Name: "Sault Ste. Marie Airport"},
	{Code: "YQK", Name: "Kenora Airport"},
	{Code: "YZP", Name: "Sandspit Airport"},
	{Code: "YCD", Name: "Nanaimo Airport"},
	{Code: "YCA", Name: "Courtenay Airfield"},
	{Code: "YPW", Name: "Powell River Airport"},
	{Code: "YXJ", Name: "Fort St. John Airport"},
	{Code: "YDQ", Name: "Dawson Creek Regional Airport"},
	{Code: "YFO", Name: "Flin Flon Airport"},
	{Code: "YTH", Name: "Thompson Airport"},
	{Code: "YCG", Name: "Castlegar/West Kootenay Regional Airport"},
	{Code: "YXC", Name: "Cranbrook Airport"},

	// Northern and remote
	{Code: "YUX", Name: "Hall Beach Airport"},
	{Code: "YRT", Name: "Rankin Inlet Airport"},
	{Code: "YBK", Name: "Baker Lake Airport"},
	{Code: "YGZ", Name: "Grise Fiord Airport"},
	{Code: "YEV", Name: "Inuvik Mike Zubko Airport"},
	{Code: "YAT", Name: "Attawapiskat Airport"},
	{Code: "YMO", Name: "Moosonee Airport"},
	{Code: "YPH", Name: "Inukjuak Airport"},
	{Code: "YWP", Name: "Webequie Airport"},
	{Code: "YHO", Name: "Hopedale Airport"},
	{Code: "YHR", Name: "Happy Valley-Goose Bay Airport"},
	{Code: "YER", Name: "Fort Severn Airport"},
	{Code: "YZS", Name: "Coral Harbour Airport"},
}
