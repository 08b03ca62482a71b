package universe

// curatedMembers is the last-resort universe when both the cache and
// the live scrape are unavailable. Large, liquid names across sectors;
// enough to exercise the whole pipeline offline.
func curatedMembers() []Member {
	return []Member{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Information Technology"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Information Technology"},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Communication Services"},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Discretionary"},
		{Symbol: "BRK-B", Name: "Berkshire Hathaway Inc.", Sector: "Financials"},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financials"},
		{Symbol: "V", Name: "Visa Inc.", Sector: "Financials"},
		{Symbol: "MA", Name: "Mastercard Incorporated", Sector: "Financials"},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Health Care"},
		{Symbol: "UNH", Name: "UnitedHealth Group Incorporated", Sector: "Health Care"},
		{Symbol: "ABBV", Name: "AbbVie Inc.", Sector: "Health Care"},
		{Symbol: "PG", Name: "Procter & Gamble Company", Sector: "Consumer Staples"},
		{Symbol: "KO", Name: "Coca-Cola Company", Sector: "Consumer Staples"},
		{Symbol: "PEP", Name: "PepsiCo Inc.", Sector: "Consumer Staples"},
		{Symbol: "COST", Name: "Costco Wholesale Corporation", Sector: "Consumer Staples"},
		{Symbol: "XOM", Name: "Exxon Mobil Corporation", Sector: "Energy"},
		{Symbol: "CVX", Name: "Chevron Corporation", Sector: "Energy"},
		{Symbol: "HD", Name: "Home Depot Inc.", Sector: "Consumer Discretionary"},
		{Symbol: "MCD", Name: "McDonald's Corporation", Sector: "Consumer Discretionary"},
		{Symbol: "NKE", Name: "NIKE Inc.", Sector: "Consumer Discretionary"},
		{Symbol: "CAT", Name: "Caterpillar Inc.", Sector: "Industrials"},
		{Symbol: "UNP", Name: "Union Pacific Corporation", Sector: "Industrials"},
		{Symbol: "HON", Name: "Honeywell International Inc.", Sector: "Industrials"},
		{Symbol: "LIN", Name: "Linde plc", Sector: "Materials"},
		{Symbol: "SHW", Name: "Sherwin-Williams Company", Sector: "Materials"},
		{Symbol: "NEE", Name: "NextEra Energy Inc.", Sector: "Utilities"},
		{Symbol: "DUK", Name: "Duke Energy Corporation", Sector: "Utilities"},
		{Symbol: "PLD", Name: "Prologis Inc.", Sector: "Real Estate"},
		{Symbol: "AMT", Name: "American Tower Corporation", Sector: "Real Estate"},
		{Symbol: "VZ", Name: "Verizon Communications Inc.", Sector: "Communication Services"},
	}
}
