package config

import "UptrendScanner/internal/model"

// DefaultCategories is the selection used when scan.categories is not set.
var DefaultCategories = []string{"sp500_mega_cap", "tech_leaders"}

// DefaultUniverse returns the built-in symbol universe.
func DefaultUniverse() model.Universe {
	return model.Universe{
		{Key: "sp500_mega_cap", Label: "S&P 500 Mega Cap", Symbols: []string{
			"NVDA", "MSFT", "AAPL", "GOOGL", "GOOG", "AMZN", "META", "TSLA", "BRK.B", "AVGO",
			"LLY", "WMT", "JPM", "UNH", "XOM", "ORCL", "MA", "COST", "HD", "PG",
			"NFLX", "JNJ", "BAC", "CRM", "ABBV", "CVX", "KO", "AMD", "PEP", "TMO",
			"MRK", "WFC", "LIN", "CSCO", "ACN", "DIS", "ABT", "VZ", "ADBE", "DHR",
			"TXN", "PM", "CMCSA", "INTC", "NKE", "PFE", "COP", "NOW", "QCOM", "SPGI",
		}},
		{Key: "sp500_large_cap", Label: "S&P 500 Large Cap", Symbols: []string{
			"AMAT", "CAT", "INTU", "UNP", "GE", "BKNG", "T", "LOW", "TJX", "PLD",
			"UBER", "AXP", "UPS", "RTX", "BMY", "ISRG", "MS", "SCHW", "NEE", "HON",
			"MU", "BLK", "SYK", "ELV", "DE", "AMGN", "LMT", "PGR", "VRTX", "ADI",
			"IBM", "GILD", "MDLZ", "TGT", "CI", "CB", "BSX", "SO", "REGN", "CL",
			"TMUS", "PYPL", "PANW", "LRCX", "AON", "CME", "ITW", "SHW", "ZTS", "APH",
		}},
		{Key: "sp500_mid_cap", Label: "S&P 500 Mid Cap", Symbols: []string{
			"CDNS", "SNPS", "MMC", "CSX", "PNC", "ICE", "APD", "WM", "ORLY", "FCX",
			"KLAC", "TFC", "F", "ECL", "NSC", "USB", "GM", "EMR", "MCO", "HCA",
			"DUK", "EOG", "FDX", "WELL", "GD", "TDG", "SLB", "PSA", "AJG", "BDX",
			"CARR", "OXY", "ADSK", "EW", "TRV", "PCAR", "ROP", "NXPI", "CMG", "CNC",
			"NOC", "AFL", "JCI", "O", "AEP", "ROST", "SRE", "PAYX", "EXC", "KMB",
		}},
		{Key: "sp500_small_cap", Label: "S&P 500 Small Cap", Symbols: []string{
			"FAST", "CTAS", "EA", "ODFL", "KR", "AMT", "BK", "GLW", "VRSK", "A",
			"DOW", "CTSH", "IT", "FANG", "VMC", "EXR", "MCHP", "SPG", "GWW", "XEL",
			"DD", "WY", "VICI", "KMI", "MSCI", "HPQ", "PWR", "CPRT", "IQV", "MPWR",
			"DXCM", "YUM", "ANSS", "GEHC", "IDXX", "CMI", "GRMN", "RMD", "ED", "WTW",
			"ROK", "OTIS", "IR", "ALL", "FICO", "EFX", "ACGL", "TRGP", "HSY", "HIG",
		}},
		{Key: "nasdaq_growth", Label: "NASDAQ Growth", Symbols: []string{
			"QQQ", "SQQQ", "TQQQ", "ARKK", "ARKQ", "ARKG", "SHOP", "ROKU", "ZM", "DOCU",
			"SNOW", "CRWD", "OKTA", "DDOG", "NET", "FSLY", "TWLO", "PLTR", "COIN", "HOOD",
			"RBLX", "U", "PATH", "DASH", "ABNB", "PINS", "SNAP", "SPOT", "SQ", "PYPL",
		}},
		{Key: "nyse_industrials", Label: "NYSE Industrials", Symbols: []string{
			"BA", "MMM", "GS", "MCD", "IBM", "DIS", "DD", "CAT", "XOM", "CVX",
			"PG", "JNJ", "KO", "MRK", "PFE", "WMT", "T", "VZ", "NKE", "HD",
			"BAC", "C", "JPM", "WFC", "USB", "PNC", "TFC", "COF", "AXP", "BLK",
		}},
		{Key: "tech_leaders", Label: "Tech Leaders", Symbols: []string{
			"NVDA", "MSFT", "AAPL", "GOOGL", "META", "TSLA", "AMZN", "NFLX", "CRM", "ORCL",
			"AMD", "INTC", "QCOM", "AVGO", "TXN", "ADI", "LRCX", "KLAC", "AMAT", "MU",
		}},
		{Key: "biotech_pharma", Label: "Biotech/Pharma", Symbols: []string{
			"LLY", "JNJ", "PFE", "ABBV", "MRK", "TMO", "ABT", "DHR", "BMY", "AMGN",
			"GILD", "VRTX", "REGN", "ZTS", "BDX", "EW", "SYK", "BSX", "ISRG", "DXCM",
		}},
		{Key: "financial_services", Label: "Financial Services", Symbols: []string{
			"BRK.B", "JPM", "BAC", "WFC", "GS", "MS", "C", "USB", "PNC", "TFC",
			"SCHW", "BLK", "SPGI", "ICE", "CME", "MCO", "AON", "MMC", "AJG", "CB",
		}},
		{Key: "energy_utilities", Label: "Energy/Utilities", Symbols: []string{
			"XOM", "CVX", "COP", "EOG", "SLB", "OXY", "FANG", "KMI", "TRGP", "FCX",
			"NEE", "SO", "DUK", "AEP", "EXC", "XEL", "ED", "SRE", "D", "NGG",
		}},
		{Key: "consumer_retail", Label: "Consumer/Retail", Symbols: []string{
			"WMT", "COST", "HD", "LOW", "TGT", "TJX", "NKE", "SBUX", "MCD", "CMG",
			"YUM", "KR", "DG", "DLTR", "WBA", "CVS", "ROST", "ORLY", "AZO", "AAP",
		}},
		{Key: "stocks_global", Label: "Global Stocks", Symbols: []string{
			"ASML", "TSM", "BABA", "TM", "NVO", "NESN.SW", "MC.PA", "OR.PA", "SAP", "UL",
		}},
		{Key: "etfs", Label: "ETFs", Symbols: []string{
			"SPY", "QQQ", "IWM", "EFA", "EEM", "VTI", "VEA", "IEFA", "VWO", "AGG",
		}},
		{Key: "crypto", Label: "Crypto", Symbols: []string{
			"BTC-USD", "ETH-USD", "BNB-USD", "ADA-USD", "SOL-USD", "DOT-USD", "AVAX-USD", "MATIC-USD", "LINK-USD", "UNI-USD",
		}},
		{Key: "forex", Label: "Forex", Symbols: []string{
			"EURUSD=X", "GBPUSD=X", "USDJPY=X", "AUDUSD=X", "USDCAD=X", "USDCHF=X", "NZDUSD=X", "EURGBP=X", "EURJPY=X", "GBPJPY=X",
		}},
	}
}
