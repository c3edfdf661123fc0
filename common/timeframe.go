package common

// 各交易所K线周期映射表，键为统一周期标识

// BitmaxTimeframes bitmax K线周期映射
var BitmaxTimeframes = map[string]string{
	"1m":  "1",
	"3m":  "3",
	"5m":  "5",
	"15m": "15",
	"30m": "30",
	"1h":  "60",
	"2h":  "120",
	"4h":  "240",
	"6h":  "360",
	"12h": "720",
	"1d":  "1d",
	"1w":  "1w",
	"1M":  "1m",
}

// KkexTimeframes kkex K线周期映射
var KkexTimeframes = map[string]string{
	"1m":  "1min",
	"5m":  "5min",
	"15m": "15min",
	"30m": "30min",
	"1h":  "1hour",
	"8h":  "12hour",
	"12h": "12hour",
	"1d":  "day",
	"1w":  "1week",
}

// XenaTimeframes xena K线周期映射
var XenaTimeframes = map[string]string{
	"1m":  "1m",
	"5m":  "5m",
	"15m": "15m",
	"30m": "30m",
	"1h":  "1h",
	"4h":  "4h",
	"12h": "12h",
	"1d":  "1d",
	"1w":  "1w",
}

// ResolveTimeframe 查询交易所周期标识，不支持时返回 false
func ResolveTimeframe(table map[string]string, timeframe string) (string, bool) {
	v, ok := table[timeframe]
	return v, ok
}
