package wealth

import (
	"fmt"
	"strings"
)

// TradeType is the side of a trade.
type TradeType int

const (
	// Buy adds shares to a position, its quantity and total are positive.
	Buy TradeType = iota
	// Sell removes shares from a position, its quantity and total are negative.
	Sell
)

func (t TradeType) String() string {
	switch t {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// sign returns +1 for Buy and -1 for Sell.
func (t TradeType) sign() int64 {
	if t == Sell {
		return -1
	}
	return 1
}

// ParseTradeType parses a string into a TradeType.
func ParseTradeType(s string) (TradeType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY", "B":
		return Buy, nil
	case "SELL", "S":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade type: %q", s)
	}
}
