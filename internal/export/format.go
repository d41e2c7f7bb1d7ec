package export

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// fmtFloat renders x as the shortest string that round-trips, always with a
// decimal point, switching to exponent form below 1e-4 and from 1e16 up.
// 5.0 -> "5.0", 0.000691 -> "0.000691", 0.0000691 -> "6.91e-05".
func fmtFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return ""
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(x, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func fmtInt(n int) string {
	return strconv.Itoa(n)
}

func fmtClock(t time.Time) string {
	return t.Format("15:04:05")
}

// fmtTenths renders a duration as "MM:SS.t", the cycler's step-time notation.
func fmtTenths(d time.Duration) string {
	tenths := d.Round(100*time.Millisecond) / (100 * time.Millisecond)
	minutes := tenths / 600
	rest := tenths % 600
	return pad2(int(minutes)) + ":" + pad2(int(rest/10)) + "." + strconv.Itoa(int(rest%10))
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
