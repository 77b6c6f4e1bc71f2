package main

import (
	"html/template"
	"math"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func FormatUnixTime(unixTime int64, formatStr string) string {
	if unixTime == 0 {
		return ""
	}
	if formatStr == "" {
		formatStr = "Jan 2 15:04 MST 2006"
	}

	EasternTZ, _ := time.LoadLocation("America/New_York")
	realDate := time.Unix(unixTime, 0).In(EasternTZ)
	return realDate.Format(formatStr)
}

// UnixToDateStr turns a unix timestamp into the market date it belongs to,
// in Eastern time, since that is the exchange's clock.
func UnixToDateStr(unixTime int64) string {
	EasternTZ, _ := time.LoadLocation("America/New_York")
	return time.Unix(unixTime, 0).In(EasternTZ).Format(dateKeyFormat)
}

func isMarketOpen() bool {
	EasternTZ, _ := time.LoadLocation("America/New_York")
	currentDate := time.Now().In(EasternTZ)
	timeStr := currentDate.Format("1504")
	weekday := currentDate.Weekday()

	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}
	if timeStr >= "0930" && timeStr < "1600" {
		return true
	}

	return false
}

func PriceDiffAmt(a, b float64) float64 {
	return b - a
}

func PriceDiffPercAmt(a, b float64) float64 {
	return (b - a) / a * 100
}

func PriceMoveColorCSS(amt float64) string {
	if amt > 0 {
		return "text-success"
	}
	if amt < 0 {
		return "text-danger"
	}
	return ""
}

func PriceMoveIndicatorCSS(amt float64) string {
	if amt > 0 {
		return "text-success fas fa-arrow-up"
	}
	if amt < 0 {
		return "text-danger fas fa-arrow-down"
	}
	return "fa-solid fa-equals"
}

// CorrelationColorCSS colors a correlation by strength and sign: strong
// positive green, strong negative red, middling yellow.
func CorrelationColorCSS(r float64) string {
	switch {
	case r >= 0.7:
		return "text-success"
	case r <= -0.7:
		return "text-danger"
	case math.Abs(r) >= 0.4:
		return "text-warning"
	default:
		return "text-white"
	}
}

// BetaColorCSS flags betas that move against or well beyond the benchmark.
func BetaColorCSS(beta float64) string {
	if beta < 0 {
		return "text-danger"
	}
	if beta > 1.5 {
		return "text-warning"
	}
	return "text-white"
}

// templateFuncs is the FuncMap handed to every parsed template. The Number*
// helpers group thousands the way an en-US reader expects.
func templateFuncs() template.FuncMap {
	printer := message.NewPrinter(language.English)

	return template.FuncMap{
		"FormatUnixTime":        FormatUnixTime,
		"PriceDiffAmt":          PriceDiffAmt,
		"PriceDiffPercAmt":      PriceDiffPercAmt,
		"PriceMoveColorCSS":     PriceMoveColorCSS,
		"PriceMoveIndicatorCSS": PriceMoveIndicatorCSS,
		"CorrelationColorCSS":   CorrelationColorCSS,
		"BetaColorCSS":          BetaColorCSS,
		"ToUpper":               strings.ToUpper,
		"NumberInt": func(n int64) string {
			return printer.Sprintf("%d", n)
		},
		"NumberFloat": func(f float64) string {
			return printer.Sprintf("%.2f", f)
		},
		"NumberFloat4": func(f float64) string {
			return printer.Sprintf("%.4f", f)
		},
		"NumberPercent": func(f float64) string {
			return printer.Sprintf("%.2f%%", f)
		},
	}
}

// random string of bytes, use in nonce values, for example
//   https://stackoverflow.com/questions/22892120/how-to-generate-a-random-string-of-a-fixed-length-in-go
const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
const (
	letterIdxBits = 6                    // 6 bits to represent a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // All 1-bits, as many as letterIdxBits
	letterIdxMax  = 63 / letterIdxBits   // # of letter indices fitting in 63 bits
)

func RandStringMask(n int) string {
	b := make([]byte, n)
	for i := 0; i < n; {
		if idx := int(rand.Int63() & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i++
		}
	}
	return string(b)
}
