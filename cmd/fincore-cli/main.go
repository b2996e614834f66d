// Command fincore-cli is a small command-line driver for the fincore
// engine (SPEC_FULL.md A.4), adapted from the teacher's
// cmd/amortization/main.go: it builds a schedule from flags and prints the
// resulting payment table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore"
)

func main() {
	mode := flag.String("mode", "bullet", "schedule mode: bullet, jm, price")
	principal := flag.String("principal", "1000", "loan principal")
	apy := flag.String("apy", "0.10", "annual percentage yield, as a pure rate (0.10 = 10%)")
	zeroDateStr := flag.String("zero-date", "2022-01-01", "origination date, YYYY-MM-DD")
	term := flag.Int("term", 12, "term, in 30-day installments")
	cap := flag.String("cap", "", "capitalisation override: 360, 365, 30360 (defaults per mode)")
	flag.Parse()

	principalD, err := decimal.NewFromString(*principal)
	if err != nil {
		log.Fatalf("invalid -principal: %v", err)
	}
	apyD, err := decimal.NewFromString(*apy)
	if err != nil {
		log.Fatalf("invalid -apy: %v", err)
	}
	zeroDate, err := time.Parse("2006-01-02", *zeroDateStr)
	if err != nil {
		log.Fatalf("invalid -zero-date: %v", err)
	}

	var payments []fincore.Payment
	switch *mode {
	case "bullet":
		payments, err = fincore.GetBulletPayments(fincore.BulletRequest{
			ZeroDate: zeroDate, Term: *term, Principal: principalD, APY: apyD,
			Cap: resolveCap(*cap, fincore.Cap360),
		})
	case "jm":
		payments, err = fincore.GetJMPayments(fincore.JMRequest{
			ZeroDate: zeroDate, Term: *term, Principal: principalD, APY: apyD,
			Cap: resolveCap(*cap, fincore.Cap30360),
		})
	case "price":
		payments, err = fincore.GetPricePayments(fincore.PriceRequest{
			ZeroDate: zeroDate, Term: *term, Principal: principalD, APY: apyD,
			Cap: resolveCap(*cap, fincore.Cap30360),
		})
	default:
		log.Fatalf("unknown -mode: %s (want bullet, jm, or price)", *mode)
	}
	if err != nil {
		log.Fatalf("computation failed: %v", err)
	}

	printTable(payments)
}

func resolveCap(flagVal string, fallback fincore.Capitalisation) fincore.Capitalisation {
	switch flagVal {
	case "360":
		return fincore.Cap360
	case "365":
		return fincore.Cap365
	case "30360":
		return fincore.Cap30360
	default:
		return fallback
	}
}

func printTable(payments []fincore.Payment) {
	fmt.Fprintf(os.Stdout, "%-4s %-12s %12s %12s %12s %12s %12s %12s\n",
		"no", "date", "raw", "tax", "net", "gain", "amort", "bal")
	for _, p := range payments {
		fmt.Fprintf(os.Stdout, "%-4d %-12s %12s %12s %12s %12s %12s %12s\n",
			p.No, p.Date.Format("2006-01-02"),
			p.Raw.StringFixed(2), p.Tax.StringFixed(2), p.Net.StringFixed(2),
			p.Gain.StringFixed(2), p.Amort.StringFixed(2), p.Bal.StringFixed(2))
	}
}
