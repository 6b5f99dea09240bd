package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/conversn-io/seniorsimple-sub003/internal/calculation"
	"github.com/shopspring/decimal"
)

// Prints the RMD-only drawdown of a traditional balance, one row per year.
func main() {
	balance := flag.String("balance", "500000", "starting traditional balance")
	age := flag.Int("age", 73, "age in the first year")
	years := flag.Int("years", 20, "number of years to print")
	startAge := flag.Int("start-age", calculation.DefaultRMDStartAge, "age RMDs begin")
	flag.Parse()

	bal, err := decimal.NewFromString(*balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid balance %q: %v\n", *balance, err)
		os.Exit(1)
	}

	rmd := calculation.NewRMDCalculator(*startAge)
	fmt.Printf("%-4s %12s %8s %12s %12s\n", "Age", "Begin", "Divisor", "RMD", "End")
	for _, row := range rmd.ProjectRMDSchedule(bal, *age, *years) {
		divisor := "-"
		if !row.Divisor.IsZero() {
			divisor = row.Divisor.StringFixed(1)
		}
		fmt.Printf("%-4d %12s %8s %12s %12s\n", row.Age,
			row.BeginningBalance.StringFixed(2), divisor,
			row.Distribution.StringFixed(2), row.EndingBalance.StringFixed(2))
	}
}
