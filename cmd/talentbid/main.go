// TalentBid is a reverse hiring marketplace: employers place sealed salary
// bids on candidate profiles, candidates accept or reject them.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
