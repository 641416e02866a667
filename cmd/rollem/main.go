package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	diceService "github.com/KirkDiggler/rollem/internal/services/dice"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	dist := flag.Bool("dist", false, "print the exact distribution instead of rolling")
	seed := flag.Int64("seed", 0, "fixed random seed (0 seeds from the clock)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rollem [-dist] [-seed n] <expression>")
		os.Exit(2)
	}
	expression := flag.Arg(0)

	svc, err := diceService.NewService(&diceService.Config{
		Seed:              *seed,
		MaxRolls:          getEnvInt("ROLLEM_MAX_ROLLS", 0),
		MaxDiceUnits:      getEnvInt("ROLLEM_MAX_DICE_UNITS", 0),
		MaxOperationUnits: getEnvInt("ROLLEM_MAX_OP_UNITS", 0),
	})
	if err != nil {
		log.Fatalf("Failed to create dice service: %v", err)
	}

	ctx := context.Background()

	if *dist {
		output, err := svc.Distribution(ctx, &diceService.DistributionInput{
			Expression: expression,
		})
		if err != nil {
			log.Fatalf("Failed to compute distribution: %v", err)
		}

		for _, outcome := range output.Distribution.Outcomes() {
			fmt.Printf("%s\t%.6f\n", formatNumber(outcome), output.Distribution.Get(outcome))
		}
		fmt.Printf("mean=%.4f stddev=%.4f\n", output.Mean, output.StdDev)
		return
	}

	output, err := svc.Roll(ctx, &diceService.RollInput{Expression: expression})
	if err != nil {
		log.Fatalf("Failed to roll: %v", err)
	}

	fmt.Printf("%s = %s = %s\n", output.Roll.Expression, output.Roll.Display, formatNumber(output.Roll.Total))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// getEnvInt reads an integer environment variable, falling back when unset
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return n
}
