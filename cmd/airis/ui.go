package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

// verdictColor picks a color for action and status words shown to the user.
func verdictColor(word string) *color.Color {
	switch word {
	case "proceed", "ok", "cloned", "updated", "reinstalled":
		return okColor
	case "investigate", "warn", "exists":
		return warnColor
	default:
		return failColor
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
