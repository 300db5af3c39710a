package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/flexprice/quoter/scripts/internal"
	"github.com/joho/godotenv"
)

// Command represents a script that can be run
type Command struct {
	Name        string
	Description string
	Run         func() error
}

var commands = []Command{
	{
		Name:        "validate-catalog",
		Description: "Fetch and ingest every module catalog from the configured source, reporting malformed records",
		Run:         internal.ValidateCatalog,
	},
	{
		Name:        "export-catalog",
		Description: "Fetch every module catalog from the configured source and write it as a catalog file",
		Run:         internal.ExportCatalog,
	},
}

func main() {
	_ = godotenv.Load()

	var (
		listCommands bool
		cmdName      string
		outFile      string
		strict       bool
	)

	flag.BoolVar(&listCommands, "list", false, "List all available commands")
	flag.StringVar(&cmdName, "cmd", "", "Command to run")
	flag.StringVar(&outFile, "out", "", "Output file for export-catalog, stdout when empty")
	flag.BoolVar(&strict, "strict", false, "Reject catalogs with malformed metadata")

	flag.Parse()

	if listCommands {
		fmt.Println("Available commands:")
		for _, cmd := range commands {
			fmt.Printf("  %-20s %s\n", cmd.Name, cmd.Description)
		}
		return
	}

	if cmdName == "" {
		log.Fatal("Please specify a command to run using -cmd flag. Use -list to see available commands.")
	}

	// Set command-specific environment variables
	if outFile != "" {
		os.Setenv("CATALOG_OUT", outFile)
	}
	if strict {
		os.Setenv("QUOTER_CATALOG_STRICT_METADATA", "true")
	}

	for _, cmd := range commands {
		if cmd.Name == cmdName {
			if err := cmd.Run(); err != nil {
				log.Fatalf("Error running command %s: %v", cmdName, err)
			}
			return
		}
	}

	log.Fatalf("Unknown command: %s. Use -list to see available commands.", cmdName)
}
