// Command batchgen generates invoice documents from the batch workbook,
// one spreadsheet row per prompt.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/smallbiznis/invoicesmith/internal/config"
	"github.com/smallbiznis/invoicesmith/internal/logger"
	"github.com/smallbiznis/invoicesmith/internal/materialize"
	"github.com/smallbiznis/invoicesmith/internal/spreadsheet"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	m := materialize.New(cfg.TemplateDir, cfg.OutputDir, log)
	ctx := context.Background()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Enter the invoice row number (or type 'exit' to quit): ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(input, "exit") {
			break
		}
		if input == "" {
			fmt.Println("Please enter a row number.")
			continue
		}
		rowNum, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("Invalid row number %q.\n", input)
			continue
		}

		rec, err := spreadsheet.ReadRecord(cfg.WorkbookPath, rowNum)
		if err != nil {
			fmt.Printf("An error occurred: %v\n", err)
			continue
		}

		res, err := m.Materialize(ctx, rec)
		if err != nil {
			fmt.Printf("An error occurred: %v\n", err)
			continue
		}
		if !res.Created {
			fmt.Printf("File %q already exists.\n", res.Filename)
			continue
		}
		fmt.Printf("Invoice created: %q\n", res.Filename)
	}
}
