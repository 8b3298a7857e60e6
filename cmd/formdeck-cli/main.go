package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/formdeck/formdeck/internal/client"
	"github.com/formdeck/formdeck/pkg/renderers/tui"
)

func main() {
	serverURL := flag.String("server", "http://localhost:5000", "form service base URL")
	maxRetries := flag.Int("max-retries", 3, "how many times to re-ask rejected fields")
	flag.Parse()

	ctx := context.Background()
	c := client.New(*serverURL)

	s, err := c.Schema(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch form schema: %v", err)
	}

	fmt.Printf("%s\n", s.Title)
	if s.Description != "" {
		fmt.Printf("%s\n", s.Description)
	}
	fmt.Println()

	renderer := tui.New()
	values, err := renderer.Fill(ctx, s, nil, nil)
	if err != nil {
		exitOnPromptErr(err)
	}

	for attempt := 0; ; attempt++ {
		receipt, errs, err := c.Submit(ctx, values)
		if err != nil {
			log.Fatalf("Failed to submit: %v", err)
		}
		if len(errs) == 0 {
			fmt.Printf("\nSubmitted successfully!\n")
			fmt.Printf("  id:        %s\n", receipt.ID)
			fmt.Printf("  createdAt: %s\n", receipt.CreatedAt.Format("2006-01-02 15:04:05 MST"))
			return
		}
		if attempt >= *maxRetries {
			fmt.Fprintln(os.Stderr, "\nSubmission rejected:")
			for _, label := range sortedKeys(errs) {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", label, errs[label])
			}
			os.Exit(1)
		}

		fmt.Printf("\nThe server rejected %d field(s); please correct them.\n\n", len(errs))
		values, err = renderer.FillFields(ctx, s, sortedKeys(errs), values, errs)
		if err != nil {
			exitOnPromptErr(err)
		}
	}
}

func exitOnPromptErr(err error) {
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(os.Stderr, "Aborted.")
		os.Exit(130)
	}
	log.Fatalf("Prompt failed: %v", err)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
