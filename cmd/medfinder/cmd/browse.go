package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/medrelive/medfinder-backend/internal/search"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive search with live health tips",
	Long: "Reads one query per line. Tips load in the background and are printed only while their " +
		"query is still the latest one. Prefix a line with ? for suggestions; :q quits.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), application.Search, application.Enrichment)
	},
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func runBrowse(ctx context.Context, in io.Reader, out io.Writer, svc search.Service, tips tipSource) error {
	var (
		tracker search.Tracker
		wg      sync.WaitGroup
	)
	w := &lockedWriter{w: out}
	defer wg.Wait()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == ":q":
			return nil
		case strings.HasPrefix(line, "?"):
			for _, name := range svc.Suggest(ctx, strings.TrimPrefix(line, "?")) {
				fmt.Fprintf(w, "  %s\n", name)
			}
			continue
		}

		ticket := tracker.Begin(line)
		result, err := svc.Search(ctx, line)
		if err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		fmt.Fprint(w, formatResult(result))

		if tips == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			tip := tips.HealthTip(ctx, ticket.Query)
			tracker.Apply(ticket, func() {
				fmt.Fprintf(w, "tip [%s]: %s\n", ticket.Query, tip)
			})
		}()
	}
	return scanner.Err()
}
