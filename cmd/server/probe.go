package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/docwell/editor-server/internal/app"
	"github.com/docwell/editor-server/internal/modules/system/diagnostics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var probeTimeout time.Duration

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check OpenAI and Supabase credentials and exit",
	Long: `Runs the same checks as GET /api/test-openai and GET /api/test-supabase
concurrently and prints both reports as JSON. Exits non-zero when either
credential is missing or rejected.`,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 15*time.Second, "Overall probe timeout")
}

type probeResult struct {
	OpenAI   *diagnostics.OpenAIReport   `json:"openai"`
	Supabase *diagnostics.SupabaseReport `json:"supabase"`
}

func runProbe(cmd *cobra.Command, args []string) error {
	svc, err := app.NewProbe(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
	defer cancel()

	var out probeResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.OpenAI, _ = svc.TestOpenAI(gctx)
		return nil
	})
	g.Go(func() error {
		out.Supabase, _ = svc.TestSupabase(gctx)
		return nil
	})
	_ = g.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if !out.OpenAI.Valid || !out.Supabase.Valid {
		return errors.New("probe failed")
	}
	return nil
}
