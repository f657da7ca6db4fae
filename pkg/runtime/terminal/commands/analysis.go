package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	noExplain bool
	env       *Env
}

func NewAnalyzeCmd(env *Env) *cobra.Command {
	ac := &AnalyzeCmd{env: env}
	cmd := &cobra.Command{
		Use:   "analyze <dataset.csv>",
		Short: "Upload a dataset for quality analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().BoolVar(&ac.noExplain, "no-explain", false, "Skip the generated plain-language explanation")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	surface, _, err := ac.env.Connect(ctx)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	result, err := surface.Analyze(ctx, filepath.Base(args[0]), file, !ac.noExplain)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	// Keep the context bundle around so a later `finova chat` can
	// reference this analysis.
	if err := ac.env.SaveContext(result.ContextBundle); err != nil {
		fmt.Fprintf(ac.env.Output, "warning: could not save chat context: %v\n", err)
	}

	return ac.env.Reporter.RenderAnalysis(result)
}

type HistoryCmd struct {
	env *Env
}

func NewHistoryCmd(env *Env) *cobra.Command {
	hc := &HistoryCmd{env: env}
	return &cobra.Command{
		Use:   "history [id]",
		Short: "List past analyses, or show one in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE:  hc.run,
	}
}

func (hc *HistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	surface, _, err := hc.env.Connect(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("analysis id must be an integer, got %q", args[0])
		}

		detail, err := surface.HistoryDetail(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch analysis %d: %w", id, err)
		}
		return hc.env.Reporter.RenderHistoryDetail(detail)
	}

	entries, err := surface.History(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}
	return hc.env.Reporter.RenderHistory(entries)
}

type TrendCmd struct {
	env *Env
}

func NewTrendCmd(env *Env) *cobra.Command {
	tc := &TrendCmd{env: env}
	return &cobra.Command{
		Use:   "trend",
		Short: "Show score movement across past analyses",
		RunE:  tc.run,
	}
}

func (tc *TrendCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	surface, _, err := tc.env.Connect(ctx)
	if err != nil {
		return err
	}

	report, err := surface.Trend(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch trend: %w", err)
	}
	return tc.env.Reporter.RenderTrend(report)
}

type ChatCmd struct {
	noContext bool
	env       *Env
}

func NewChatCmd(env *Env) *cobra.Command {
	cc := &ChatCmd{env: env}
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Ask a follow-up question about the last analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.run,
	}

	cmd.Flags().BoolVar(&cc.noContext, "no-context", false, "Do not attach the last analysis context")

	return cmd
}

func (cc *ChatCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	surface, _, err := cc.env.Connect(ctx)
	if err != nil {
		return err
	}

	var bundle map[string]interface{}
	if !cc.noContext {
		bundle = cc.env.LoadContext()
	}

	resp, err := surface.Chat(ctx, args[0], bundle)
	if err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}

	fmt.Fprintln(cc.env.Output, resp.Response)
	return nil
}

type HealthCmd struct {
	env *Env
}

func NewHealthCmd(env *Env) *cobra.Command {
	hc := &HealthCmd{env: env}
	return &cobra.Command{
		Use:   "health",
		Short: "Check the remote engine",
		RunE:  hc.run,
	}
}

func (hc *HealthCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	surface, _, err := hc.env.Connect(ctx)
	if err != nil {
		return err
	}

	status, err := surface.Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return hc.env.Reporter.RenderHealth(status)
}
