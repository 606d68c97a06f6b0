package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/app"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/draft"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/recipient"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/domain/thread"
	"github.com/Ponta-English-Teacher/outlook-draft-builder/internal/logger"
	exportusecase "github.com/Ponta-English-Teacher/outlook-draft-builder/internal/usecase/export"
)

// テストで差し替える依存。
var newContainer = app.NewContainer

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "draftctl",
		Short:         "Build reply drafts from pasted mail threads",
		Long: `draftctl runs the draft pipeline from the command line.

It reads the pasted thread from a file or standard input and uses the same
configuration (.env, LLM_PROVIDER, API keys, SENDER_PROFILE_FILE) as the API server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.SetLevel(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newExtractCmd(), newDraftCmd(), newSplitCmd())
	return root
}

// --- extract ---

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "Show which part of a thread would be replied to",
		Long: `Cut the pasted thread at the first quoted header line and print the
reply target, the background and the cut reason. No generation service is called.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			ex := thread.Extract(raw)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cut-reason: %s\n", ex.CutReason)
			fmt.Fprintf(out, "--- reply target ---\n%s\n", ex.ReplyTarget)
			if ex.Cut() {
				fmt.Fprintf(out, "--- background ---\n%s\n", ex.Background)
			}
			return nil
		},
	}
}

// --- draft ---

type draftOptions struct {
	mode     string
	language string
	tone     string
	to       string
	purpose  string
	emlPath  string
	emlTo    string
	emlCc    string
}

func newDraftCmd() *cobra.Command {
	opts := &draftOptions{}
	cmd := &cobra.Command{
		Use:   "draft [file]",
		Short: "Generate a draft subject and body",
		Long: `Generate a draft through the configured generation service and print the
subject and body. In scratch mode the file may be omitted when --purpose is given.
With --eml the draft is also written as an .eml file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraft(cmd, args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.mode, "mode", string(draft.ModeReply), "reply or scratch")
	f.StringVar(&opts.language, "language", string(draft.LanguageJapanese), "Japanese, English or Bilingual")
	f.StringVar(&opts.tone, "tone", string(draft.ToneAdministrative), "Polite, Neutral or Administrative")
	f.StringVar(&opts.to, "to", "", `salutation target, e.g. "今枝さん/Ms. Imaeda"`)
	f.StringVar(&opts.purpose, "purpose", "", "what the message should achieve")
	f.StringVar(&opts.emlPath, "eml", "", "also write the draft to this .eml file")
	f.StringVar(&opts.emlTo, "eml-to", "", "To header for the .eml file")
	f.StringVar(&opts.emlCc, "eml-cc", "", "Cc header for the .eml file")
	return cmd
}

func runDraft(cmd *cobra.Command, args []string, opts *draftOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var text string
	if len(args) > 0 || draft.ParseMode(opts.mode) == draft.ModeReply {
		raw, err := readSource(cmd, args)
		if err != nil {
			return err
		}
		text = raw
	}

	container, err := newContainer(ctx)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	defer container.Close()

	out, err := container.DraftUsecase.Execute(ctx, &draft.Input{
		Mode:        opts.mode,
		RequestText: text,
		PurposeNote: opts.purpose,
		Language:    opts.language,
		Tone:        opts.tone,
		To:          opts.to,
	})
	if err != nil {
		return fmt.Errorf("generating draft: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Subject: %s\n\n%s\n", out.Response.Subject, out.Response.Body)
	fmt.Fprintf(cmd.ErrOrStderr(), "attempts=%d cut-reason=%s\n", out.Attempts, out.CutReason)

	if opts.emlPath == "" {
		return nil
	}
	exported, err := container.ExportUsecase.Execute(ctx, &exportusecase.Input{
		To:      opts.emlTo,
		Cc:      opts.emlCc,
		Subject: out.Response.Subject,
		Body:    out.Response.Body,
	})
	if err != nil {
		return fmt.Errorf("exporting draft: %w", err)
	}
	if err := os.WriteFile(opts.emlPath, exported.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.emlPath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", opts.emlPath)
	return nil
}

// --- split ---

func newSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split <to>",
		Short: "Show the local and foreign salutation targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := recipient.Split(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "local: %s\n", addr.Local)
			fmt.Fprintf(out, "foreign: %s\n", addr.Foreign)
			return nil
		},
	}
}

// readSource はファイル引数があればそれを、なければ標準入力を読む。
func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
