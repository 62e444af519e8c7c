package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/patrickprogramme/ytscribe/internal/app"
	"github.com/patrickprogramme/ytscribe/internal/fsutil"
	"github.com/patrickprogramme/ytscribe/internal/gemini"
	"github.com/patrickprogramme/ytscribe/internal/ytdlp"
)

func newExtractCommand(configFlag *string) *cobra.Command {
	var (
		outputDir    string
		noTimestamps bool
		noSummary    bool
		summaryLang  string
		toClipboard  bool
	)

	cmd := &cobra.Command{
		Use:   "extract <url|video-id>",
		Short: "Télécharge le transcript d'une vidéo et l'écrit en markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if noTimestamps {
				cfg.IncludeTimestamps = false
			}

			hint, err := gemini.ParseHint(summaryLang)
			if err != nil {
				return err
			}

			// vérifier yt-dlp avant de promettre quoi que ce soit
			yt := ytdlp.New(cfg.YtDlp.ResolvedPath)
			if err := yt.CheckBinary(); err != nil {
				return err
			}

			gem := gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model,
				time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := app.Options{
				IncludeTimestamps: cfg.IncludeTimestamps,
				GenerateSummary:   !noSummary && gem.Enabled(),
				SummaryHint:       hint,
			}

			pipeline := app.New(cfg, yt, gem)
			res, err := pipeline.Run(ctx, args[0], opts, func(step string) {
				fmt.Println(step)
			})
			if err != nil {
				return err
			}

			fmt.Printf("Piste retenue : %s\n", res.Selection)

			base := fsutil.SanitizeFilename(res.Meta.Title)
			outPath := filepath.Join(cfg.OutputDir, base+".md")
			if err := fsutil.WriteFileAtomic(outPath, []byte(res.Markdown), 0o644); err != nil {
				return fmt.Errorf("écriture du transcript : %w", err)
			}
			fmt.Printf("Transcript écrit : %s\n", outPath)

			if res.Summary != "" {
				sumPath := filepath.Join(cfg.OutputDir, base+" - Summary.md")
				if err := fsutil.WriteFileAtomic(sumPath, []byte(res.Summary), 0o644); err != nil {
					return fmt.Errorf("écriture du résumé : %w", err)
				}
				fmt.Printf("Résumé écrit : %s\n", sumPath)
			}
			if res.SummaryErr != nil {
				fmt.Fprintf(os.Stderr, "attention : résumé indisponible : %v\n", res.SummaryErr)
			}

			if toClipboard {
				if err := clipboard.WriteAll(res.Markdown); err != nil {
					fmt.Fprintf(os.Stderr, "attention : copie dans le presse-papiers impossible : %v\n", err)
				} else {
					fmt.Println("Transcript copié dans le presse-papiers.")
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "répertoire de sortie (défaut : config)")
	cmd.Flags().BoolVar(&noTimestamps, "no-timestamps", false, "omettre les horodatages de paragraphe")
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "ne pas générer de résumé même si une clé API est configurée")
	cmd.Flags().StringVar(&summaryLang, "summary-lang", "auto", "langue du résumé : auto, en ou ja")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copier aussi le transcript dans le presse-papiers")

	return cmd
}
