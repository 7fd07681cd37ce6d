// Command tunegrab is the headless counterpart of the GUI: it runs the same
// download pipeline against a URL passed on the command line and prints
// pipeline events to the terminal.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tunegrab/tunegrab/internal/config"
	"github.com/tunegrab/tunegrab/internal/convert"
	"github.com/tunegrab/tunegrab/internal/download"
	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

var (
	statusColor  = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
)

func main() {
	root := rootCmd()
	root.AddCommand(convertCmd())

	if err := root.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootCmd downloads a playlist or single video URL as MP3 files
func rootCmd() *cobra.Command {
	var (
		outputDir    string
		quality      string
		workers      int
		retries      int
		skipExisting bool
		browser      string
		noCookies    bool
	)

	settings := config.Defaults()
	if store, err := config.DefaultStore(); err == nil {
		settings = store.Load()
	}

	cmd := &cobra.Command{
		Use:           "tunegrab <url>",
		Short:         "Download a playlist or video as MP3 files",
		Long:          "TuneGrab downloads every entry of a playlist URL (or a single video URL) and converts it to MP3 in the output directory.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if !platform.IsSupportedURL(url) {
				return fmt.Errorf("unsupported URL %q: expected an http(s) link", url)
			}

			q := model.Quality(quality)
			if !q.IsValid() {
				return fmt.Errorf("unsupported quality %q: choose one of 128, 192, 256, 320", quality)
			}

			job := model.NewJob(url, outputDir, q)
			job.SkipExisting = skipExisting
			if workers >= config.MinWorkers && workers <= config.MaxWorkers {
				job.Workers = workers
			}
			if retries > 0 {
				job.MaxAttempts = retries
			}

			switch {
			case noCookies:
			case browser != "":
				job.CookieBrowser = browser
			default:
				if name, ok := platform.FindCookieBrowser(platform.CookieDomain); ok {
					statusColor.Printf("Using cookies from %s for restricted videos\n", name)
					job.CookieBrowser = name
				}
			}

			ffmpegPath, err := platform.FindFFmpeg()
			if err != nil {
				return err
			}

			service := download.NewService(platform.NewResolver(), download.NewYTDLPFetcher())
			service.SetVerifier(convert.NewService(ffmpegPath))
			service.SetFFmpegLocation(platform.FFmpegLocation(ffmpegPath))
			service.SetObserver(terminalObserver())

			// first Ctrl-C stops cooperatively, second kills the process
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				statusColor.Println("\nStopping after in-flight downloads finish (Ctrl-C again to force quit)...")
				service.Stop()
				<-sigCh
				os.Exit(1)
			}()

			outcomes, err := service.Run(cmd.Context(), job)
			if err != nil {
				return err
			}

			printOutcomes(outcomes)
			saveSettings(job)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "dir", "d", settings.OutputDir, "Output directory for MP3 files")
	cmd.Flags().StringVarP(&quality, "quality", "q", settings.Quality.String(), "MP3 bitrate in kbps (128, 192, 256, 320)")
	cmd.Flags().IntVarP(&workers, "workers", "w", settings.Workers, "Concurrent downloads")
	cmd.Flags().IntVarP(&retries, "retries", "r", model.DefaultMaxAttempts, "Attempts per item before giving up")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", settings.SkipExisting, "Skip items whose MP3 already exists")
	cmd.Flags().StringVar(&browser, "browser", "", "Browser to read cookies from (e.g. firefox); auto-detected when omitted")
	cmd.Flags().BoolVar(&noCookies, "no-cookies", false, "Never pass browser cookies to the downloader")

	return cmd
}

// convertCmd converts a local media file to MP3 without any downloading
func convertCmd() *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a local media file to MP3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := model.Quality(quality)
			if !q.IsValid() {
				return fmt.Errorf("unsupported quality %q: choose one of 128, 192, 256, 320", quality)
			}

			ffmpegPath, err := platform.FindFFmpeg()
			if err != nil {
				return err
			}
			converter := convert.NewService(ffmpegPath)

			statusColor.Printf("Converting %s...\n", args[0])
			outputPath, err := converter.Convert(cmd.Context(), args[0], q)
			if err != nil {
				return err
			}
			successColor.Printf("Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", model.DefaultQuality.String(), "MP3 bitrate in kbps (128, 192, 256, 320)")
	return cmd
}

// terminalObserver prints pipeline events to stdout, colouring log lines by
// their prefix
func terminalObserver() download.Observer {
	return download.ObserverFuncs{
		Log: func(line string) {
			switch {
			case hasAnyPrefix(line, "✗", "Error", "Failed"):
				errorColor.Println(line)
			case hasAnyPrefix(line, "✓", "All downloads completed"):
				successColor.Println(line)
			default:
				fmt.Println(line)
			}
		},
		Status: func(text string) {
			statusColor.Printf("[%s]\n", text)
		},
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// printOutcomes lists the per-item results after the run summary
func printOutcomes(outcomes []model.Outcome) {
	for _, o := range outcomes {
		switch o.Kind {
		case model.OutcomeSuccess:
			successColor.Printf("  #%d %s -> %s\n", o.Position, o.Kind, o.OutputPath)
		case model.OutcomeFailed:
			errorColor.Printf("  #%d %s after %d attempt(s): %v\n", o.Position, o.Kind, o.Attempts, o.Err)
		default:
			fmt.Printf("  #%d %s\n", o.Position, o.Kind)
		}
	}
}

// saveSettings persists the run's parameters as the next run's defaults
func saveSettings(job *model.Job) {
	store, err := config.DefaultStore()
	if err != nil {
		return
	}
	_ = store.Save(config.Settings{
		LastURL:      job.URL,
		OutputDir:    job.OutputDir,
		Quality:      job.Quality,
		SkipExisting: job.SkipExisting,
		Workers:      job.Workers,
	})
}
