// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-verify/internal/batch"
	"github.com/pdiddy/scholar-verify/internal/ident"
	"github.com/pdiddy/scholar-verify/internal/profile"
	"github.com/pdiddy/scholar-verify/internal/prompt"
	"github.com/pdiddy/scholar-verify/internal/report"
	"github.com/pdiddy/scholar-verify/internal/sources"
	"github.com/pdiddy/scholar-verify/internal/store"
	"github.com/pdiddy/scholar-verify/internal/verify"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify every publication claimed on an author profile",
	Long: `Verify fetches the publication titles claimed on a profile and checks each
one against independent bibliographic sources. Results are printed as they
are produced and saved to verification_report_<name>.csv.

The author name and profile are required. When they are not given as flags
and stdin is a terminal, verify asks for them along with the optional ORCID
iD, Scopus Author ID and ResearcherID.

The profile may be a Google Scholar user ID or profile URL, an ORCID iD, an
OpenAlex author ID, or a file (.yaml with a publications list, or text with
one title per line).`,
	Example: `  scholar-verify verify --name "Jane Smith" --profile qc6CJjYAAAAJ
  scholar-verify verify --name "Jane Smith" --profile 0000-0002-1825-0097 --orcid 0000-0002-1825-0097
  scholar-verify verify --name "Jane Smith" --profile titles.txt --resume --yaml`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().String("name", "", "full author name")
	verifyCmd.Flags().String("profile", "", "profile reference: Scholar ID or URL, ORCID iD, OpenAlex author ID, or file")
	verifyCmd.Flags().String("orcid", "", "author ORCID iD")
	verifyCmd.Flags().String("scopus-id", "", "author Scopus Author ID")
	verifyCmd.Flags().String("researcher-id", "", "author ResearcherID / Publons ID")
	verifyCmd.Flags().Bool("self-check", false, "mark the run as made by the profile owner")
	verifyCmd.Flags().Bool("resume", false, "reuse results saved by earlier runs of the same profile")
	verifyCmd.Flags().Bool("yaml", false, "also write the report as YAML")
	verifyCmd.Flags().Bool("bar", false, "show a progress bar instead of per-publication lines (terminal only)")
	verifyCmd.Flags().String("save-profile", "", "write the fetched titles to this YAML file for later offline runs")
	verifyCmd.Flags().String("output-dir", ".", "directory for report files")
	verifyCmd.Flags().String("store", store.DefaultPath, "history database path")
	verifyCmd.Flags().Duration("delay", defaultDelay, "pause between publications")
	verifyCmd.Flags().Duration("jitter", defaultJitter, "upper bound of a random extra pause")
	verifyCmd.Flags().Bool("openalex", false, "also look up titles in OpenAlex")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{
		keyOutputDir: "output-dir",
		keyStorePath: "store",
		keyDelay:     "delay",
		keyJitter:    "jitter",
		keyOpenAlex:  "openalex",
	}); err != nil {
		return err
	}

	answers, err := collectAnswers(cmd)
	if err != nil {
		return err
	}
	selfCheck, _ := cmd.Flags().GetBool("self-check")
	resume, _ := cmd.Flags().GetBool("resume")
	withYAML, _ := cmd.Flags().GetBool("yaml")
	useBar, _ := cmd.Flags().GetBool("bar")
	saveProfile, _ := cmd.Flags().GetString("save-profile")

	if answers.ORCID != "" && !ident.ValidORCID(answers.ORCID) {
		slog.Warn("ORCID iD fails checksum validation; it will not match any record", "orcid", answers.ORCID)
	}

	lcfg := lookupConfig(v, loadedSecrets)
	bcfg := batchConfig(v)
	client := newHTTPClient(lcfg)
	out := cmd.OutOrStdout()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := profile.Open(answers.Profile, client, lcfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nVerifying %s profile: %s\n", src.Label(), answers.Name)
	if selfCheck {
		fmt.Fprintln(out, "Mode: SELF-CHECK (verification run by profile owner)")
	}

	pubs, err := src.Publications(ctx)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}
	fmt.Fprintf(out, "\nFound %d records\n\n", len(pubs))

	if saveProfile != "" {
		pf := profile.ProfileFile{Name: answers.Name, Source: src.Label(), Publications: pubs}
		if err := profile.WriteProfileFile(saveProfile, pf); err != nil {
			return err
		}
		slog.Info("saved profile", "path", saveProfile)
	}

	st, err := store.Open(bcfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	var prior map[string]types.VerificationResult
	if resume {
		if prior, err = st.PriorResults(ctx, answers.Profile, answers.Name); err != nil {
			return err
		}
		slog.Info("resuming", "saved_results", len(prior))
	}

	run, err := st.StartRun(ctx, answers.Profile, answers.Name, selfCheck)
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Verifier: &verify.Verifier{
			Sources:       sources.New(client, lcfg),
			AuthorName:    answers.Name,
			Identifiers:   types.Identifiers{ORCID: answers.ORCID, ScopusID: answers.ScopusID, ResearcherID: answers.ResearcherID},
			ProfileSource: src.Label(),
			Logger:        slog.Default(),
		},
		Recorder: st,
		RunID:    run.ID,
		Prior:    prior,
		Delay:    bcfg.ItemDelay,
		Jitter:   bcfg.ItemJitter,
		Out:      out,
		Bar:      useBar && isTerminal(out),
		Logger:   slog.Default(),
	}

	summary, runErr := runner.Run(ctx, pubs)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		fmt.Fprintf(out, "\nInterrupted after %d of %d publications; rerun with --resume to continue.\n", summary.Total(), len(pubs))
	}

	doc := report.Document{
		Author:      answers.Name,
		Profile:     answers.Profile,
		Source:      src.Label(),
		SelfCheck:   selfCheck,
		RunID:       run.ID,
		GeneratedAt: time.Now().UTC(),
		Summary: report.DocumentSummary{
			Total:            summary.Total(),
			Authentic:        summary.Authentic,
			AuthenticPercent: summary.AuthenticPercent(),
		},
		Results: summary.Results,
	}
	paths, err := report.Save(bcfg.OutputDir, doc, withYAML)
	if err != nil {
		return err
	}

	printSummary(out, summary, paths)
	return runErr
}

// collectAnswers reads author details from flags and, on a terminal,
// prompts for whatever is missing.
func collectAnswers(cmd *cobra.Command) (prompt.Answers, error) {
	var a prompt.Answers
	a.Name, _ = cmd.Flags().GetString("name")
	a.Profile, _ = cmd.Flags().GetString("profile")
	a.ORCID, _ = cmd.Flags().GetString("orcid")
	a.ScopusID, _ = cmd.Flags().GetString("scopus-id")
	a.ResearcherID, _ = cmd.Flags().GetString("researcher-id")

	if prompt.Interactive(os.Stdin) {
		if err := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Fill(&a); err != nil {
			return a, err
		}
	}
	if err := prompt.Validate(a); err != nil {
		return a, fmt.Errorf("%w (pass --name and --profile when not running interactively)", err)
	}
	return a, nil
}

func printSummary(w io.Writer, s batch.Summary, paths []string) {
	fmt.Fprintf(w, "\nSummary: %d/%d publications verified as AUTHENTIC (%.1f%%)\n",
		s.Authentic, s.Total(), s.AuthenticPercent())
	if s.Resumed > 0 {
		fmt.Fprintf(w, "Reused %d saved result(s)\n", s.Resumed)
	}
	fmt.Fprintln(w, report.SummaryTable(s.Results))
	for _, p := range paths {
		fmt.Fprintf(w, "Report saved: %s\n", p)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && prompt.Interactive(f)
}
