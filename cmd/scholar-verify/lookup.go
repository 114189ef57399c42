// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-verify/internal/report"
	"github.com/pdiddy/scholar-verify/internal/sources"
	"github.com/pdiddy/scholar-verify/internal/verify"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <title>",
	Short: "Show the candidate records the sources return for one title",
	Long: `Lookup queries the bibliographic sources for a single title and lists the
candidate records. With --name it also scores and classifies the title the
way verify would.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().String("name", "", "author name to score candidates against")
	lookupCmd.Flags().String("orcid", "", "author ORCID iD")
	lookupCmd.Flags().Bool("openalex", false, "also query OpenAlex")
	lookupCmd.Flags().Bool("json", false, "output candidates (and result) as JSON")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd, map[string]string{keyOpenAlex: "openalex"}); err != nil {
		return err
	}
	title := strings.Join(args, " ")
	name, _ := cmd.Flags().GetString("name")
	orcid, _ := cmd.Flags().GetString("orcid")
	asJSON, _ := cmd.Flags().GetBool("json")

	lcfg := lookupConfig(v, loadedSecrets)
	srcs := sources.New(newHTTPClient(lcfg), lcfg)
	cands := sources.Lookup(cmd.Context(), srcs, title, slog.Default())

	var result *types.VerificationResult
	if name != "" {
		vr := &verify.Verifier{
			AuthorName:  name,
			Identifiers: types.Identifiers{ORCID: orcid},
			Logger:      slog.Default(),
		}
		r := vr.Evaluate(types.ClaimedPublication{Title: title}, cands)
		result = &r
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Candidates []types.CandidateRecord `json:"candidates"`
			Result     *types.VerificationResult `json:"result,omitempty"`
		}{cands, result})
	}

	if len(cands) == 0 {
		fmt.Fprintln(out, "No candidate records found.")
	} else {
		fmt.Fprintln(out, report.CandidatesTable(cands))
	}
	if result != nil {
		fmt.Fprintf(out, "\n%s (%s)\n  matched: %s [%s]\n  strength: %s\n",
			result.Classification, report.FormatScore(result.ConfidenceScore),
			result.MatchedTitle, result.MatchedSource, result.VerificationStrength)
	}
	return nil
}
