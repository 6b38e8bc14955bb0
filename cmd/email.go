/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"html"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/format"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

type SendEmailConfig struct {
	DbPath         string
	Timezone       string
	From           string
	To             string
	ReportName     string
	Types          []string
	Params         []map[string]string
	DryRun         bool
	SendgridAPIKey string
	Range          analysis.TimeRange
	Search         string
}

var emailCmd = &cobra.Command{
	Use:   "email <address> <analysis_name...> [range]",
	Short: "Sends an email report",
	Long: `Emails listening stats to the specified address.
  <analysis_name> is one or more of: ` + strings.Join(actionNames(), ", ") + `.
  An optional range can be provided at the end (e.g. '2023' or '4w').
  A trailing 'lifetime' is the lifetime analysis; use --range for a lifetime range.
  If no range is provided, --range is used.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetString("from") == "" {
			return fmt.Errorf("required flag(s) \"from\" not set")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		to := args[0]
		analysisTypes, rangeArgs := splitRangeArg(args[1:])
		if len(analysisTypes) == 0 {
			fmt.Println("Error: No analysis types specified")
			os.Exit(1)
		}

		query, err := queryConfigFromFlags(rangeArgs)
		if err != nil {
			fmt.Printf("Error parsing range: %v\n", err)
			os.Exit(1)
		}

		params, _ := cmd.Flags().GetStringArray("params")
		if len(params) > 0 && len(params) != len(analysisTypes) {
			fmt.Printf("Error: Number of --params flags (%d) must match number of reports (%d), or be 0.\n", len(params), len(analysisTypes))
			os.Exit(1)
		}

		config := SendEmailConfig{
			DbPath:         query.DbPath,
			Timezone:       query.Timezone,
			From:           viper.GetString("from"),
			To:             to,
			ReportName:     viper.GetString("name"),
			Types:          analysisTypes,
			Params:         parseParams(params, len(analysisTypes)),
			DryRun:         viper.GetBool("dryRun"),
			SendgridAPIKey: viper.GetString("sendgrid_api_key"),
			Range:          query.Range,
			Search:         query.Search,
		}
		err = sendEmail(config, time.Now())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(emailCmd)

	var dryRun bool
	emailCmd.Flags().BoolVarP(&dryRun, "dry_run", "n", false, "When true, just print instead of emailing")
	viper.BindPFlag("dryRun", emailCmd.Flags().Lookup("dry_run"))

	var name string
	emailCmd.Flags().StringVar(&name, "name", "", "Report name, appended to the subject")
	viper.BindPFlag("name", emailCmd.Flags().Lookup("name"))

	emailCmd.Flags().StringArray("params", nil, "Parameters for reports, matched by index (e.g. --params 'n=20,sort=plays')")
}

// parseParams turns "k=v,k2=v2" strings into maps, one per report.
func parseParams(params []string, numReports int) []map[string]string {
	structured := make([]map[string]string, numReports)
	for i, v := range params {
		pMap := make(map[string]string)
		if v != "" {
			for _, pair := range strings.Split(v, ",") {
				kv := strings.SplitN(pair, "=", 2)
				if len(kv) == 2 {
					pMap[kv[0]] = kv[1]
				}
			}
		}
		structured[i] = pMap
	}
	return structured
}

func sendEmail(config SendEmailConfig, now time.Time) error {
	actions, err := buildActions(config)
	if err != nil {
		return err
	}

	events, err := loadEvents(QueryConfig{
		DbPath:   config.DbPath,
		Timezone: config.Timezone,
		Range:    config.Range,
		Search:   config.Search,
	}, now)
	if err != nil {
		return err
	}

	subject, htmlBody, textBody, err := generateEmailContent(config, actions, events, now)
	if err != nil {
		return err
	}

	if config.DryRun {
		fmt.Printf("Would have sent email: \nsubject: %s\n%s\n", subject, textBody)
		return nil
	}

	if config.SendgridAPIKey == "" {
		return fmt.Errorf("sendgrid_api_key must be set in order to send emails")
	}

	from := mail.NewEmail("streaming-stats", config.From)
	to := mail.NewEmail(config.To, config.To)
	message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)
	client := sendgrid.NewSendClient(config.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendEmail: %w", err)
	}
	if response.StatusCode/100 != 2 {
		return fmt.Errorf("sendEmail: sendgrid returned %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func buildActions(config SendEmailConfig) ([]Analyser, error) {
	actions := make([]Analyser, 0, len(config.Types))
	for i, actionName := range config.Types {
		action, err := getActionFromName(actionName)
		if err != nil {
			return nil, err
		}

		if i < len(config.Params) && len(config.Params[i]) > 0 {
			if configurable, ok := action.(Configurable); ok {
				err := configurable.Configure(config.Params[i])
				if err != nil {
					return nil, fmt.Errorf("configuring %s (index %d): %w", actionName, i, err)
				}
			}
		}

		actions = append(actions, action)
	}
	return actions, nil
}

func generateEmailContent(config SendEmailConfig, actions []Analyser, events []streaming.Event, now time.Time) (subject string, htmlBody string, textBody string, err error) {
	var out strings.Builder
	var text strings.Builder
	out.WriteString(`
<html>
  <head>
<style>
td {
  padding: 0.1em 0.2em;
}
table, th, td {
  border: 1px solid black;
  border-collapse: collapse;
}
</style>
  </head>
  <body>
`)
	for _, action := range actions {
		result, err := action.GetResults(events, now)
		if err != nil {
			return "", "", "", fmt.Errorf("getting results for %s: %w", action.GetName(), err)
		}

		heading := fmt.Sprintf("%s for %s", action.GetName(), config.Range)
		fmt.Fprintf(&out, "<div>\n<h2>%s:</h2>\n", html.EscapeString(heading))
		fmt.Fprintf(&text, "%s:\n", heading)

		if len(events) == 0 {
			out.WriteString("<div>No listens found.</div>\n")
			text.WriteString("No listens found.\n\n")
		} else {
			writeHTMLTable(&out, result.results)
			text.WriteString(result.String())
			text.WriteString("\n")
		}
		fmt.Fprintf(&out, "<div>%s</div>\n</div>\n", html.EscapeString(result.summary))
	}
	out.WriteString("  </body>\n</html>\n")

	subjectSuffix := ""
	if len(config.ReportName) > 0 {
		subjectSuffix = ": " + config.ReportName
	}
	// Subject line format: Listening report for <Range> as of <Date> <Suffix>
	subject = fmt.Sprintf("Listening report for %s as of %s%s", config.Range, format.Date(now), subjectSuffix)

	return subject, out.String(), text.String(), nil
}

func writeHTMLTable(out *strings.Builder, results [][]string) {
	out.WriteString("<table>\n<thead>\n<tr>")
	for _, header := range results[0] {
		fmt.Fprintf(out, "<th>%s</th>", html.EscapeString(header))
	}
	out.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range results[1:] {
		out.WriteString("<tr>")
		for _, column := range row {
			fmt.Fprintf(out, "<td>%s</td>", html.EscapeString(column))
		}
		out.WriteString("</tr>\n")
	}
	out.WriteString("</tbody>\n</table>\n")
}

func newActionMap() map[string]Analyser {
	// Pointers required for Configure.
	return map[string]Analyser{
		"top-tracks":  &TopTracksAnalyzer{Config: AnalyserConfig{NumToReturn: 20}},
		"top-artists": &TopArtistsAnalyzer{Config: AnalyserConfig{NumToReturn: 20}},
		"daily":       DailyAnalyzer{},
		"monthly":     MonthlyAnalyzer{},
		"yearly":      YearlyAnalyzer{},
		"years":       YearsAnalyzer{},
		"lifetime":    LifetimeAnalyzer{},
		"overview":    OverviewAnalyzer{},
		"streak":      StreakAnalyzer{},
		"time-of-day": TimeOfDayAnalyzer{},
		"hourly":      HourlyAnalyzer{},
		"day-of-week": DayOfWeekAnalyzer{},
	}
}

func getActionFromName(actionName string) (Analyser, error) {
	action, ok := newActionMap()[actionName]
	if !ok {
		return nil, fmt.Errorf("Invalid analysis_name: %s", actionName)
	}
	return action, nil
}

func actionNames() []string {
	names := make([]string, 0)
	for name := range newActionMap() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
