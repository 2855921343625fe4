package commands

import (
	"log/slog"
	"os"
	"time"

	"limeharvest/lib/limerpc"
	"limeharvest/lib/restyutil"
	"limeharvest/lib/serviceutil"
	"limeharvest/lib/sqliteutil"
	"limeharvest/lib/survey"
	"limeharvest/lib/telemetry"
	"limeharvest/lib/workbook"

	"github.com/spf13/cobra"
)

var pullSurveyId *int
var pullDb *string
var pullVerbose *bool

func init() {
	pullSurveyId = pullCmd.Flags().Int("survey", 0, "The survey id to pull.")
	pullDb = pullCmd.Flags().String("db", "", "Also write the tables to a sqlite database at this path.")
	pullVerbose = pullCmd.Flags().Bool("verbose", false, "Enable debug logging and http wire capture.")
	pullCmd.MarkFlagRequired("survey")
	rootCmd.AddCommand(pullCmd)
}

var pullCmd = &cobra.Command{
	Use:   "pull --survey <id> [--db <path/to/output.db>]",
	Short: "Pulls one survey and renders its tables, optionally into sqlite.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		if *pullVerbose {
			// wire capture is gated on the debug log level
			telemetry.InitSlog(true)
			limerpc.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/pull"))
		}

		client := newClient()
		s := survey.New(*pullSurveyId, client)

		t1 := time.Now()
		if err := s.Load(ctx); err != nil {
			serviceutil.Fatal("failed to load survey", err)
		}
		slog.Info("survey loaded",
			"survey_id", s.Id,
			"title", s.Title(),
			"responses", len(s.Responses),
			"seconds", time.Since(t1).Seconds(),
		)

		if err := workbook.Write(ctx, workbook.TableSink{Out: os.Stdout}, s); err != nil {
			serviceutil.Fatal("failed to render tables", err)
		}

		if *pullDb != "" {
			db, err := sqliteutil.OpenDB("", *pullDb)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer db.Close()

			if err := workbook.Write(ctx, workbook.NewSqliteSink(db), s); err != nil {
				serviceutil.Fatal("failed to write tables to sqlite", err)
			}
		}
	},
}
