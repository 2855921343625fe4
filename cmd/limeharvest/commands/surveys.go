package commands

import (
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(surveysCmd)
}

var surveysCmd = &cobra.Command{
	Use:   "surveys",
	Short: "Lists the surveys belonging to the configured account.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		surveys, err := client.ListSurveys(cmd.Context(), "")
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		w := table.NewWriter()
		w.SetStyle(table.StyleRounded)
		w.SetOutputMirror(os.Stdout)
		w.AppendHeader(table.Row{"id", "title", "active", "start", "expires"})
		for _, s := range surveys {
			w.AppendRow(table.Row{
				strconv.Itoa(int(s.Id)), s.Title, s.Active, s.StartDate, s.Expires,
			})
		}
		w.Render()
	},
}
