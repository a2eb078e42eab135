package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-export-service/pkg/client"
	"go-export-service/pkg/utils"
)

var (
	serverURL string
	filters   []string
	template  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "exportctl",
		Short: "Command-line requestor for the export service",
		Long:  "Drive the export workflow from the command line: count, preview, export, download.",
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "export service base URL")

	rootCmd.AddCommand(countCmd(), previewCmd(), exportCmd(), downloadCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func countCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count <export-type>",
		Short: "Count matching records and show estimates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filterSet, err := buildFilterSet()
			if err != nil {
				return err
			}
			result, err := client.New(serverURL).Count(cmd.Context(), args[0], filterSet)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"total_records": result.TotalRecords,
				"estimates":     result.Estimates,
				"plan":          client.PlanExport(result.Estimates),
			})
		},
	}
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field=value, field=a,b,c or field=min:max (repeatable)")
	return cmd
}

func previewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <export-type>",
		Short: "Preview the rows an export would produce",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filterSet, err := buildFilterSet()
			if err != nil {
				return err
			}
			rows, err := client.New(serverURL).Preview(cmd.Context(), args[0], template, filterSet)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"rows": rows, "count": len(rows)})
		},
	}
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field=value, field=a,b,c or field=min:max (repeatable)")
	cmd.Flags().StringVar(&template, "template", "", "column/formatting template")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		chunkSize     int
		forceChunking bool
		filename      string
		auto          bool
	)
	cmd := &cobra.Command{
		Use:   "export <export-type>",
		Short: "Run an export",
		Long:  "Run an export. With --auto the configuration is planned from a count estimate.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filterSet, err := buildFilterSet()
			if err != nil {
				return err
			}
			c := client.New(serverURL)

			var result client.ExportResult
			if auto {
				result, err = c.ExportPlanned(cmd.Context(), args[0], filterSet)
			} else {
				result, err = c.Export(cmd.Context(), client.ExportRequest{
					ExportType:    args[0],
					Template:      template,
					Filters:       filterSet,
					Filename:      filename,
					ChunkSize:     chunkSize,
					ForceChunking: forceChunking,
				})
			}
			if err != nil {
				return err
			}

			return result.Handle(
				func(single client.SingleResult) error {
					return printJSON(map[string]any{
						"strategy": client.StrategySingle,
						"result":   single,
						"metrics":  result.Metrics,
					})
				},
				func(chunked client.ChunkedResult) error {
					return printJSON(map[string]any{
						"strategy": client.StrategyMultiFile,
						"result":   chunked,
						"metrics":  result.Metrics,
					})
				},
			)
		},
	}
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field=value, field=a,b,c or field=min:max (repeatable)")
	cmd.Flags().StringVar(&template, "template", "", "column/formatting template")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "rows per artifact (advisory)")
	cmd.Flags().BoolVar(&forceChunking, "force-chunking", false, "ask for a multi-file export (advisory)")
	cmd.Flags().StringVar(&filename, "filename", "", "artifact base name")
	cmd.Flags().BoolVar(&auto, "auto", false, "plan template and chunking from a count estimate")
	return cmd
}

func downloadCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <export-id>",
		Short: "Download a completed export artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			written, err := client.New(serverURL).Download(cmd.Context(), args[0], out)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", written, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "export-artifact", "output file path")
	return cmd
}

func buildFilterSet() (client.FilterSet, error) {
	filterSet := client.FilterSet{}
	for _, arg := range filters {
		field, value, err := utils.ParseFilterArg(arg)
		if err != nil {
			return nil, err
		}
		filterSet[field] = value
	}
	return filterSet, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
