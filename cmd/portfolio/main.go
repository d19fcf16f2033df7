package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wright-research/nghs-portfolio/internal/portfolio"
	"github.com/wright-research/nghs-portfolio/internal/server"
)

// Options defines all CLI flags and env vars for the dashboard server.
// Flags: --host, --port, --data-dir, --web-dir
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_WEB_DIR
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8086"`
	DataDir string `doc:"Directory with the portfolio GeoJSON datasets" default:".data"`
	WebDir  string `doc:"Path to web/ directory" default:"web"`
}

func newServer(opts *Options) (*server.Server, error) {
	return server.New(server.Config{
		Host:    opts.Host,
		Port:    fmt.Sprintf("%d", opts.Port),
		DataDir: opts.DataDir,
		WebDir:  opts.WebDir,
	})
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		hooks.OnStart(func() {
			srv, err := newServer(opts)
			if err != nil {
				log.Fatalf("Startup error: %v", err)
			}
			defer srv.Close()

			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("nghs-portfolio server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Data:    %s\n", opts.DataDir)
			fmt.Println()
			fmt.Printf("  Page:    %s/dashboard\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Printf("  OpenAPI: %s/openapi.json\n", baseURL)
			fmt.Println()

			if err := http.ListenAndServe(addr, srv); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		})
	})

	cli.Root().Use = "portfolio"
	cli.Root().Short = "Map dashboard for the NGHS real-estate portfolio"
	cli.Root().Version = "0.1.0"

	cli.Root().AddCommand(specCmd())
	cli.Root().AddCommand(statsCmd())

	cli.Run()
}

// specCmd exports the OpenAPI spec (JSON by default, --yaml for YAML).
func specCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv, err := newServer(opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer srv.Close()
			spec := srv.OpenAPI()

			useYAML, _ := cmd.Flags().GetBool("yaml")

			var output []byte
			if useYAML {
				output, err = yaml.Marshal(spec)
			} else {
				output, err = json.MarshalIndent(spec, "", "  ")
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(output))
		}),
	}
	cmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	return cmd
}

// statsCmd runs the aggregation engine offline against the data directory,
// with the same filter dimensions the dashboard exposes.
func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Compute portfolio statistics for a filter selection",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			areas, err := portfolio.LoadAreas(filepath.Join(opts.DataDir, "areas.yaml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			data, err := portfolio.LoadDataset(opts.DataDir)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			ownership, _ := cmd.Flags().GetString("ownership")
			propertyType, _ := cmd.Flags().GetString("type")
			selectedAreas, _ := cmd.Flags().GetStringSlice("areas")
			showLongstreet, _ := cmd.Flags().GetBool("longstreet")

			state := portfolio.NewFilterState(portfolio.AreaNames(areas), nil)
			state.SetOwnership(ownership)
			state.SetPropertyType(propertyType)
			state.SetServiceAreas(selectedAreas)
			state.SetShowLongstreet(showLongstreet)

			sel := state.Selection()
			filtered := data.Filtered(state.Filter())
			rows := portfolio.Aggregate(filtered.Features, sel.ServiceAreas)
			headline := portfolio.HeadlineOver(filtered.Features, sel)
			panel := portfolio.Present(rows, headline, sel, portfolio.AreaColors(areas))

			printPanel(panel)
		}),
	}
	cmd.Flags().String("ownership", portfolio.OwnershipAll, "Ownership filter ('all', 'Owned', 'Leased')")
	cmd.Flags().String("type", portfolio.TypeAll, "Property-type filter")
	cmd.Flags().StringSlice("areas", nil, "Service areas to include (default: all)")
	cmd.Flags().Bool("longstreet", true, "Include Longstreet-flagged properties")
	return cmd
}

func printPanel(panel portfolio.Panel) {
	if panel.Empty {
		fmt.Println(panel.Message)
		return
	}

	fmt.Printf("Properties: %d\n", panel.Headline.Count)
	label := "Total SF"
	if panel.Headline.Acres {
		label = "Total Acres"
	}
	fmt.Printf("%s: %s\n", label, portfolio.HeadlineValueText(panel.Headline))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, section := range panel.Sections {
		fmt.Fprintf(w, "%s\t\n", section.Title)
		for _, row := range section.Rows {
			fmt.Fprintf(w, "  %s\t%s\n", row.Label, row.Value)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
