package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/bnote/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command, r *root) {
	var (
		transport string
		ep        mcp.Endpoint
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the notebook over the Model Context Protocol",
		Long: `Start an MCP server with tools to parse notes, edit and confirm the draft,
and browse, complete or delete saved entries.`,
		Example: `
bnote mcp --transport stdio
bnote mcp --http-port 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			nb, err := r.load(cmd.Context())
			if err != nil {
				return err
			}
			defer r.close(nb)

			return mcp.Runner{
				Notebook:  nb,
				Name:      "bnote",
				Version:   Version,
				Transport: t,
				Endpoint:  ep,
				Log:       nb.Log,
				Ready: func(url string) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", url)
				},
			}.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport: http or stdio.")
	cmd.Flags().StringVar(&ep.Host, "http-host", "127.0.0.1", "Interface for the http transport.")
	cmd.Flags().IntVar(&ep.Port, "http-port", 8080, "Port for the http transport, 0 picks a free one.")
	cmd.Flags().StringVar(&ep.Path, "http-path", "/mcp", "Endpoint path.")
	cmd.Flags().StringVar(&ep.TLSCert, "http-tls-cert", "", "TLS certificate file; serves https with --http-tls-key.")
	cmd.Flags().StringVar(&ep.TLSKey, "http-tls-key", "", "TLS private key file.")

	topLevel.AddCommand(cmd)
}
