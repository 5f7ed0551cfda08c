package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newQueryCmd(opts *connOptions) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "query <statement>",
		Short: "Run one openCypher statement",
		Long: `Query posts a single statement to the openCypher endpoint and prints the
"results" array as JSON. Statements are not retried.

Examples:
    cypher query 'MATCH (n:Person {last_name: "Khan"}) RETURN n'
    cypher query --compact 'MATCH (n) RETURN count(n)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			result, err := client.Query(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("query failed: %w", err)
			}

			var data []byte
			if compact {
				data, err = json.Marshal(result.Results)
			} else {
				data, err = json.MarshalIndent(result.Results, "", "  ")
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print results on one line")

	return cmd
}
