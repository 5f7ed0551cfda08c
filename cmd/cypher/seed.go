package main

import (
	"fmt"
	"text/tabwriter"

	"neptune-lambda/application/services"
	"neptune-lambda/domain/person"

	"github.com/spf13/cobra"
)

// resultColumn is the variable name MatchByLastNameStatement returns
const resultColumn = "n"

func newSeedCmd(opts *connOptions) *cobra.Command {
	p := person.DefaultPerson()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a Person vertex, then list people sharing its last name",
		Long: `Seed runs the same create-then-match flow as the Lambda handler. Every
run creates a new vertex; running it twice leaves two matching vertices.

Examples:
    cypher seed
    cypher seed --first-name Sara --last-name Khan --age 31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, logger, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc := services.NewPersonServiceFor(client, p, nil, logger)
			records, err := svc.CreateAndFetch(cmd.Context())
			if err != nil {
				return err
			}

			vertices, err := person.DecodeVertices(records, resultColumn)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFIRST NAME\tLAST NAME\tAGE")
			for _, v := range vertices {
				found, err := v.Person()
				if err != nil {
					return fmt.Errorf("vertex %s: %w", v.ID, err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", v.ID, found.FirstName, found.LastName, found.Age)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&p.FirstName, "first-name", p.FirstName, "first_name property")
	cmd.Flags().StringVar(&p.LastName, "last-name", p.LastName, "last_name property, also the match key")
	cmd.Flags().IntVar(&p.Age, "age", p.Age, "age property")

	return cmd
}
