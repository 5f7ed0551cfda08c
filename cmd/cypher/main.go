// Command cypher talks to a Neptune cluster over the openCypher HTTPS endpoint.
//
// Usage:
//
//	cypher query 'MATCH (n:Person) RETURN n'   Run a statement, print results
//	cypher seed --last-name Khan               Create a Person, then read it back
//	cypher version                             Show version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"neptune-lambda/infrastructure/neptune"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// connOptions are the persistent flags shared by every subcommand
type connOptions struct {
	endpoint string
	port     int
	scheme   string
	iam      bool
	region   string
	timeout  time.Duration
	verbose  bool
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &connOptions{}

	rootCmd := &cobra.Command{
		Use:   "cypher",
		Short: "Run openCypher statements against Neptune",
		Long: `cypher sends openCypher statements to a Neptune cluster endpoint.

The endpoint defaults to $NEPTUNE_ENDPOINT. With --iam, requests are signed
with SigV4 using the default AWS credential chain.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.endpoint, "endpoint", "e", os.Getenv("NEPTUNE_ENDPOINT"), "Neptune cluster endpoint host")
	flags.IntVarP(&opts.port, "port", "p", neptune.DefaultPort, "Neptune port")
	flags.StringVar(&opts.scheme, "scheme", "https", "URL scheme: https or http")
	flags.BoolVar(&opts.iam, "iam", false, "Sign requests with SigV4")
	flags.StringVar(&opts.region, "region", envOr("AWS_REGION", "us-east-1"), "AWS region used for signing")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 30*time.Second, "Per-query timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log queries to stderr")

	rootCmd.AddCommand(
		newQueryCmd(opts),
		newSeedCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// client builds a neptune.Client from the connection flags
func (o *connOptions) client(ctx context.Context) (*neptune.Client, *zap.Logger, error) {
	if o.endpoint == "" {
		return nil, nil, errors.New("endpoint is required (--endpoint or NEPTUNE_ENDPOINT)")
	}

	logger := zap.NewNop()
	if o.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}

	var signer neptune.RequestSigner
	if o.iam {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(o.region))
		if err != nil {
			return nil, nil, fmt.Errorf("loading AWS config: %w", err)
		}
		signer = neptune.NewSigV4Signer(awsCfg.Credentials, awsCfg.Region)
	}

	client, err := neptune.NewClient(neptune.Options{
		Endpoint: o.endpoint,
		Port:     o.port,
		Scheme:   o.scheme,
		Timeout:  o.timeout,
		Signer:   signer,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
