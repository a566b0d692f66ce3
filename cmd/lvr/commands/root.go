package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lvr-calculator/internal/client"
)

var (
	serverURL string
	timeout   time.Duration

	apiClient *client.Client
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lvr",
		Short:        "Loan-to-value ratio calculator client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			apiClient = client.New(serverURL)
			apiClient.HTTP.Timeout = timeout
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&serverURL, "server", "s", client.DefaultBaseURL, "calculator service base URL")
	root.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(calcCmd(), validateCmd(), exampleCmd(), healthCmd(), formCmd())
	return root
}

// parseFields reads field=value arguments into raw form values.
func parseFields(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		values[strings.TrimSpace(field)] = strings.TrimSpace(value)
	}
	return values, nil
}

func printLVR(w io.Writer, ratio float64) {
	fmt.Fprintf(w, "Calculated LVR: %.2f\n", ratio)
}
