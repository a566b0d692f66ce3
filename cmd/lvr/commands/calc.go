package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lvr-calculator/internal/client"
)

func calcCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "calc field=value...",
		Short: "Calculate the LVR of a loan application",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFields(args)
			if err != nil {
				return err
			}

			ratio, err := apiClient.Calculate(cmd.Context(), client.BuildPayload(values))
			if err != nil {
				return err
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), ratio)
				return nil
			}
			printLVR(cmd.OutOrStdout(), ratio)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the unrounded ratio")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate field=value...",
		Short: "Validate a loan application without calculating",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFields(args)
			if err != nil {
				return err
			}

			if err := apiClient.Validate(cmd.Context(), client.BuildPayload(values)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
}
