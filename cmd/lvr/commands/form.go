package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deppfellow/lvr-calculator/internal/client"
)

func formCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill the loan form interactively from stdin",
		Long: "Reads field=value lines from stdin. Each line updates one field and\n" +
			"triggers a calculation, then the form state is printed.\n\n" +
			"Fields: " + strings.Join(client.Fields, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd.InOrStdin(), cmd.OutOrStdout(), client.NewForm(apiClient))
		},
	}
}

func runForm(in io.Reader, out io.Writer, form *client.Form) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		field, value, ok := strings.Cut(line, "=")
		if !ok {
			fmt.Fprintf(out, "expected field=value, got %q\n", line)
			continue
		}

		if err := form.Set(strings.TrimSpace(field), strings.TrimSpace(value)); err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		form.Wait()
		printForm(out, form)
	}

	return scanner.Err()
}

func printForm(w io.Writer, form *client.Form) {
	state := form.State()

	switch {
	case state.Error != "":
		fmt.Fprintf(w, "Error: %s\n", state.Error)
	case state.LVR != nil:
		printLVR(w, *state.LVR)
	}

	if form.EvidenceRequired() && form.Value(client.FieldPropertyValuationEvidence) == "" {
		fmt.Fprintf(w, "%s is required when a physical valuation is provided\n", client.FieldPropertyValuationEvidence)
	}

	if form.CanSubmit() {
		fmt.Fprintln(w, "Submit: enabled")
	} else {
		fmt.Fprintln(w, "Submit: disabled")
	}
}
