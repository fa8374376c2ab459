package options

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// OutputOptions select between the table view and a machine readable dump.
type OutputOptions struct {
	Format string
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", "table",
		"Output format. One of 'table', 'json' or 'yaml'.")
}

// Validate rejects unknown formats.
func (o *OutputOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case "", "table", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q", o.Format)
}

// Table reports whether the human readable view was asked for.
func (o *OutputOptions) Table() bool {
	f := strings.ToLower(o.Format)
	return f == "" || f == "table"
}

// Write encodes v to w as JSON or YAML.
func (o *OutputOptions) Write(w io.Writer, v any) error {
	if strings.ToLower(o.Format) == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// HandleError reports err as {"error": ...} in the machine readable formats
// and passes it through otherwise.
func (o *OutputOptions) HandleError(w io.Writer, err error) error {
	if err == nil || o.Table() {
		return err
	}
	if werr := o.Write(w, map[string]string{"error": err.Error()}); werr != nil {
		return werr
	}
	return err
}
