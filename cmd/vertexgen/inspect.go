package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexhholmes/vertex/internal/analyzer"
	"github.com/alexhholmes/vertex/internal/logging"
)

func newInspectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.go>...",
		Short: "Print the descriptor table of each @vertex struct without writing files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *flags)
			if err != nil {
				logging.Error("config", "err", err)
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				_, layouts, err := analyze(path, cfg)
				if err != nil {
					logging.Error("inspect", "file", path, "err", err)
					return err
				}
				if len(layouts) == 0 {
					fmt.Fprintf(out, "%s: no types with %s annotations found\n", path, cfg.Annotation)
					continue
				}
				for _, l := range layouts {
					printLayout(out, l)
				}
			}
			return nil
		},
	}
}

func printLayout(w io.Writer, l *analyzer.VertexLayout) {
	fmt.Fprintf(w, "\n%s (stride=%d, align=%d)\n", l.TypeName, l.Stride, l.Align)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  INDEX\tFIELD\tATTRIBUTE\tSIZE\tTYPE\tOFFSET")
	for i, a := range l.Attributes {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%d\t%s\t%d\n", i, a.Name, a.Attribute, a.Count, a.Type, a.Offset)
	}
	tw.Flush()
}
