// Command mkassets writes the procedural textures and the source manifest
// the experience loads, either to refresh the embedded set or to seed an
// asset directory for hot reload.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		out  string
		size int
	)
	cmd := &cobra.Command{
		Use:          "mkassets",
		Short:        "Generate the texture set and its manifest",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size < 2 || size&(size-1) != 0 {
				return fmt.Errorf("mkassets: size must be a power of two >= 2, got %d", size)
			}
			written, err := generate(out, size)
			if err != nil {
				return err
			}
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "assets", "output directory")
	cmd.Flags().IntVar(&size, "size", 64, "texture edge in pixels")
	return cmd
}
