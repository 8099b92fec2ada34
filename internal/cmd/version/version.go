package version

import (
	"fmt"
	"strings"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"
)

const (
	descriptionShort = `Print version information`
	descriptionLong  = `
	Print the version, revision and build details of this binary`
)

func NewCommand(program string) *cobra.Command {
	return &cobra.Command{
		Use:                   "version",
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		Short:                 descriptionShort,
		Long:                  strings.ReplaceAll(descriptionLong, "\t", ""),

		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Print(program))
		},
	}
}
