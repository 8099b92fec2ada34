package cmd

import (
	"ci-notifier/internal/cmd/send"
	"ci-notifier/internal/cmd/version"
	"strings"

	"github.com/spf13/cobra"
)

const (
	descriptionShort = `Notify developers when their pull request build fails`
	descriptionLong  = `
	Notify developers when their pull request build fails. The notification is
	posted to the webhook named <ACTOR>_WEBHOOK in the environment, with a link
	to the failed workflow run. Delivery is best-effort: a failed post never
	fails the surrounding pipeline.
	`
)

func NewRootCommand(name string) *cobra.Command {
	c := &cobra.Command{
		Use:           name,
		Short:         descriptionShort,
		Long:          strings.ReplaceAll(descriptionLong, "\t", ""),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.AddCommand(
		send.NewCommand(),
		version.NewCommand(name),
	)

	return c
}
