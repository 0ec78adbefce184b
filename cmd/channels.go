package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"condarc/internal/channel"
	"condarc/internal/config"
	"condarc/internal/logger"
	"condarc/internal/service"
)

var (
	channelsPlatform string
	channelsUnique   bool
)

// channelsCmd prints the URLs that channel references expand to. Without
// arguments it expands the channels configured in the settings file.
var channelsCmd = &cobra.Command{
	Use:   "channels [REF ...]",
	Short: "Print the package URLs channel references expand to",
	Example: `  condarc channels
  condarc channels defaults username https://example.com/mychannel --platform osx-64`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := config.Load()
		path := rcFile
		if path == "" {
			path = opts.RcPath
		}
		platform := channelsPlatform
		if platform == "" {
			platform = opts.Platform
		}

		doc, err := service.New().Load(path)
		if err != nil {
			return err
		}
		if unknown := doc.Validate(); len(unknown) > 0 {
			logger.Debug("[DEBUG] %s has unknown keys %v\n", path, unknown)
		}

		refs := args
		if len(refs) == 0 {
			refs = doc.Get("channels").List
		}
		if len(refs) == 0 {
			refs = []string{channel.Defaults}
		}

		urls := channel.ResolveAll(refs, platform, doc)
		if channelsUnique {
			urls = channel.Dedupe(urls)
		}
		for _, u := range urls {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

func init() {
	channelsCmd.Flags().StringVar(&channelsPlatform, "platform", "", "Platform tag appended to URLs (default $CONDA_SUBDIR or the running platform)")
	channelsCmd.Flags().BoolVar(&channelsUnique, "unique", false, "Drop repeated URLs")
	rootCmd.AddCommand(channelsCmd)
}
