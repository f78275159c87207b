package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"whisperwall/internal/client"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	c := &cobra.Command{
		Use:     "wwc",
		Short:   "Whisperwall client",
		Version: fmt.Sprintf("%s - build %.7s @ %s", version, revision, date),
		Args:    cobra.NoArgs,
	}
	c.AddCommand(configureCmd)
	c.AddCommand(statusCmd)
	c.AddCommand(postCmd)
	c.AddCommand(feedCmd)
	c.AddCommand(likeCmd)
	c.AddCommand(moodCmd)
	c.AddCommand(wallCmd)

	feedCmd.Flags().StringVarP(&category, "category", "k", "", "Filter the feed on a category")
	feedCmd.Flags().BoolVarP(&mirror, "mirror", "m", false, "Read the mirror feed")
	likeCmd.Flags().BoolVarP(&mirror, "mirror", "m", false, "Like a mirror message")

	if err := c.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var (
	category string
	mirror   bool

	configureCmd = &cobra.Command{
		Use:   "configure",
		Short: "Configure the Whisperwall server endpoint",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Configure()
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the server version and the mirror availability",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Status()
		},
	}

	postCmd = &cobra.Command{
		Use:   "post",
		Short: "Compose and post a whisper",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Post()
		},
	}

	feedCmd = &cobra.Command{
		Use:   "feed",
		Short: "Print the whisper feed, newest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Feed(category, mirror)
		},
	}

	likeCmd = &cobra.Command{
		Use:   "like ID",
		Short: "Like a whisper",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if mirror {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("malformed message id: %s", args[0])
				}
				return client.MirrorLike(id)
			}

			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("malformed whisper id: %s", args[0])
			}
			return client.Like(id)
		},
	}

	moodCmd = &cobra.Command{
		Use:   "mood",
		Short: "Print the generated mood summary of the wall",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Mood()
		},
	}

	wallCmd = &cobra.Command{
		Use:   "wall",
		Short: "Text-based whisper wall application",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return client.Wall()
		},
	}
)
