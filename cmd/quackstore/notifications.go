package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// notificationsCmd represents the notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications <username>",
	Short: "List an account's notifications, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		notifications, err := svc.Notifications(context.Background(), args[0])
		if err != nil {
			fatal("Failed to list notifications", err)
		}

		for _, n := range notifications {
			fmt.Println(n.Message())
		}
	},
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print data directory changes until interrupted",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events, err := svc.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		for event := range events {
			fmt.Printf("%s %s\n", event.Type, event.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(watchCmd)
}
