package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	postOwner   string
	postCaption string
)

// postCmd represents the post command
var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Create a post",
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		picture, err := svc.CreatePicture(context.Background(), postOwner, postCaption)
		if err != nil {
			fatal("Failed to create post", err)
		}
		fmt.Printf("Post '%s' created for %s.\n", picture.ID, picture.Owner)
	},
}

// likeCmd represents the like command
var likeCmd = &cobra.Command{
	Use:   "like <username> <picture-id>",
	Short: "Record a like on a post",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		if err := svc.LikePicture(context.Background(), args[0], args[1]); err != nil {
			fatal("Failed to like picture", err)
		}
		fmt.Printf("%s likes %s.\n", args[0], args[1])
	},
}

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow <follower> <followed>",
	Short: "Make one account follow another",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		if err := svc.Follow(context.Background(), args[0], args[1]); err != nil {
			fatal("Failed to follow", err)
		}
		fmt.Printf("%s now follows %s.\n", args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(followCmd)
	postCmd.Flags().StringVar(&postOwner, "owner", "", "Post owner username")
	postCmd.Flags().StringVar(&postCaption, "caption", "", "Post caption")
	postCmd.MarkFlagRequired("owner")
}
