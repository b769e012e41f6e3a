package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every account",
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		users, err := svc.Users(context.Background())
		if err != nil {
			fatal("Failed to list users", err)
		}

		for _, user := range users {
			fmt.Printf("%s\t%d followers\t%d posts\n", user.Username, user.FollowersCount, user.PostsCount)
		}
	},
}

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Show one account and its posts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()
		ctx := context.Background()

		user, err := svc.User(ctx, args[0])
		if err != nil {
			fatal("Failed to load user", err)
		}

		fmt.Printf("Username: %s\n", user.Username)
		fmt.Printf("Bio: %s\n", user.Bio)
		fmt.Printf("Followers: %d, Following: %d, Posts: %d\n",
			user.FollowersCount, user.FollowingCount(), user.PostsCount)

		pictures, err := svc.Pictures(ctx, user.Username)
		if err != nil {
			fatal("Failed to load pictures", err)
		}
		for i, picture := range pictures {
			fmt.Printf("Picture %d: %s - %s (%d likes)\n", i+1, picture.ID, picture.Caption, picture.LikesCount)
		}
	},
}

var signupBio string

// signupCmd represents the signup command
var signupCmd = &cobra.Command{
	Use:   "signup <username> <password>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		user, err := svc.CreateUser(context.Background(), args[0], args[1], signupBio)
		if err != nil {
			fatal("Failed to create user", err)
		}
		fmt.Printf("User '%s' created.\n", user.Username)
	},
}

// clearBioCmd represents the clear-bio command
var clearBioCmd = &cobra.Command{
	Use:   "clear-bio <username>",
	Short: "Empty an account's bio",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		if err := svc.ClearBio(context.Background(), args[0]); err != nil {
			fatal("Failed to clear bio", err)
		}
		fmt.Printf("Bio of '%s' cleared.\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(clearBioCmd)
	signupCmd.Flags().StringVar(&signupBio, "bio", "", "Profile bio")
}
