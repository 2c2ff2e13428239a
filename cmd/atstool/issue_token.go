package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ats-backend/config"
	authutils "ats-backend/lib/utils/auth-utils"
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Issue an access token",
	Long:  "Signs an access token for a user of a space with the configured secret. Used for service accounts and local testing.",
	RunE:  runIssueToken,
}

var (
	issueTokenUser  string
	issueTokenName  string
	issueTokenSpace string
)

func init() {
	issueTokenCmd.Flags().StringVarP(&issueTokenUser, "user", "u", "", "User id (required)")
	issueTokenCmd.Flags().StringVarP(&issueTokenName, "name", "n", "", "User display name")
	issueTokenCmd.Flags().StringVarP(&issueTokenSpace, "space", "s", "", "Space id (required)")

	if err := issueTokenCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	if err := issueTokenCmd.MarkFlagRequired("space"); err != nil {
		panic(fmt.Sprintf("failed to mark space flag as required: %v", err))
	}

	rootCmd.AddCommand(issueTokenCmd)
}

func runIssueToken(cmd *cobra.Command, _ []string) error {
	config.InitConfig()
	token, err := authutils.GetToken(issueTokenUser, issueTokenName, issueTokenSpace)
	if err != nil {
		return errors.Wrap(err, "token signing failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
