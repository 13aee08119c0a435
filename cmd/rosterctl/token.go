package main

import (
	"time"

	"github.com/cmlabs-hris/roster-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenAdmin   bool
)

// tokenCmd issues an access token for an operator or an integrating system.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API access token",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject, e.g. the calling system name")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Grant access to the sync endpoints")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(tokenSubject, tokenAdmin)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
		"is_admin":     tokenAdmin,
	})
}
