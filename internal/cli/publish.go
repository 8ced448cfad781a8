package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/nrcfold/internal/publish"
)

// PublishResult describes a completed upload.
type PublishResult struct {
	RepoID string `json:"repo_id"`
	Card   string `json:"card"`
	URL    string `json:"url"`
}

// NewPublishCommand creates the publish command.
func NewPublishCommand(rootOpts *RootOptions) *cobra.Command {
	var repoID, card string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a model card to a model repository",
		Long: `Create the model repository if needed and upload a text file as its
README.md. The access token is read from HF_TOKEN.

Examples:
  HF_TOKEN=... nrc publish --card MODEL_CARD.md
  HF_TOKEN=... nrc publish --repo-id me/nrc-test --card card.md`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newFormatter(rootOpts, cmd)
			cfg := rootOpts.Config()

			if repoID == "" {
				repoID = cfg.Publish.RepoID
			}
			if _, err := os.Stat(card); err != nil {
				return commandError(out, ErrCodeIO, "cannot read card", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			client, err := publish.NewClientFromEnv(ctx,
				publish.WithBaseURL(cfg.Publish.BaseURL),
				publish.WithLogger(rootOpts.Logger()),
			)
			if err != nil {
				return commandError(out, ErrCodeUsage, "cannot authenticate", err)
			}

			url, err := client.PublishCard(ctx, repoID, card)
			if err != nil {
				code := ErrCodeIO
				if errors.Is(err, publish.ErrInvalidRepoID) {
					code = ErrCodeUsage
				}
				return commandError(out, code, "publish failed", err)
			}

			return out.Success(PublishResult{RepoID: repoID, Card: card, URL: url},
				"Model card uploaded: "+url+"\n")
		},
	}

	cmd.Flags().StringVar(&repoID, "repo-id", "", "target repository (owner/name); defaults to the configured repo")
	cmd.Flags().StringVar(&card, "card", "README.md", "text file to upload as the model card")

	return cmd
}
