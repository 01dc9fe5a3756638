package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/domain/schedule"
	"github.com/pubkit/pubkit/internal/ports/adapters/linkedin"
	"github.com/pubkit/pubkit/internal/ports/adapters/wordpress"
	"github.com/pubkit/pubkit/internal/types"
	"github.com/pubkit/pubkit/internal/usecase"
)

func newWordPressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordpress",
		Short: "Publish to a WordPress site",
	}

	var (
		post        types.BlogPost
		publishDate string
	)
	postCmd := &cobra.Command{
		Use:   "post <title> <content_path> [image_path]",
		Short: "Create a post from a markdown file",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			wp := a.cfg.WordPress
			if err := wp.Validate(); err != nil {
				return err
			}
			if err := usecase.RequireFile("content", args[1]); err != nil {
				return err
			}
			src, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			post.Title = args[0]
			post.Markdown = string(src)
			if len(args) == 3 {
				post.ImagePath = args[2]
			}
			if publishDate != "" {
				at, err := schedule.ParseStart(publishDate)
				if err != nil {
					return err
				}
				post.PublishDate = schedule.FormatPostDate(at)
			}

			ctx, cancel := apiContext(cmd)
			defer cancel()
			uc := usecase.New(usecase.Deps{Blog: wordpress.New(wp.URL, wp.User, wp.Password)})
			res, err := uc.PublishBlog(ctx, post, a.logf())
			if err != nil {
				return err
			}
			a.log.Info("post created", "title", post.Title, "id", res.ID, "status", post.Status)
			if res.Link != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Link)
			}
			return nil
		},
	}
	postCmd.Flags().StringSliceVar(&post.Categories, "categories", nil, "Comma-separated category names")
	postCmd.Flags().StringSliceVar(&post.Tags, "tags", nil, "Comma-separated tag names")
	postCmd.Flags().StringVar(&publishDate, "publish-date", "", "Post date, e.g. 2025-10-27T10:00:00")
	postCmd.Flags().StringVar(&post.Status, "status", "draft", "draft, publish or future")

	cmd.AddCommand(postCmd)
	return cmd
}

func newLinkedInCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linkedin",
		Short: "Share posts on LinkedIn",
	}

	var in usecase.SocialPostInput
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Share a markdown file as a text post, optionally with an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			li := a.cfg.LinkedIn
			creds := li.CredentialsFile
			if _, err := linkedin.LoadCredentials(creds); err != nil {
				return err
			}
			in.Logf = a.logf()

			ctx, cancel := apiContext(cmd)
			defer cancel()
			uc := usecase.New(usecase.Deps{
				Social: linkedin.NewClient(li.APIBase, creds),
				Auth:   linkedin.NewAuthorizer(creds, li.RedirectURL, a.logf()),
			})
			id, err := uc.PostToSocial(ctx, in)
			if err != nil {
				return err
			}
			a.log.Info("post created", "id", id)
			return nil
		},
	}
	postCmd.Flags().StringVarP(&in.MarkdownPath, "markdown", "m", "", "Markdown file with the post")
	postCmd.Flags().StringVarP(&in.ImagePath, "image", "i", "", "Image to attach")
	postCmd.Flags().BoolVar(&in.ForceAuth, "auth", false, "Re-authorize before posting")
	_ = postCmd.MarkFlagRequired("markdown")

	cmd.AddCommand(postCmd)
	return cmd
}
