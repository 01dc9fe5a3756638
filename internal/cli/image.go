package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/domain/images"
	"github.com/pubkit/pubkit/internal/ports"
	"github.com/pubkit/pubkit/internal/ports/adapters/gemini"
	"github.com/pubkit/pubkit/internal/ports/adapters/openai"
	"github.com/pubkit/pubkit/internal/types"
	"github.com/pubkit/pubkit/internal/usecase"
)

func newImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Generate and resize images",
	}

	var (
		provider string
		req      types.ImageRequest
	)
	gen := &cobra.Command{
		Use:   "generate <prompt> <output>",
		Short: "Generate an image from a text prompt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := apiContext(cmd)
			defer cancel()
			g, err := a.imageGenerator(ctx, provider)
			if err != nil {
				return err
			}
			req.Prompt = args[0]
			if err := usecase.New(usecase.Deps{Images: g}).GenerateImage(ctx, req, args[1]); err != nil {
				return err
			}
			a.log.Info("image saved", "path", args[1])
			return nil
		},
	}
	gen.Flags().StringVar(&provider, "provider", "openai", "openai or gemini")
	gen.Flags().StringVar(&req.Model, "model", "", "Model (default depends on provider)")
	gen.Flags().StringVar(&req.Size, "size", "1024x1024", "Image size WxH")

	var width, height int
	resize := &cobra.Command{
		Use:   "resize <in> <out>",
		Short: "Resize an image to exact dimensions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := images.ResizeFile(args[0], args[1], width, height); err != nil {
				return err
			}
			a.log.Info("image resized", "path", args[1], "width", width, "height", height)
			return nil
		},
	}
	resize.Flags().IntVar(&width, "width", 0, "Output width")
	resize.Flags().IntVar(&height, "height", 0, "Output height")
	_ = resize.MarkFlagRequired("width")
	_ = resize.MarkFlagRequired("height")

	cmd.AddCommand(gen, resize)
	return cmd
}

func (a *app) imageGenerator(ctx context.Context, provider string) (ports.ImageGenerator, error) {
	switch provider {
	case "openai":
		c := a.cfg.OpenAI
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return openai.New(openai.Config{APIKey: c.APIKey, BaseURL: c.BaseURL, AllowedHosts: c.AllowedHosts, Logf: a.logf()})
	case "gemini":
		c := a.cfg.Gemini
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return gemini.New(ctx, c.APIKey)
	}
	return nil, fmt.Errorf("unknown provider %q: want openai or gemini", provider)
}
