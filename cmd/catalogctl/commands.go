package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/dto"
)

func newRootCommand(build func() (*app, error)) *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Reconcile shop products from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := build()
			if err != nil {
				return err
			}
			a = built
			return nil
		},
	}

	get := func() *app { return a }
	root.AddCommand(
		newUpdateCommand(get),
		newDeleteCommand(get),
		newCreateCommand(get),
		newListCommand(get),
	)
	return root
}

type productOptions struct {
	title       string
	description string
	price       string
	vendor      string
	images      []string
}

func (o *productOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&o.title, "title", "", "Product title")
	flags.StringVar(&o.description, "description", "", "Product description")
	flags.StringVar(&o.price, "price", "", "Price as a decimal, e.g. 19.99")
	flags.StringVar(&o.vendor, "vendor", "", "Vendor name")
	flags.StringArrayVar(&o.images, "image", nil, "Image URL or data URL to upload (repeatable)")
}

func (o *productOptions) newImagesJSON() (string, error) {
	blobs := make([]domain.ImageBlob, 0, len(o.images))
	for _, src := range o.images {
		blobs = append(blobs, domain.ImageBlob{Src: src})
	}
	b, err := json.Marshal(blobs)
	return string(b), err
}

func newUpdateCommand(get func() *app) *cobra.Command {
	var (
		opts    productOptions
		keep    []string
		keepAll bool
	)

	cmd := &cobra.Command{
		Use:   "update PRODUCT_ID",
		Short: "Update a product and converge its images",
		Long: "Update a product's fields and images. Existing images not listed with --keep are deleted;\n" +
			"use --keep-all to leave every current image in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			ctx := cmd.Context()

			if keepAll {
				current, err := a.reader.GetProductImages(ctx, args[0])
				if err != nil {
					return err
				}
				for _, img := range current {
					keep = append(keep, img.ID)
				}
			}

			newImages, err := opts.newImagesJSON()
			if err != nil {
				return err
			}
			remaining, err := json.Marshal(append([]string{}, keep...))
			if err != nil {
				return err
			}

			return a.report(a.dispatcher.Dispatch(ctx, dto.ActionForm{
				Action:            dto.ActionUpdateProduct,
				ProductID:         args[0],
				Title:             opts.title,
				Description:       opts.description,
				Price:             opts.price,
				Vendor:            opts.vendor,
				NewImages:         newImages,
				RemainingImageIDs: string(remaining),
			}))
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringArrayVar(&keep, "keep", nil, "Existing image id to keep (repeatable)")
	cmd.Flags().BoolVar(&keepAll, "keep-all", false, "Keep every existing image")
	cmd.MarkFlagsMutuallyExclusive("keep", "keep-all")
	return cmd
}

func newDeleteCommand(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete PRODUCT_ID",
		Short:   "Delete a product",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			return a.report(a.dispatcher.Dispatch(cmd.Context(), dto.ActionForm{
				Action:    dto.ActionDeleteProduct,
				ProductID: args[0],
			}))
		},
	}
}

func newCreateCommand(get func() *app) *cobra.Command {
	var opts productOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product with at most one image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			newImages, err := opts.newImagesJSON()
			if err != nil {
				return err
			}
			return a.report(a.dispatcher.Dispatch(cmd.Context(), dto.ActionForm{
				Action:      dto.ActionCreateProduct,
				Title:       opts.title,
				Description: opts.description,
				Price:       opts.price,
				Vendor:      opts.vendor,
				NewImages:   newImages,
			}))
		},
	}

	opts.bind(cmd)
	return cmd
}

func newListCommand(get func() *app) *cobra.Command {
	var first int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List products",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			items, err := a.products.Execute(cmd.Context(), first)
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	cmd.Flags().IntVarP(&first, "first", "n", 10, "Number of products to list")
	return cmd
}
