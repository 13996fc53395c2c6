package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/catalog"
	"github.com/bookfather/admin/internal/export"
	"github.com/bookfather/admin/internal/models"
	"github.com/bookfather/admin/internal/screen"
)

var bannerResource = resource[models.Banner, models.BannerFields]{
	singular: "banner",
	plural:   "banners",
	fields: []flagField[models.BannerFields]{
		stringFlag("img-url", "Banner image URL", func(f *models.BannerFields) *string { return &f.ImgURL }),
	},
	table:       export.BannersTable,
	parquet:     export.WriteParquet[models.Banner],
	readParquet: export.ReadParquet[models.Banner],
	open: func(ctx context.Context, api *catalog.API, opts screen.Options) controller[models.Banner, models.BannerFields] {
		s := screen.NewBannerScreen(ctx, api.Banners, opts)
		return controller[models.Banner, models.BannerFields]{Screen: s, init: s.Init, update: s.Update}
	},
}

func newBannersCmd(o *rootOptions) *cobra.Command {
	return bannerResource.command(o, "Manage storefront banners")
}
