package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dtroode/lostfound/internal/client"
	"github.com/dtroode/lostfound/internal/profile"
)

func postCmd() *cobra.Command {
	var (
		item     client.NewItem
		place    string
		lat, lng float64
	)

	cmd := &cobra.Command{
		Use:   "post lost|found",
		Short: "Post a lost or found item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch itemType := profile.ItemType(strings.ToLower(args[0])); itemType {
			case profile.ItemTypeLost, profile.ItemTypeFound:
				item.Type = itemType
			default:
				return fmt.Errorf("item type must be lost or found, got %q", args[0])
			}

			coords := cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng")
			switch {
			case coords && place != "":
				return errors.New("use either --location or --lat/--lng")
			case coords:
				item.Location = profile.CoordinatesLocation(lat, lng)
			default:
				item.Location = profile.TextLocation(place)
			}

			if err := session.Load(cmd.Context()); err != nil {
				return err
			}
			if !session.IsAuthenticated() {
				return errors.New("not signed in, run lostfound login first")
			}

			created, err := client.NewItems(conn).CreateItem(cmd.Context(), item)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s item %s (%s)\n", created.ItemType, created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&item.Name, "name", "", "item name")
	cmd.Flags().StringVar(&item.Description, "description", "", "item description")
	cmd.Flags().StringVar(&item.Category, "category", "", "item category")
	cmd.Flags().StringVar(&item.Date, "date", "", "when it was lost or found, YYYY-MM-DD or RFC 3339")
	cmd.Flags().StringVar(&item.ImgURL, "image-url", "", "picture of the item")
	cmd.Flags().StringVar(&place, "location", "", "where, as text")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
