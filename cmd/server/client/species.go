package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	skipCache      bool
	expandVariants bool
	rarity         string
)

var speciesCmd = &cobra.Command{
	Use:   "species [id-or-name]",
	Short: "Show a species summary",
	Long: `Look up a species by id or by any localized name. Examples:

  species 25
  species "Mr. Mime"
  species flabebe`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, speciesRequest(args[0], skipCache),
			func(ctx context.Context, b Backend, req *structpb.Struct) (*structpb.Struct, error) {
				return b.GetSpecies(ctx, req)
			})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [dimension] [key]",
	Short: "List species ids matching an index key",
	Long: `Search one index dimension. Dimensions are type, region, move, name,
dex_number and gender. Examples:

  search type grass
  search move thunderbolt
  search name pikachu --expand`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := map[string]interface{}{
			"dimension":       args[0],
			"key":             args[1],
			"expand_variants": expandVariants,
		}
		return run(cmd, body,
			func(ctx context.Context, b Backend, req *structpb.Struct) (*structpb.Struct, error) {
				return b.SearchSpecies(ctx, req)
			})
	},
}

var evolutionCmd = &cobra.Command{
	Use:   "evolution [id]",
	Short: "Show a species' evolution line and description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("species id must be a number: %w", err)
		}
		return run(cmd, map[string]interface{}{"species_id": id},
			func(ctx context.Context, b Backend, req *structpb.Struct) (*structpb.Struct, error) {
				return b.GetEvolution(ctx, req)
			})
	},
}

var spawnCmd = &cobra.Command{
	Use:   "spawn",
	Short: "Pick a random species weighted by abundance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, map[string]interface{}{"rarity": rarity},
			func(ctx context.Context, b Backend, req *structpb.Struct) (*structpb.Struct, error) {
				return b.RandomSpawn(ctx, req)
			})
	},
}

func init() {
	speciesCmd.Flags().BoolVar(&skipCache, "skip-cache", false, "render without reading the view cache")
	searchCmd.Flags().BoolVar(&expandVariants, "expand", false, "include every form sharing a matched name")
	spawnCmd.Flags().StringVar(&rarity, "rarity", "normal", "pool: normal, mythical, legendary, ultra_beast")
}

// speciesRequest treats an all-digit argument as an id
func speciesRequest(arg string, skip bool) map[string]interface{} {
	body := map[string]interface{}{"skip_cache": skip}
	if id, err := strconv.Atoi(arg); err == nil {
		body["species_id"] = id
	} else {
		body["name"] = arg
	}
	return body
}
