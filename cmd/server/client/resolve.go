package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	attackerLevel    int
	defenderLevel    int
	attackerStages   []string
	defenderStages   []string
	attackerAilments []string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [move] [attacker-id] [defender-id]",
	Short: "Resolve one move between two species",
	Long: `Resolve a single move use. The move is an id or a name. Stages are
stat=value pairs. Examples:

  resolve thunderbolt 25 7
  resolve 33 1 4 --attacker-stages atk=2,spd=-1
  resolve ember 4 1 --attacker-ailments Burn`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := resolveRequest(args)
		if err != nil {
			return err
		}
		return run(cmd, body,
			func(ctx context.Context, b Backend, req *structpb.Struct) (*structpb.Struct, error) {
				return b.ResolveMove(ctx, req)
			})
	},
}

func init() {
	resolveCmd.Flags().IntVar(&attackerLevel, "attacker-level", 50, "attacker level")
	resolveCmd.Flags().IntVar(&defenderLevel, "defender-level", 50, "defender level")
	resolveCmd.Flags().StringSliceVar(&attackerStages, "attacker-stages", nil, "attacker stat stages, e.g. atk=2")
	resolveCmd.Flags().StringSliceVar(&defenderStages, "defender-stages", nil, "defender stat stages, e.g. evasion=1")
	resolveCmd.Flags().StringSliceVar(&attackerAilments, "attacker-ailments", nil, "attacker ailments, e.g. Burn")
}

func resolveRequest(args []string) (map[string]interface{}, error) {
	attackerID, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("attacker id must be a number: %w", err)
	}
	defenderID, err := strconv.Atoi(args[2])
	if err != nil {
		return nil, fmt.Errorf("defender id must be a number: %w", err)
	}

	aStages, err := parseStages(attackerStages)
	if err != nil {
		return nil, err
	}
	dStages, err := parseStages(defenderStages)
	if err != nil {
		return nil, err
	}

	ailments := make([]interface{}, len(attackerAilments))
	for i, a := range attackerAilments {
		ailments[i] = a
	}

	body := map[string]interface{}{
		"attacker": map[string]interface{}{
			"species_id": attackerID,
			"level":      attackerLevel,
			"stages":     aStages,
			"ailments":   ailments,
		},
		"defender": map[string]interface{}{
			"species_id": defenderID,
			"level":      defenderLevel,
			"stages":     dStages,
		},
	}
	if id, err := strconv.Atoi(args[0]); err == nil {
		body["move_id"] = id
	} else {
		body["move_name"] = args[0]
	}
	return body, nil
}

// parseStages reads stat=value pairs
func parseStages(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		stat, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("stage %q must be stat=value", pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("stage %q value must be a number: %w", pair, err)
		}
		out[strings.ToLower(strings.TrimSpace(stat))] = value
	}
	return out, nil
}
