package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dex-api/data"
	"github.com/KirkDiggler/dex-api/internal/rows"
	"github.com/KirkDiggler/dex-api/internal/store"
)

// Well-known species ids in the embedded dataset
const (
	SpeciesBulbasaur         = 1
	SpeciesIvysaur           = 2
	SpeciesVenusaur          = 3
	SpeciesPikachu           = 25
	SpeciesRaichu            = 26
	SpeciesAbra              = 63
	SpeciesOnix              = 95
	SpeciesEevee             = 133
	SpeciesMew               = 151
	SpeciesEspeon            = 196
	SpeciesGiratina          = 487
	SpeciesMeloetta          = 648
	SpeciesFlabebe           = 669
	SpeciesGiratinaOrigin    = 10007
	SpeciesMeloettaPirouette = 10018
	SpeciesMegaVenusaur      = 10033
	SpeciesAlolanRaichu      = 10100
)

// LoadStore builds a store over the embedded dataset
func LoadStore(t *testing.T) *store.Store {
	t.Helper()

	set, err := rows.LoadFS(data.FS())
	require.NoError(t, err, "failed to read embedded dataset")

	st, err := store.New(&store.Config{Rows: set})
	require.NoError(t, err, "failed to build store")

	return st
}
