package speciesview_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/redis"
	"github.com/KirkDiggler/dex-api/internal/repositories/speciesview"
	"github.com/KirkDiggler/dex-api/internal/testutils"
)

var testNow = time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC)

func testView() *speciesview.View {
	return &speciesview.View{
		ID:            1,
		DexNumber:     1,
		Name:          "Bulbasaur",
		Slug:          "bulbasaur",
		Types:         []string{"Grass", "Poison"},
		Region:        "kanto",
		BaseStats:     speciesview.Stats{HP: 45, Atk: 49, Def: 49, SAtk: 65, SDef: 65, Spd: 45},
		Rarity:        "normal",
		DefaultGender: "Male",
		ImageURL:      "https://cdn.poketwo.net/images/1.png",
		ShinyImageURL: "https://cdn.poketwo.net/shiny/1.png",
		EvolutionText: "Bulbasaur evolves into Ivysaur starting from level 16.",
		EvolutionLine: []int{1, 2, 3},
		Moveset:       []int{33, 45, 22},
		RenderedAt:    testNow,
	}
}

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctx     context.Context
	client  redis.Client
	mr      *miniredis.Miniredis
	cleanup func()
	repo    speciesview.Repository
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	s.client = client
	s.mr = mr
	s.cleanup = cleanup

	repo, err := speciesview.NewRedisRepository(&speciesview.Config{
		Client: client,
		Clock:  clock.NewFixed(testNow),
		TTL:    10 * time.Minute,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepository() {
	testCases := []struct {
		name   string
		config *speciesview.Config
	}{
		{name: "nil config"},
		{name: "missing client", config: &speciesview.Config{Clock: clock.New()}},
		{name: "missing clock", config: &speciesview.Config{Client: s.client}},
		{name: "negative ttl", config: &speciesview.Config{Client: s.client, Clock: clock.New(), TTL: -time.Second}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := speciesview.NewRedisRepository(tc.config)
			s.Error(err)
			s.Nil(repo)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestPutThenGet() {
	out, err := s.repo.Put(s.ctx, &speciesview.PutInput{View: testView()})
	s.Require().NoError(err)
	s.Equal(testNow.Add(10*time.Minute), out.ExpiresAt)

	s.True(s.mr.Exists("species_view:1"))
	s.Equal(10*time.Minute, s.mr.TTL("species_view:1"))

	got, err := s.repo.Get(s.ctx, &speciesview.GetInput{SpeciesID: 1})
	s.Require().NoError(err)
	s.Equal(testView(), got.View)
}

func (s *RedisRepositoryTestSuite) TestPutCallTTL() {
	_, err := s.repo.Put(s.ctx, &speciesview.PutInput{View: testView(), TTL: time.Minute})
	s.Require().NoError(err)
	s.Equal(time.Minute, s.mr.TTL("species_view:1"))

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, &speciesview.GetInput{SpeciesID: 1})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, &speciesview.GetInput{SpeciesID: 25})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetCorrupt() {
	s.Require().NoError(s.mr.Set("species_view:25", "{not json"))

	_, err := s.repo.Get(s.ctx, &speciesview.GetInput{SpeciesID: 25})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Put(s.ctx, &speciesview.PutInput{View: testView()})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, &speciesview.DeleteInput{SpeciesID: 1})
	s.Require().NoError(err)
	s.True(out.Deleted)

	out, err = s.repo.Delete(s.ctx, &speciesview.DeleteInput{SpeciesID: 1})
	s.Require().NoError(err)
	s.False(out.Deleted)
}

func (s *RedisRepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.Get(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, &speciesview.GetInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, &speciesview.PutInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Put(s.ctx, &speciesview.PutInput{View: &speciesview.View{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Delete(s.ctx, &speciesview.DeleteInput{SpeciesID: -1})
	s.True(errors.IsInvalidArgument(err))
}

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	c := clock.NewFixed(testNow)
	repo := speciesview.NewInMemory(c, time.Minute)

	_, err := repo.Get(ctx, &speciesview.GetInput{SpeciesID: 1})
	assert.True(t, errors.IsNotFound(err))

	out, err := repo.Put(ctx, &speciesview.PutInput{View: testView()})
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Minute), out.ExpiresAt)

	got, err := repo.Get(ctx, &speciesview.GetInput{SpeciesID: 1})
	require.NoError(t, err)
	got.View.Name = "changed"

	again, err := repo.Get(ctx, &speciesview.GetInput{SpeciesID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Bulbasaur", again.View.Name)

	c.Advance(time.Minute)
	_, err = repo.Get(ctx, &speciesview.GetInput{SpeciesID: 1})
	assert.True(t, errors.IsNotFound(err))

	del, err := repo.Delete(ctx, &speciesview.DeleteInput{SpeciesID: 1})
	require.NoError(t, err)
	assert.True(t, del.Deleted)
}
