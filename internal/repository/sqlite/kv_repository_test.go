package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/photodeck/internal/db"
	"github.com/vytor/photodeck/internal/repository"
	"github.com/vytor/photodeck/internal/repository/sqlite"
	"github.com/vytor/photodeck/internal/testutil"
)

type KVRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.KVRepository
}

func (s *KVRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewKVRepository(s.db.DB)
}

func (s *KVRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *KVRepositorySuite) TestGetMissing() {
	ctx := context.Background()

	value, ok, err := s.repo.Get(ctx, "flashcardDeck")
	s.Require().NoError(err)
	s.Assert().False(ok)
	s.Assert().Empty(value)
}

func (s *KVRepositorySuite) TestSetAndGet() {
	ctx := context.Background()

	err := s.repo.Set(ctx, "flashcardDeck", `[{"imageSrc":"x","name":"cat"}]`)
	s.Require().NoError(err)

	value, ok, err := s.repo.Get(ctx, "flashcardDeck")
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal(`[{"imageSrc":"x","name":"cat"}]`, value)
}

func (s *KVRepositorySuite) TestSetOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "flashcardHistory", "[]"))
	s.Require().NoError(s.repo.Set(ctx, "flashcardHistory", `[{"isCorrect":true}]`))

	value, ok, err := s.repo.Get(ctx, "flashcardHistory")
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal(`[{"isCorrect":true}]`, value)
}

func (s *KVRepositorySuite) TestDelete() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "flashcardDeck", "{broken"))
	s.Require().NoError(s.repo.Delete(ctx, "flashcardDeck"))

	_, ok, err := s.repo.Get(ctx, "flashcardDeck")
	s.Require().NoError(err)
	s.Assert().False(ok)
}

func (s *KVRepositorySuite) TestDeleteMissingIsNoError() {
	s.Assert().NoError(s.repo.Delete(context.Background(), "never-set"))
}

func (s *KVRepositorySuite) TestKeysAreIndependent() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Set(ctx, "flashcardDeck", "deck"))
	s.Require().NoError(s.repo.Set(ctx, "flashcardHistory", "history"))
	s.Require().NoError(s.repo.Delete(ctx, "flashcardDeck"))

	value, ok, err := s.repo.Get(ctx, "flashcardHistory")
	s.Require().NoError(err)
	s.Assert().True(ok)
	s.Assert().Equal("history", value)
}

func TestKVRepositorySuite(t *testing.T) {
	suite.Run(t, new(KVRepositorySuite))
}
