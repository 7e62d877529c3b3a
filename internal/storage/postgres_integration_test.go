//go:build integration

package storage_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"contactbook/internal/domain"
	"contactbook/internal/storage"
	"contactbook/internal/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *storage.PostgresContactStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = storage.NewPostgresContactStore(s.pg.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateContacts(context.Background()))
}

func makeFields(name string) domain.ContactFields {
	return domain.ContactFields{
		Name:  name,
		Phone: "081234567890",
		Email: name + "@example.com",
	}
}

func (s *PostgresStoreSuite) TestInsertAndFind() {
	ctx := context.Background()

	c, err := s.store.Insert(ctx, makeFields("Alice"))
	s.Require().NoError(err)
	s.NotEqual(uuid.UUID{}, c.ID)

	byID, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Alice", byID.Name)
	s.Equal("alice@example.com", byID.Email)

	byName, err := s.store.FindByName(ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(c.ID, byName.ID)

	_, err = s.store.FindByName(ctx, "alice")
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListAllInsertionOrder() {
	ctx := context.Background()

	names := []string{"Charlie", "Alice", "Bob"}
	for _, name := range names {
		_, err := s.store.Insert(ctx, makeFields(name))
		s.Require().NoError(err)
	}

	all, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	for i, name := range names {
		s.Equal(name, all[i].Name)
	}
}

func (s *PostgresStoreSuite) TestUniqueIndexIsAuthoritative() {
	ctx := context.Background()

	_, err := s.store.Insert(ctx, makeFields("Alice"))
	s.Require().NoError(err)

	_, err = s.store.Insert(ctx, makeFields("Alice"))
	s.ErrorIs(err, storage.ErrDuplicateName)

	bob, err := s.store.Insert(ctx, makeFields("Bob"))
	s.Require().NoError(err)

	err = s.store.Update(ctx, bob.ID, makeFields("Alice"))
	s.ErrorIs(err, storage.ErrDuplicateName)
}

func (s *PostgresStoreSuite) TestUpdateMissingID() {
	err := s.store.Update(context.Background(), uuid.New(), makeFields("Alice"))
	s.ErrorIs(err, storage.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()

	c, err := s.store.Insert(ctx, makeFields("Alice"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteByID(ctx, c.ID))

	_, err = s.store.FindByID(ctx, c.ID)
	s.ErrorIs(err, storage.ErrNotFound)

	s.ErrorIs(s.store.DeleteByID(ctx, c.ID), storage.ErrNotFound)
}

// Insert, list, update, find, delete, list — the full lifecycle against a
// real database.
func (s *PostgresStoreSuite) TestContactLifecycle() {
	ctx := context.Background()

	c, err := s.store.Insert(ctx, domain.ContactFields{
		Name:  "Alice",
		Phone: "081234567890",
		Email: "alice@example.com",
	})
	s.Require().NoError(err)

	all, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(c.ID, all[0].ID)

	err = s.store.Update(ctx, c.ID, domain.ContactFields{
		Name:  "Alice2",
		Phone: "081234567890",
		Email: "alice2@example.com",
	})
	s.Require().NoError(err)

	updated, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Alice2", updated.Name)
	s.Equal("alice2@example.com", updated.Email)
	s.Equal(c.ID, updated.ID)

	s.Require().NoError(s.store.DeleteByID(ctx, c.ID))

	all, err = s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}
