// Package demo wires a small layered application with ivy. The ivy command
// uses it to show resolution end to end.
package demo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ARTM2000/ivy"
)

// ---------------------------------------------------------------------------
// Domain types
// ---------------------------------------------------------------------------

// Settings is the application configuration the database is built from.
type Settings struct {
	DatabaseURL string
}

// Database is a fake connection that logs the queries it receives.
type Database struct {
	URL    string
	Logger *zap.Logger
	Closed bool
}

// Query logs q and returns a canned row.
func (db *Database) Query(q string) string {
	db.Logger.Info("query", zap.String("sql", q))
	return "row-result"
}

// Close marks the connection closed.
func (db *Database) Close() error {
	db.Closed = true
	db.Logger.Info("database closed", zap.String("url", db.URL))
	return nil
}

// UserRepository loads users through a Database.
type UserRepository struct {
	DB *Database
}

// FindByID queries the user with the given id.
func (r *UserRepository) FindByID(id int) string {
	return r.DB.Query(fmt.Sprintf("SELECT * FROM users WHERE id = %d", id))
}

// UserService receives its collaborators through property injection.
type UserService struct {
	Repo   *UserRepository `ivy:"repo"`
	Logger *zap.Logger     `ivy:"log"`
}

// GetUser logs the lookup and returns the user with the given id.
func (s *UserService) GetUser(id int) string {
	s.Logger.Info("looking up user", zap.Int("id", id))
	return s.Repo.FindByID(id)
}

// ---------------------------------------------------------------------------
// Constructors and handles
// ---------------------------------------------------------------------------

// NewDatabase opens a Database for s.DatabaseURL.
func NewDatabase(s Settings, l *zap.Logger) *Database {
	return &Database{URL: s.DatabaseURL, Logger: l}
}

// NewUserRepository creates a UserRepository backed by db.
func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{DB: db}
}

// Handles for the demo types. UserService has no constructor and is built
// by [ivy.TypeFor].
var (
	DatabaseType       = ivy.TypeOf(NewDatabase)
	UserRepositoryType = ivy.TypeOf(NewUserRepository)
	UserServiceType    = ivy.TypeFor[UserService]()
)

// Module registers the application. The logger and settings are supplied by
// the caller and registered under the names "log" and "settings".
func Module(s Settings, l *zap.Logger) ivy.Module {
	return ivy.Table{
		{Type: ivy.NamedType("log", func() *zap.Logger { return l }), Singleton: true},
		{Type: ivy.NamedType("settings", func() Settings { return s }), Singleton: true},
		{Type: DatabaseType, Inject: []ivy.Identifier{ivy.Name("settings"), ivy.Name("log")}, Singleton: true},
		{Type: UserRepositoryType, Inject: []ivy.Identifier{DatabaseType}},
		{Type: UserServiceType, InjectProperties: map[string]ivy.Identifier{
			"repo": UserRepositoryType,
			"log":  ivy.Name("log"),
		}},
	}
}
