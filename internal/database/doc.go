// Package database provides document store connectivity for the TesfaFund API.
//
// # Database Interface
//
// The Database interface defines core operations:
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// # Connection Management
//
// The connection is created once at startup and shared by every repository:
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "tesfafund",
//	    Database:  "main",
//	    User:      "root",
//	    Password:  "secret",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//
// # Migrations
//
// Schema files live in migrations/*.surql and are applied in name order:
//
//	migs, err := database.LoadMigrations(dir)
//	err = database.ApplyMigrations(ctx, db, migs)
package database
