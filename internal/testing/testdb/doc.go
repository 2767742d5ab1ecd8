// Package testdb provides test database utilities for the TesfaFund API.
//
// # Test Database Setup
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//	}
//
// Connection settings come from TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER
// and TEST_DB_PASSWORD. Tests are skipped when SurrealDB is unreachable
// unless TEST_DB_REQUIRED is set.
//
// # Migrations
//
// The .surql files under migrations/ are applied once per TestDB. Set
// TESFAFUND_ROOT when running tests from outside the module tree.
//
// # Isolation
//
// Each TestDB gets its own namespace, removed again by Close.
//
// # Shared Database
//
//	tdb := testdb.NewShared(t)
//	t.Run("create", func(t *testing.T) { db := tdb.SetupSubtest(t) })
package testdb
