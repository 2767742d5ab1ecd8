// Package config manages application configuration for the TesfaFund API.
//
// Configuration comes from environment variables. Before reading them, Load
// picks up .env.local and .env from the working directory when present;
// variables already set in the process are never overwritten.
//
// # Configuration Groups
//
//   - ServerConfig: port, environment, log level, timeouts, CORS origins
//   - DatabaseConfig: SurrealDB connection settings
//   - RateLimitConfig: write request limiting
//   - IdempotencyConfig: Idempotency-Key replay window
//   - SecurityConfig: bcrypt cost for recipient passwords
//
// # Environment Variables
//
//	SERVER_PORT            - HTTP server port (default: 8080)
//	SERVER_ENV             - development, production or test
//	LOG_LEVEL              - debug, info, warn or error (default: info)
//	CORS_ALLOWED_ORIGINS   - comma separated origins
//	DB_HOST, DB_PORT       - SurrealDB address (default: localhost:8000)
//	DB_NAMESPACE           - SurrealDB namespace (default: tesfafund)
//	DB_DATABASE            - SurrealDB database (default: main)
//	DB_USER, DB_PASSWORD   - SurrealDB credentials
//	RATE_LIMIT_ENABLED     - toggle write rate limiting (default: true)
//	IDEMPOTENCY_TTL        - how long POST results are replayed (default: 24h)
//	BCRYPT_COST            - password hashing cost (default: 12)
//
// Validate reports every problem at once using errors.Join.
package config
