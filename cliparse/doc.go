// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3519)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - HostKeySalt: Secret for host key HMAC (required)
  - PartyCodeSalt: Secret for join code generation (required)
  - DemoSeed: RNG seed for demo vote simulation (0 = time-based)

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-host-salt   Host key salt
	-code-salt   Party code salt
	-demo-seed   Demo simulation seed

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	HOST_KEY_SALT   → -host-salt
	PARTY_CODE_SALT → -code-salt
	DEMO_SEED       → -demo-seed

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by main before parsing (github.com/joho/godotenv).

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - HOST_KEY_SALT must be provided
  - PARTY_CODE_SALT must be provided
*/
package cliparse
