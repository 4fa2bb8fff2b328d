// Copyright (c) 2026 Encore Party Game.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Encore API server.

Encore is a multiplayer party game where players anonymously submit songs,
vote on each other's submissions, and are scored from peer ratings,
confidence wagers, and theme-adherence bonuses.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:encore.db go run main.go

Or with flags:

	go run main.go -p 3519 -d "postgres://..." -t postgres

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - DATABASE_URL (-d): database connection string
  - HOST_KEY_SALT (-host-salt): secret for host key HMAC
  - PARTY_CODE_SALT (-code-salt): secret for join code generation

Optional settings:

  - PORT (-p): server port (default: 3519)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DEMO_SEED (-demo-seed): fixed seed for demo vote simulation

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP handlers plus the lifecycle/scoring/simulation core
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error kinds
  - models: domain and request/response types
  - auth: host keys, join codes, ID generation
  - catalog: predefined themes, demo tracks, identity pools
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
