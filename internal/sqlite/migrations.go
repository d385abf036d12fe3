package sqlite

import _ "embed"

//go:embed migrations/001_initial_schema.up.sql
var initialSchema string
