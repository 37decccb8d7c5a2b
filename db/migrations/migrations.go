// Package migrations embeds the schema of the traffic controller: campaigns,
// tracked URLs, child campaigns, the budget ledger and the trigger that
// keeps automatic sync away from click counts.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the binary expects.
const Version = 1
