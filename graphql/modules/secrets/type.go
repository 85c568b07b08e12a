// Package secrets defines the GraphQL types and queries for the secrets
// board.
package secrets

import (
	"github.com/graphql-go/graphql"
)

// SecretPostType represents one entry on the shared board.
var SecretPostType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SecretPost",
	Fields: graphql.Fields{
		"secret":    &graphql.Field{Type: graphql.String},
		"posted_at": &graphql.Field{Type: graphql.String},
	},
})

// BoardOverviewType represents the board-level counters.
var BoardOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BoardOverview",
	Fields: graphql.Fields{
		"total_users":   &graphql.Field{Type: graphql.Int},
		"total_secrets": &graphql.Field{Type: graphql.Int},
	},
})

// ViewerType describes the authenticated caller. Federated accounts have
// no username, so the field may be empty even when the viewer is not null.
var ViewerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Viewer",
	Fields: graphql.Fields{
		"username":      &graphql.Field{Type: graphql.String},
		"auth_provider": &graphql.Field{Type: graphql.String},
		"has_secret":    &graphql.Field{Type: graphql.Boolean},
	},
})
