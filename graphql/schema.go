// Package graphql assembles the root schema from the per-module query
// fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	gqlsecrets "github.com/whisperboard/secrets-backend/graphql/modules/secrets"
	"github.com/whisperboard/secrets-backend/store"
)

// CreateSchema builds the root query schema over the given store.
func CreateSchema(users store.UserStore) (graphql.Schema, error) {
	fields := graphql.Fields{}

	for name, field := range gqlsecrets.GetQueryFields(users) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
