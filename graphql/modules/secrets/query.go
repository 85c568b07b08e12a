package secrets

import (
	"github.com/graphql-go/graphql"

	"github.com/whisperboard/secrets-backend/store"
)

// GetQueryFields returns the secrets queries to be mounted in the root
// schema.
func GetQueryFields(users store.UserStore) graphql.Fields {
	return graphql.Fields{
		// The shared board, same visibility rule as GET /secrets.
		"secretsFeed": &graphql.Field{
			Type: graphql.NewList(SecretPostType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveFeed(p.Context, users)
			},
		},
		"boardOverview": &graphql.Field{
			Type: BoardOverviewType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(p.Context, users)
			},
		},
		// The caller's own account, null for anonymous requests.
		"viewer": &graphql.Field{
			Type: ViewerType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				viewer := ResolveViewer(p.Context)
				if viewer == nil {
					return nil, nil
				}
				return viewer, nil
			},
		},
	}
}
