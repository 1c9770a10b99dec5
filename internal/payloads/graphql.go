package payloads

// IntrospectionQuery is the full GraphQL introspection document. It requests
// the complete schema, including deprecated fields and directives, so that
// properly hardened servers reject it outright instead of answering a
// partial selection.
const IntrospectionQuery = `query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
      description
      locations
      args {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
          }
        }
      }
    }
  }
}`

// TypenameQuery is the smallest query a GraphQL server will answer. It is
// used to confirm that an endpoint speaks GraphQL at all, without touching
// the schema.
const TypenameQuery = `{__typename}`

// CommonGraphQLPaths contains commonly used paths for GraphQL endpoints,
// probed during endpoint discovery.
var CommonGraphQLPaths = []string{
	"/graphql",
	"/api/graphql",
	"/graphql/v1",
	"/graphql/v2",
	"/api",
	"/query",
	"/graph",
	"/graphql.php",
	"/graphql.json",
}

// GraphQLResponseKeywords are substrings searched in a response to confirm
// a GraphQL endpoint during discovery.
var GraphQLResponseKeywords = []string{
	"__typename",
	"GraphQL", // often appears in error messages
	"data",
	"errors",
	"extensions",
}

// ServerSignature maps a substring found in response bodies to a GraphQL
// server implementation.
type ServerSignature struct {
	Product string
	Pattern string
}

// ServerSignatures are matched against the probe response body to name the
// GraphQL implementation behind the endpoint. Patterns come from each
// server's characteristic error envelopes.
var ServerSignatures = []ServerSignature{
	{Product: "Apollo Server", Pattern: "GRAPHQL_VALIDATION_FAILED"},
	{Product: "Apollo Server", Pattern: "PersistedQueryNotFound"},
	{Product: "Hasura", Pattern: "validation-failed"},
	{Product: "Hasura", Pattern: "data_connector_error"},
	{Product: "GraphQL Yoga", Pattern: "graphql-yoga"},
	{Product: "graphql-js (express-graphql)", Pattern: "Must provide query string"},
	{Product: "graphql-ruby", Pattern: "Field '__schema' doesn't exist"},
}
