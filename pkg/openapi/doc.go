// Package openapi exposes the contract for importing model type definitions
// from OpenAPI component schemas. The kin-openapi backed implementation lives
// in internal/openapi; construct it through the root hydrate package.
//
// Mapping:
//   - a $ref to an object component becomes a single nested instance
//   - an array of $ref objects becomes a list of instances
//   - an array of anything else becomes a list of raw values
//   - inline objects with properties become types named Parent.property
//   - scalars keep their OpenAPI type as the scalar marker
//   - additionalProperties: false disables dynamic properties
//
// The x-hydrate-id-prefix and x-hydrate-uuid-ids schema extensions set the
// object id strategy of the generated type.
package openapi
