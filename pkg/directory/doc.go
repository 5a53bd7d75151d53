// Package directory loads employee records from where they live.
//
// A [Source] returns the flat employee list a chart is built from. The list
// is fetched once per view session; layout, selection and highlighting all
// work on that snapshot.
//
// Implementations:
//
//   - [FileSource]: a JSON or YAML file on disk
//   - [HTTPSource]: GET <base>/employees on an HR REST API, with bearer
//     token, retry and an optional response cache
//   - [MongoSource]: an employees collection in MongoDB
//   - [StaticSource]: an in-memory list, for tests and embedding
//
// [Open] builds the source described by a [Config].
package directory
