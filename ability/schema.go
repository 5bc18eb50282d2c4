package ability

import "github.com/invopop/jsonschema"

// SnapshotSchema reflects the JSON schema of the persistence blob, for
// external save-file validators. Per-ability state stays free-form
func SnapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(new(Snapshot))
	schema.Title = "Ability Manager Snapshot"
	schema.Description = "Active-flag set and opaque per-ability state captured at a save boundary."
	return schema
}
