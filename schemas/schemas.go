// Package schemas carries the JSON schemas shipped with the module.
package schemas

import _ "embed"

//go:embed plan.schema.json
var Plan string
