package advisory

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
)

var replySchemaOnce = sync.OnceValues(func() (json.RawMessage, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&respondReply{})
	return json.Marshal(schema)
})

// replySchema is the JSON schema of the reply shape, sent with every
// request so the backend can constrain its structured output to it.
func replySchema() (json.RawMessage, error) {
	return replySchemaOnce()
}
