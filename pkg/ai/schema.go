package ai

// Schema is the response schema handed to a structured-output call. It covers
// the subset both backends understand: objects, arrays and nullable strings.
type Schema struct {
	Type       string             `json:"type"`
	Nullable   bool               `json:"nullable,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
}

const (
	TypeObject = "object"
	TypeArray  = "array"
	TypeString = "string"
)

func String(nullable bool) *Schema { return &Schema{Type: TypeString, Nullable: nullable} }

func Object(props map[string]*Schema) *Schema {
	return &Schema{Type: TypeObject, Properties: props}
}

func ArrayOf(items *Schema) *Schema { return &Schema{Type: TypeArray, Items: items} }

// Nullable marks s as also accepting null and returns it.
func Nullable(s *Schema) *Schema {
	s.Nullable = true
	return s
}

// JSONSchema renders s as a draft-07 JSON Schema document. Nullable fields
// become a ["<type>", "null"] union.
func (s *Schema) JSONSchema() map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}
	out := map[string]interface{}{}
	if s.Nullable {
		out["type"] = []interface{}{s.Type, "null"}
	} else {
		out["type"] = s.Type
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for k, v := range s.Properties {
			props[k] = v.JSONSchema()
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	return out
}
