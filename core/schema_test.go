package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	Street string `json:"street"`
	City   string `json:"city,omitempty"`
}

type account struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Secret    string            `json:"-"`
	Nickname  *string           `json:"nickname"`
	Address   address           `json:"address"`
	Labels    map[string]string `json:"labels,omitempty"`
	Scores    []float64         `json:"scores"`
	Avatar    []byte            `json:"avatar,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`

	hidden string
}

type auditFields struct {
	UpdatedAt time.Time `json:"updatedAt"`
}

type record struct {
	auditFields
	ID string `json:"id"`
}

type node struct {
	Value string `json:"value"`
	Next  *node  `json:"next,omitempty"`
}

func TestRegistryRegisterType(t *testing.T) {
	reg := NewRegistry("")
	name := reg.RegisterType(account{})
	require.Equal(t, "account", name)

	schema, ok := reg.Schemas()["account"]
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)

	assert.Contains(t, props, "id")
	assert.Contains(t, props, "name")
	assert.NotContains(t, props, "Secret")
	assert.NotContains(t, props, "hidden")

	assert.Equal(t, map[string]interface{}{"type": "integer"}, props["id"])
	assert.Equal(t, map[string]interface{}{"type": "string", "format": "date-time"}, props["createdAt"])
	assert.Equal(t, map[string]interface{}{"type": "string", "format": "byte"}, props["avatar"])
	assert.Equal(t, map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "number"},
	}, props["scores"])
	assert.Equal(t, map[string]interface{}{
		"type":                 "object",
		"additionalProperties": map[string]interface{}{"type": "string"},
	}, props["labels"])

	// Nested named struct becomes its own component referenced by $ref.
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/address"}, props["address"])
	nested, ok := reg.Schemas()["address"]
	require.True(t, ok)
	nestedProps := nested["properties"].(map[string]interface{})
	assert.Contains(t, nestedProps, "street")

	// Required excludes omitempty and pointer fields, and is sorted.
	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"address", "createdAt", "id", "name", "scores"}, required)

	nestedRequired := nested["required"].([]string)
	assert.Equal(t, []string{"street"}, nestedRequired)
}

func TestRegistryEmbeddedFieldsFlattened(t *testing.T) {
	reg := NewRegistry("")
	reg.RegisterType(record{})

	schema := reg.Schemas()["record"]
	props := schema["properties"].(map[string]interface{})
	assert.Contains(t, props, "id")
	assert.Contains(t, props, "updatedAt")
}

func TestRegistryCycleSafe(t *testing.T) {
	reg := NewRegistry("")
	name := reg.RegisterType(node{})
	require.Equal(t, "node", name)

	schema := reg.Schemas()["node"]
	props := schema["properties"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/node"}, props["next"])
}

func TestRegistryTrimPrefix(t *testing.T) {
	reg := NewRegistry("Json")
	reg.Register("JsonUser", Schema{"type": "object"})

	_, ok := reg.Schemas()["User"]
	assert.True(t, ok)

	resolved := reg.resolve(RefSchema("JsonUser"))
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/User"}, resolved)
}

func TestRegistryResolveForms(t *testing.T) {
	reg := NewRegistry("")

	assert.Nil(t, reg.resolve(SchemaRef{}))

	inline := reg.resolve(InlineSchema(Schema{"type": "string"}))
	assert.Equal(t, map[string]interface{}{"type": "string"}, inline)

	named := reg.resolve(RefSchema("Pet"))
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/Pet"}, named)

	typed := reg.resolve(TypeSchema(address{}))
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/address"}, typed)
	_, registered := reg.Schemas()["address"]
	assert.True(t, registered)

	scalar := reg.resolve(TypeSchema(42))
	assert.Equal(t, map[string]interface{}{"type": "integer"}, scalar)
}

func TestRegistryRegisterTypeRejectsNonStructs(t *testing.T) {
	reg := NewRegistry("")
	assert.Empty(t, reg.RegisterType(nil))
	assert.Empty(t, reg.RegisterType(42))
	assert.Empty(t, reg.RegisterType("hello"))
	assert.Empty(t, reg.Schemas())
}
