package jsonschema

// ToValue serializes a schema AST into the JSON value model. This is the
// "serialize" operation referenced throughout §4: Clone, the minimizer's
// DeepEquals fast path, and every reduction rule's "only populated field
// is X" check all operate on a schema's ToValue() form rather than on the
// Go struct directly, so that equivalence is judged the same way
// regardless of which in-memory shape produced it.
func (s *Schema) ToValue() Value {
	if s == nil {
		return Null()
	}
	if s.Valid != nil {
		return NewBool(*s.Valid)
	}

	m := NewOrderedMap[Value]()

	if len(s.AllOf) > 0 {
		m.Set("allOf", schemaListToValue(s.AllOf))
	}
	if len(s.AnyOf) > 0 {
		m.Set("anyOf", schemaListToValue(s.AnyOf))
	}
	if len(s.OneOf) > 0 {
		m.Set("oneOf", schemaListToValue(s.OneOf))
	}
	if s.Not != nil {
		m.Set("not", s.Not.ToValue())
	}
	if s.If != nil {
		m.Set("if", s.If.ToValue())
	}
	if s.Then != nil {
		m.Set("then", s.Then.ToValue())
	}
	if s.Else != nil {
		m.Set("else", s.Else.ToValue())
	}
	if len(s.Type) > 0 {
		m.Set("type", typeSetToValue(s.Type))
	}
	if s.Const != nil {
		m.Set("const", *s.Const)
	}
	if s.Enum != nil {
		m.Set("enum", NewArray(s.Enum))
	}
	if s.Minimum != nil {
		m.Set("minimum", *s.Minimum)
	}
	if s.Maximum != nil {
		m.Set("maximum", *s.Maximum)
	}
	if s.ExclusiveMinimum != nil {
		m.Set("exclusiveMinimum", exclusiveBoundToValue(s.ExclusiveMinimum))
	}
	if s.ExclusiveMaximum != nil {
		m.Set("exclusiveMaximum", exclusiveBoundToValue(s.ExclusiveMaximum))
	}
	if s.MultipleOf != nil {
		m.Set("multipleOf", *s.MultipleOf)
	}
	if s.MinLength != nil {
		m.Set("minLength", NewInt(int64(*s.MinLength)))
	}
	if s.MaxLength != nil {
		m.Set("maxLength", NewInt(int64(*s.MaxLength)))
	}
	if s.Pattern != nil {
		m.Set("pattern", NewString(*s.Pattern))
	}
	if s.Format != nil {
		m.Set("format", NewString(*s.Format))
	}
	if s.ContentEncoding != nil {
		m.Set("contentEncoding", NewString(*s.ContentEncoding))
	}
	if s.ContentMediaType != nil {
		m.Set("contentMediaType", NewString(*s.ContentMediaType))
	}
	if s.Items != nil {
		m.Set("items", itemsToValue(s.Items))
	}
	if s.AdditionalItems != nil {
		m.Set("additionalItems", boolOrSchemaToValue(s.AdditionalItems))
	}
	if s.MinItems != nil {
		m.Set("minItems", NewInt(int64(*s.MinItems)))
	}
	if s.MaxItems != nil {
		m.Set("maxItems", NewInt(int64(*s.MaxItems)))
	}
	if s.UniqueItems != nil {
		m.Set("uniqueItems", NewBool(*s.UniqueItems))
	}
	if s.Contains != nil {
		m.Set("contains", s.Contains.ToValue())
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		m.Set("properties", schemaMapToValue(s.Properties))
	}
	if s.PatternProperties != nil && s.PatternProperties.Len() > 0 {
		m.Set("patternProperties", schemaMapToValue(s.PatternProperties))
	}
	if s.AdditionalProperties != nil {
		m.Set("additionalProperties", boolOrSchemaToValue(s.AdditionalProperties))
	}
	if s.PropertyNames != nil {
		m.Set("propertyNames", s.PropertyNames.ToValue())
	}
	if len(s.Required) > 0 {
		items := make([]Value, len(s.Required))
		for i, r := range s.Required {
			items[i] = NewString(r)
		}
		m.Set("required", NewArray(items))
	}
	if s.Dependencies != nil && s.Dependencies.Len() > 0 {
		m.Set("dependencies", dependenciesToValue(s.Dependencies))
	}
	if s.MinProperties != nil {
		m.Set("minProperties", NewInt(int64(*s.MinProperties)))
	}
	if s.MaxProperties != nil {
		m.Set("maxProperties", NewInt(int64(*s.MaxProperties)))
	}
	if s.Title != nil {
		m.Set("title", NewString(*s.Title))
	}
	if s.Description != nil {
		m.Set("description", NewString(*s.Description))
	}
	if s.ID != nil {
		m.Set("id", NewString(*s.ID))
	}
	if s.SchemaVersion != nil {
		m.Set("$schema", NewString(*s.SchemaVersion))
	}
	if s.Default != nil {
		m.Set("default", *s.Default)
	}
	if s.ExtensionData != nil {
		s.ExtensionData.Each(func(key string, val Value) {
			m.Set(key, val)
		})
	}

	return NewObject(m)
}

func schemaListToValue(list []*Schema) Value {
	items := make([]Value, len(list))
	for i, c := range list {
		items[i] = c.ToValue()
	}
	return NewArray(items)
}

func schemaMapToValue(m *OrderedMap[*Schema]) Value {
	out := NewOrderedMap[Value]()
	m.Each(func(key string, s *Schema) {
		out.Set(key, s.ToValue())
	})
	return NewObject(out)
}

func typeSetToValue(types []TypeName) Value {
	if len(types) == 1 {
		return NewString(string(types[0]))
	}
	items := make([]Value, len(types))
	for i, t := range types {
		items[i] = NewString(string(t))
	}
	return NewArray(items)
}

func boolOrSchemaToValue(b *BoolOrSchema) Value {
	if b.Bool != nil {
		return NewBool(*b.Bool)
	}
	if b.Schema != nil {
		return b.Schema.ToValue()
	}
	return NewBool(true)
}

func exclusiveBoundToValue(e *ExclusiveBound) Value {
	if e.Bool != nil {
		return NewBool(*e.Bool)
	}
	if e.Number != nil {
		return *e.Number
	}
	return NewBool(false)
}

func itemsToValue(it *Items) Value {
	if it.Tuple != nil {
		return schemaListToValue(it.Tuple)
	}
	if it.Single != nil {
		return it.Single.ToValue()
	}
	return NewObject(NewOrderedMap[Value]())
}

func dependenciesToValue(deps *OrderedMap[Dependency]) Value {
	out := NewOrderedMap[Value]()
	deps.Each(func(key string, d Dependency) {
		switch d.Kind {
		case DependencySchema:
			out.Set(key, d.Schema.ToValue())
		default:
			items := make([]Value, len(d.Names))
			for i, n := range d.Names {
				items[i] = NewString(n)
			}
			out.Set(key, NewArray(items))
		}
	})
	return NewObject(out)
}
