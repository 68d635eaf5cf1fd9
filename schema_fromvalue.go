package jsonschema

// SchemaFromValue binds a JSON value model tree into a schema AST. It is
// the inverse of (*Schema).ToValue and is the entry point schemas loaded
// from JSON or YAML source go through on their way into the compiler and
// minimizer. Unknown keywords are preserved verbatim in ExtensionData
// rather than rejected, per §6.
func SchemaFromValue(v Value) (*Schema, error) {
	switch v.Kind() {
	case KindBoolean:
		b, _ := v.AsBool()
		return &Schema{Valid: &b}, nil
	case KindObject:
		return schemaFromObject(v)
	default:
		return nil, &SchemaConstructionError{Reason: "schema must be a JSON object or boolean"}
	}
}

var knownKeywords = map[string]bool{
	"allOf": true, "anyOf": true, "oneOf": true, "not": true,
	"if": true, "then": true, "else": true,
	"type": true, "const": true, "enum": true,
	"minimum": true, "maximum": true, "exclusiveMinimum": true, "exclusiveMaximum": true, "multipleOf": true,
	"minLength": true, "maxLength": true, "pattern": true, "format": true,
	"contentEncoding": true, "contentMediaType": true,
	"items": true, "additionalItems": true, "minItems": true, "maxItems": true, "uniqueItems": true, "contains": true,
	"properties": true, "patternProperties": true, "additionalProperties": true, "propertyNames": true,
	"required": true, "dependencies": true, "minProperties": true, "maxProperties": true,
	"title": true, "description": true, "id": true, "$schema": true, "default": true,
}

func schemaFromObject(v Value) (*Schema, error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, err
	}
	s := &Schema{}

	if val, ok := obj.Get("allOf"); ok {
		list, err := schemaListFromValue(val)
		if err != nil {
			return nil, err
		}
		s.AllOf = list
	}
	if val, ok := obj.Get("anyOf"); ok {
		list, err := schemaListFromValue(val)
		if err != nil {
			return nil, err
		}
		s.AnyOf = list
	}
	if val, ok := obj.Get("oneOf"); ok {
		list, err := schemaListFromValue(val)
		if err != nil {
			return nil, err
		}
		s.OneOf = list
	}
	if val, ok := obj.Get("not"); ok {
		sub, err := SchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Not = sub
	}
	if val, ok := obj.Get("if"); ok {
		sub, err := SchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.If = sub
	}
	if val, ok := obj.Get("then"); ok {
		sub, err := SchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Then = sub
	}
	if val, ok := obj.Get("else"); ok {
		sub, err := SchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Else = sub
	}
	if val, ok := obj.Get("type"); ok {
		types, err := typeSetFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Type = types
	}
	if val, ok := obj.Get("const"); ok {
		s.Const = &val
	}
	if val, ok := obj.Get("enum"); ok {
		arr, err := val.AsArray()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "enum", Reason: "must be an array"}
		}
		s.Enum = append([]Value(nil), arr...)
	}
	if val, ok := obj.Get("minimum"); ok {
		s.Minimum = &val
	}
	if val, ok := obj.Get("maximum"); ok {
		s.Maximum = &val
	}
	if val, ok := obj.Get("exclusiveMinimum"); ok {
		s.ExclusiveMinimum = exclusiveBoundFromValue(val)
	}
	if val, ok := obj.Get("exclusiveMaximum"); ok {
		s.ExclusiveMaximum = exclusiveBoundFromValue(val)
	}
	if val, ok := obj.Get("multipleOf"); ok {
		s.MultipleOf = &val
	}
	if n, ok, err := intKeyword(obj, "minLength"); err != nil {
		return nil, err
	} else if ok {
		s.MinLength = &n
	}
	if n, ok, err := intKeyword(obj, "maxLength"); err != nil {
		return nil, err
	} else if ok {
		s.MaxLength = &n
	}
	if val, ok := obj.Get("pattern"); ok {
		str, err := val.AsString()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "pattern", Reason: "must be a string"}
		}
		s.Pattern = &str
	}
	if val, ok := obj.Get("format"); ok {
		str, err := val.AsString()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "format", Reason: "must be a string"}
		}
		s.Format = &str
	}
	if val, ok := obj.Get("contentEncoding"); ok {
		str, err := val.AsString()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "contentEncoding", Reason: "must be a string"}
		}
		s.ContentEncoding = &str
	}
	if val, ok := obj.Get("contentMediaType"); ok {
		str, err := val.AsString()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "contentMediaType", Reason: "must be a string"}
		}
		s.ContentMediaType = &str
	}
	if val, ok := obj.Get("items"); ok {
		it, err := itemsFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Items = it
	}
	if val, ok := obj.Get("additionalItems"); ok {
		bos, err := boolOrSchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.AdditionalItems = bos
	}
	if n, ok, err := intKeyword(obj, "minItems"); err != nil {
		return nil, err
	} else if ok {
		s.MinItems = &n
	}
	if n, ok, err := intKeyword(obj, "maxItems"); err != nil {
		return nil, err
	} else if ok {
		s.MaxItems = &n
	}
	if val, ok := obj.Get("uniqueItems"); ok {
		b, err := val.AsBool()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "uniqueItems", Reason: "must be a boolean"}
		}
		s.UniqueItems = &b
	}
	if val, ok := obj.Get("contains"); ok {
		sub, err := SchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Contains = sub
	}
	if val, ok := obj.Get("properties"); ok {
		m, err := schemaMapFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Properties = m
	}
	if val, ok := obj.Get("patternProperties"); ok {
		m, err := schemaMapFromValue(val)
		if err != nil {
			return nil, err
		}
		s.PatternProperties = m
	}
	if val, ok := obj.Get("additionalProperties"); ok {
		bos, err := boolOrSchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.AdditionalProperties = bos
	}
	if val, ok := obj.Get("propertyNames"); ok {
		sub, err := SchemaFromValue(val)
		if err != nil {
			return nil, err
		}
		s.PropertyNames = sub
	}
	if val, ok := obj.Get("required"); ok {
		arr, err := val.AsArray()
		if err != nil {
			return nil, &SchemaConstructionError{Keyword: "required", Reason: "must be an array of strings"}
		}
		names := make([]string, 0, len(arr))
		for _, e := range arr {
			str, err := e.AsString()
			if err != nil {
				return nil, &SchemaConstructionError{Keyword: "required", Reason: "must be an array of strings"}
			}
			names = append(names, str)
		}
		s.Required = names
	}
	if val, ok := obj.Get("dependencies"); ok {
		deps, err := dependenciesFromValue(val)
		if err != nil {
			return nil, err
		}
		s.Dependencies = deps
	}
	if n, ok, err := intKeyword(obj, "minProperties"); err != nil {
		return nil, err
	} else if ok {
		s.MinProperties = &n
	}
	if n, ok, err := intKeyword(obj, "maxProperties"); err != nil {
		return nil, err
	} else if ok {
		s.MaxProperties = &n
	}
	if val, ok := obj.Get("title"); ok {
		str, _ := val.AsString()
		s.Title = &str
	}
	if val, ok := obj.Get("description"); ok {
		str, _ := val.AsString()
		s.Description = &str
	}
	if val, ok := obj.Get("id"); ok {
		str, _ := val.AsString()
		s.ID = &str
	}
	if val, ok := obj.Get("$schema"); ok {
		str, _ := val.AsString()
		s.SchemaVersion = &str
	}
	if val, ok := obj.Get("default"); ok {
		s.Default = &val
	}

	var ext *OrderedMap[Value]
	obj.Each(func(key string, val Value) {
		if knownKeywords[key] {
			return
		}
		if ext == nil {
			ext = NewOrderedMap[Value]()
		}
		ext.Set(key, val)
	})
	s.ExtensionData = ext

	return s, nil
}

func intKeyword(obj *OrderedMap[Value], key string) (int, bool, error) {
	val, ok := obj.Get(key)
	if !ok {
		return 0, false, nil
	}
	bi, err := val.AsBigInt()
	if err != nil {
		return 0, false, &SchemaConstructionError{Keyword: key, Reason: "must be an integer"}
	}
	return int(bi.Int64()), true, nil
}

func schemaListFromValue(v Value) ([]*Schema, error) {
	arr, err := v.AsArray()
	if err != nil {
		return nil, &SchemaConstructionError{Reason: "expected an array of schemas"}
	}
	out := make([]*Schema, len(arr))
	for i, e := range arr {
		sub, err := SchemaFromValue(e)
		if err != nil {
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}

func schemaMapFromValue(v Value) (*OrderedMap[*Schema], error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, &SchemaConstructionError{Reason: "expected an object of schemas"}
	}
	out := NewOrderedMap[*Schema]()
	var convErr error
	obj.Each(func(key string, val Value) {
		if convErr != nil {
			return
		}
		sub, err := SchemaFromValue(val)
		if err != nil {
			convErr = err
			return
		}
		out.Set(key, sub)
	})
	if convErr != nil {
		return nil, convErr
	}
	return out, nil
}

func typeSetFromValue(v Value) ([]TypeName, error) {
	switch v.Kind() {
	case KindString:
		str, _ := v.AsString()
		return []TypeName{TypeName(str)}, nil
	case KindArray:
		arr, _ := v.AsArray()
		out := make([]TypeName, 0, len(arr))
		for _, e := range arr {
			str, err := e.AsString()
			if err != nil {
				return nil, &SchemaConstructionError{Keyword: "type", Reason: "must be a string or array of strings"}
			}
			out = append(out, TypeName(str))
		}
		return out, nil
	default:
		return nil, &SchemaConstructionError{Keyword: "type", Reason: "must be a string or array of strings"}
	}
}

func boolOrSchemaFromValue(v Value) (*BoolOrSchema, error) {
	if v.Kind() == KindBoolean {
		b, _ := v.AsBool()
		return &BoolOrSchema{Bool: &b}, nil
	}
	sub, err := SchemaFromValue(v)
	if err != nil {
		return nil, err
	}
	return &BoolOrSchema{Schema: sub}, nil
}

func exclusiveBoundFromValue(v Value) *ExclusiveBound {
	if v.Kind() == KindBoolean {
		b, _ := v.AsBool()
		return &ExclusiveBound{Bool: &b}
	}
	return &ExclusiveBound{Number: &v}
}

func itemsFromValue(v Value) (*Items, error) {
	if v.Kind() == KindArray {
		list, err := schemaListFromValue(v)
		if err != nil {
			return nil, err
		}
		return &Items{Tuple: list}, nil
	}
	sub, err := SchemaFromValue(v)
	if err != nil {
		return nil, err
	}
	return &Items{Single: sub}, nil
}

func dependenciesFromValue(v Value) (*OrderedMap[Dependency], error) {
	obj, err := v.AsObject()
	if err != nil {
		return nil, &SchemaConstructionError{Keyword: "dependencies", Reason: "must be an object"}
	}
	out := NewOrderedMap[Dependency]()
	var convErr error
	obj.Each(func(key string, val Value) {
		if convErr != nil {
			return
		}
		switch val.Kind() {
		case KindArray:
			arr, _ := val.AsArray()
			names := make([]string, 0, len(arr))
			for _, e := range arr {
				str, err := e.AsString()
				if err != nil {
					convErr = &SchemaConstructionError{Keyword: "dependencies", Reason: "name list must contain only strings"}
					return
				}
				names = append(names, str)
			}
			out.Set(key, Dependency{Kind: DependencyNames, Names: names})
		case KindObject, KindBoolean:
			sub, err := SchemaFromValue(val)
			if err != nil {
				convErr = err
				return
			}
			out.Set(key, Dependency{Kind: DependencySchema, Schema: sub})
		default:
			convErr = &SchemaConstructionError{Keyword: "dependencies", Reason: "value must be a name list or a schema"}
		}
	})
	if convErr != nil {
		return nil, convErr
	}
	return out, nil
}
