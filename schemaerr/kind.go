package schemaerr

import "sort"

// Kind identifies a validation failure. Kinds are arranged in a tree via
// an explicit parent table rooted at KindValidation.
type Kind string

const (
	// KindValidation is the root of the taxonomy.
	KindValidation Kind = "validation_error"

	// KindType indicates the value's JSON type is not allowed by "type".
	KindType Kind = "type_error"

	// KindEnum indicates the value is not one of the "enum" members.
	KindEnum Kind = "enum_error"

	// KindFormat indicates a string failed its "format" checker.
	KindFormat Kind = "format_error"

	// KindPattern indicates a string does not match "pattern".
	KindPattern Kind = "pattern_error"

	// KindMultipleOf indicates a number is not a multiple of "multipleOf".
	KindMultipleOf Kind = "multiple_of_error"

	KindComparison       Kind = "comparison_error"
	KindEquality         Kind = "equal_error"
	KindRange            Kind = "range_error"
	KindMinimum          Kind = "minimum_error"
	KindMaximum          Kind = "maximum_error"
	KindExclusiveMinimum Kind = "exclusive_minimum_error"
	KindExclusiveMaximum Kind = "exclusive_maximum_error"
	KindMinimumLength    Kind = "minimum_length_error"
	KindMaximumLength    Kind = "maximum_length_error"

	KindItems           Kind = "items_error"
	KindUniqueItems     Kind = "unique_items_error"
	KindAdditionalItems Kind = "additional_items_error"
	KindMinimumItems    Kind = "minimum_items_error"
	KindMaximumItems    Kind = "maximum_items_error"
	KindContains        Kind = "contains_error"

	KindObject               Kind = "object_error"
	KindProperty             Kind = "property_error"
	KindRequiredProperty     Kind = "required_property_error"
	KindPropertyValue        Kind = "property_value_error"
	KindPropertyName         Kind = "property_name_error"
	KindAdditionalProperties Kind = "additional_properties_error"
	KindObjectSize           Kind = "object_size_error"
	KindMinimumProperties    Kind = "minimum_properties_error"
	KindMaximumProperties    Kind = "maximum_properties_error"
	KindDependency           Kind = "dependency_error"

	KindCombination Kind = "combination_error"
	KindAnyOf       Kind = "any_of_error"
	KindOneOf       Kind = "one_of_error"
	KindNot         Kind = "not_error"

	// KindFalseSchema is produced by the boolean schema false.
	KindFalseSchema Kind = "false_schema_error"
)

// parents maps every kind except the root to its parent kind.
var parents = map[Kind]Kind{
	KindType:       KindValidation,
	KindEnum:       KindValidation,
	KindFormat:     KindValidation,
	KindPattern:    KindFormat,
	KindMultipleOf: KindValidation,

	KindComparison:       KindValidation,
	KindEquality:         KindComparison,
	KindRange:            KindComparison,
	KindMinimum:          KindRange,
	KindMaximum:          KindRange,
	KindExclusiveMinimum: KindRange,
	KindExclusiveMaximum: KindRange,
	KindMinimumLength:    KindMinimum,
	KindMaximumLength:    KindMaximum,

	KindItems:           KindValidation,
	KindUniqueItems:     KindItems,
	KindAdditionalItems: KindItems,
	KindMinimumItems:    KindItems,
	KindMaximumItems:    KindItems,
	KindContains:        KindItems,

	KindObject:               KindValidation,
	KindProperty:             KindObject,
	KindRequiredProperty:     KindProperty,
	KindPropertyValue:        KindProperty,
	KindPropertyName:         KindProperty,
	KindAdditionalProperties: KindProperty,
	KindObjectSize:           KindObject,
	KindMinimumProperties:    KindObjectSize,
	KindMaximumProperties:    KindObjectSize,
	KindDependency:           KindObject,

	KindCombination: KindValidation,
	KindAnyOf:       KindCombination,
	KindOneOf:       KindCombination,
	KindNot:         KindCombination,

	KindFalseSchema: KindValidation,
}

// Error implements the error interface so a Kind can be used as an
// errors.Is target.
func (k Kind) Error() string {
	return string(k)
}

// Parent returns the parent kind, or the empty Kind for the root and for
// kinds outside the taxonomy.
func (k Kind) Parent() Kind {
	return parents[k]
}

// Valid reports whether k belongs to the taxonomy.
func (k Kind) Valid() bool {
	if k == KindValidation {
		return true
	}
	_, ok := parents[k]
	return ok
}

// IsA reports whether k equals ancestor or descends from it.
func (k Kind) IsA(ancestor Kind) bool {
	for cur := k; cur != ""; cur = parents[cur] {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Ancestors returns the chain from k up to the root, starting with k.
func (k Kind) Ancestors() []Kind {
	var chain []Kind
	for cur := k; cur != ""; cur = parents[cur] {
		chain = append(chain, cur)
	}
	return chain
}

// Kinds returns every kind of the taxonomy in lexical order.
func Kinds() []Kind {
	all := make([]Kind, 0, len(parents)+1)
	all = append(all, KindValidation)
	for k := range parents {
		all = append(all, k)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// KeywordKind returns the kind produced when the given schema keyword
// fails. The mapping is stable; callers may pattern-match on it.
//
// "additionalProperties" maps to KindAdditionalProperties, the kind used
// when it is false. When it is a schema, failures are reported per
// property as KindPropertyValue.
func KeywordKind(keyword string) Kind {
	switch keyword {
	case "type":
		return KindType
	case "enum":
		return KindEnum
	case "const":
		return KindEquality
	case "format":
		return KindFormat
	case "pattern":
		return KindPattern
	case "multipleOf":
		return KindMultipleOf
	case "minimum":
		return KindMinimum
	case "maximum":
		return KindMaximum
	case "exclusiveMinimum":
		return KindExclusiveMinimum
	case "exclusiveMaximum":
		return KindExclusiveMaximum
	case "minLength":
		return KindMinimumLength
	case "maxLength":
		return KindMaximumLength
	case "items":
		return KindItems
	case "uniqueItems":
		return KindUniqueItems
	case "additionalItems":
		return KindAdditionalItems
	case "minItems":
		return KindMinimumItems
	case "maxItems":
		return KindMaximumItems
	case "contains":
		return KindContains
	case "properties", "patternProperties":
		return KindPropertyValue
	case "required":
		return KindRequiredProperty
	case "propertyNames":
		return KindPropertyName
	case "additionalProperties":
		return KindAdditionalProperties
	case "minProperties":
		return KindMinimumProperties
	case "maxProperties":
		return KindMaximumProperties
	case "dependencies", "dependentRequired", "dependentSchemas":
		return KindDependency
	case "anyOf":
		return KindAnyOf
	case "oneOf":
		return KindOneOf
	case "not":
		return KindNot
	case "false":
		return KindFalseSchema
	default:
		return KindValidation
	}
}
