package core

// Type is the semantic type of a field as declared in the schema.
// These are API-level types, not native database column types.
type Type string

// Semantic field types.
const (
	TypeAlias      Type = "alias" // placeholder for a reverse relation, no column
	TypeBigInteger Type = "bigInteger"
	TypeBoolean    Type = "boolean"
	TypeDate       Type = "date"
	TypeDateTime   Type = "dateTime"
	TypeDecimal    Type = "decimal"
	TypeFloat      Type = "float"
	TypeInteger    Type = "integer"
	TypeJSON       Type = "json"
	TypeString     Type = "string"
	TypeText       Type = "text"
	TypeTime       Type = "time"
	TypeTimestamp  Type = "timestamp"
	TypeUUID       Type = "uuid"
	TypeUnknown    Type = "unknown"
)

// Types lists every known semantic type.
var Types = []Type{
	TypeAlias, TypeBigInteger, TypeBoolean, TypeDate, TypeDateTime,
	TypeDecimal, TypeFloat, TypeInteger, TypeJSON, TypeString,
	TypeText, TypeTime, TypeTimestamp, TypeUUID, TypeUnknown,
}

// IsValid reports whether t is a known semantic type.
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// IsTemporal reports whether values of t carry date or time parts.
func (t Type) IsTemporal() bool {
	switch t {
	case TypeDate, TypeDateTime, TypeTime, TypeTimestamp:
		return true
	default:
		return false
	}
}

// String returns the type name.
func (t Type) String() string {
	return string(t)
}
