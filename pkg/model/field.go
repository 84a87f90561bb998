package model

// Field names one displayable property of a dictionary entry.
type Field uint8

// Entry fields in display order.
const (
	FieldIndex Field = iota
	FieldSubIndex
	FieldName
	FieldObjectType
	FieldDataType
	FieldLowLimit
	FieldHighLimit
	FieldAccessType
	FieldDefaultValue
	FieldActualValue
	FieldDenotation
	FieldPDOMapping
	FieldObjFlags
	FieldUniqueIDRef

	fieldCount
)

var fieldTable = [fieldCount]struct {
	label string
	attr  string
}{
	FieldIndex:        {"Index", "index"},
	FieldSubIndex:     {"Sub-index", "subIndex"},
	FieldName:         {"Name", "name"},
	FieldObjectType:   {"Object type", "objectType"},
	FieldDataType:     {"Data type", "dataType"},
	FieldLowLimit:     {"Low limit", "lowLimit"},
	FieldHighLimit:    {"High limit", "highLimit"},
	FieldAccessType:   {"Access type", "accessType"},
	FieldDefaultValue: {"Default value", "defaultValue"},
	FieldActualValue:  {"Actual value", "actualValue"},
	FieldDenotation:   {"Denotation", "denotation"},
	FieldPDOMapping:   {"PDO mapping", "PDOmapping"},
	FieldObjFlags:     {"Object flags", "objFlags"},
	FieldUniqueIDRef:  {"Unique ID reference", "uniqueIDRef"},
}

// String returns the display label of the field.
func (f Field) String() string {
	if f >= fieldCount {
		return "unknown"
	}
	return fieldTable[f].label
}

// XMLAttr returns the name of the attribute that stores the field.
func (f Field) XMLAttr() string {
	if f >= fieldCount {
		return ""
	}
	return fieldTable[f].attr
}

// AllFields returns every field in display order.
func AllFields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}
