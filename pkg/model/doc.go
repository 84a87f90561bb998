// Package model implements the object dictionary of POWERLINK/CANopen nodes.
//
// # Hierarchy
//
//	Network (project)
//	└── Node (node ID, device description document)
//	    └── Dictionary
//	        ├── Object 0x1006 (VAR)
//	        └── Object 0x1F81 (ARRAY)
//	            ├── SubObject 0x00
//	            └── SubObject 0x01
//
// Objects and sub-objects are built once from the device description and are
// structurally immutable afterwards. Only the actual value changes, and the
// forced flag, which lives in the project file rather than on the entry.
//
// # Addressing
//
// Every entry carries the locator of its element in the device description,
// computed from its index (and sub-index) by package xpath:
//
//	//Object[@index='1006']
//	//Object[@index='1F81']/SubObject[@subIndex='01']
//
// # PDO Classification
//
// Each entry is classified once at construction from its PDO mapping, access
// type and cross-reference:
//
//	PDOmapping default|optional|RPDO  -> RPDO mappable if uniqueIDRef is set
//	                                     or access is rw|wo
//	else PDOmapping TPDO              -> TPDO mappable if uniqueIDRef is set
//	                                     or access is ro|rw
//
// The RPDO branch is tested first, so an entry mapped default or optional is
// never TPDO mappable.
//
// # Editability
//
// The actual value of an entry is editable only for VAR objects with a data
// type and an access type of rw or wo.
package model
