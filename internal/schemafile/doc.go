// Package schemafile declares record types in YAML.
//
// A schema file lists types with their parents and slots:
//
//	version: "1"
//	types:
//	  - name: Address
//	    slots:
//	      - name: street
//	      - name: zip
//	        default: "00000"
//	  - name: Person
//	    extends: Entity
//	    slots:
//	      - name: id
//	        factory: uuid
//	        const: true
//	      - name: home
//	        kind: nested
//	        type: Address
//	        default: null
//	      - name: friends
//	        kind: list
//	        type: Person
//
// # Slots
//
//   - kind is one of field (the default), nested, dict or list.
//   - type names the record type of nested, dict and list slots. It may
//     name the declaring type or a type declared further down.
//   - default is any YAML value for field slots. For nested slots it is
//     null, which makes the slot nullable, or a mapping decoded as a record
//     of the slot's type. An explicit null is different from no default.
//   - factory is one of uuid, now, map or list and applies to field slots.
//   - policy is share (the default) or copy and selects whether a nested
//     default record is shared by every record that falls back to it.
//
// Parse and LoadFile read a file, Validate reports problems as
// diagnostics and Compile turns a valid file into a Registry of
// record.Types.
package schemafile
