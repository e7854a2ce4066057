// Package recipe loads TOML recipes that describe a type and the bodies of
// its methods.
//
// A recipe declares the referenced types, the generated type, its fields
// and its methods:
//
//	[type]
//	name = "com.example.Counter"
//	super = "com.example.AbstractCounter"
//
//	[[fields]]
//	name = "count"
//	type = "int"
//
//	[[methods]]
//	name = "getCount"
//	returns = "long"
//	body = "getter"
//	field = "count"
//
// Bodies are stub, fixed, super, delegate, getter, setter, arguments and
// throw. Type names accept source names, internal names and descriptors.
package recipe
