// Package attrgen generates typed accessors for element attributes.
//
// Given a list of [Field]s, [Generator.Generate] emits a getter and a setter
// per attribute, either as methods on the element type itself or on a
// wrapper type embedding *webapp.Element. Output is formatted with
// goimports.
package attrgen
