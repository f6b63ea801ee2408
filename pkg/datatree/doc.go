// Package datatree encodes sparse, path-indexed collections of values.
//
// A Tree maps paths such as {0;2} to ordered lists of values. Its persisted
// form (Encoded) is a flat, insertion-ordered map of path strings to item
// maps, where each item key embeds the path and the leaf index:
//
//	{
//	  "{0}": {"{0}(0)": "number:1.5", "{0}(1)": "pointXYZ:0,0,1"},
//	  "{1}": {"{1}(0)": "bool:true"}
//	}
//
// Leaves are written with the values codec. Empty text leaves ("text:") are
// never stored, and an empty tree encodes to nil so callers can omit the field.
package datatree
