// Package prompt extracts bracketed placeholder tags from a text template and
// renders the template with chosen values.
//
// A tag is the inner text of a non-greedy "[...]" span. Tags are returned in
// order of first occurrence and repeated tags collapse into one logical tag:
//
//	tags := prompt.ExtractTags("[a] x [b] [a]") // []string{"a", "b"}
//
// Render substitutes values tag by tag, in tag order. Each tag's value replaces
// the first remaining "[tag]" occurrence only, so the second "[a]" in
// "[a] x [a]" is left as written. The result is prefixed with a zero-padded
// sequence label:
//
//	out := prompt.Render("Wearing [color] [item]", []prompt.Fill{
//	    {Tag: "color", Value: "red"},
//	    {Tag: "item", Value: "hat"},
//	}, 7)
//	// "No.007 Wearing red hat"
//
// A Fill marked Missing leaves its placeholder in the text so that a tag
// without candidates stays visible in the output.
package prompt
