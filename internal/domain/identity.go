package domain

import "strings"

// idSeparator joins product id and variant key into a line item id. Both
// parts are escaped so ids stay collision-free even when a product id or
// variant key contains the separator itself.
const idSeparator = ":"

// LineItemID returns the composite identity for a product+variant pair.
// The same inputs always produce the same id, and distinct pairs never
// collide. An empty variant key is valid for products without variants.
func LineItemID(productID, variantKey string) string {
	return escapeIDPart(productID) + idSeparator + escapeIDPart(variantKey)
}

func escapeIDPart(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, idSeparator, `\`+idSeparator)
}
