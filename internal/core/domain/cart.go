package domain

import (
	"encoding/json"
	"fmt"
)

// ErrMalformedCart reports a stored cart payload that is not a JSON array of
// integer product ids. Callers are expected to fall back to an empty cart.
var ErrMalformedCart = fmt.Errorf("malformed cart payload")

// EncodeCart serializes a cart snapshot as a JSON array of product ids.
func EncodeCart(ids []int) []byte {
	if ids == nil {
		ids = []int{}
	}
	payload, _ := json.Marshal(ids)
	return payload
}

// DecodeCart parses a stored cart payload. An empty payload yields an empty
// cart; anything that is not an array of integers fails with ErrMalformedCart.
// Duplicate ids are tolerated since the caller reconstitutes a set.
func DecodeCart(raw []byte) ([]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}

	return ids, nil
}
