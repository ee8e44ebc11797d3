// Package nibble implements the byte/nibble conversions and child-trie key
// prefixing the host executor needs to translate between the VM's internal
// trie addressing and the flat byte keys the state oracle understands.
package nibble

// ChildStoragePrefix is the reserved key prefix under which a named child
// trie is addressed within the flat, main-trie key space exposed to the
// oracle.
const ChildStoragePrefix = ":child_storage:default:"

// ToNibbles splits each byte of key into its high and low nibble, in order.
func ToNibbles(key []byte) []byte {
	out := make([]byte, 0, len(key)*2)
	for _, b := range key {
		out = append(out, b>>4, b&0x0f)
	}
	return out
}

// FromNibblesSuffixExtend pairs consecutive nibbles back into bytes. A
// trailing, unpaired nibble is extended to a byte with a zero low-nibble,
// matching the VM's own suffix-extension rule for odd-length nibble keys.
func FromNibblesSuffixExtend(nibbles []byte) []byte {
	out := make([]byte, 0, (len(nibbles)+1)/2)
	i := 0
	for ; i+1 < len(nibbles); i += 2 {
		out = append(out, nibbles[i]<<4|nibbles[i+1])
	}
	if i < len(nibbles) {
		out = append(out, nibbles[i]<<4)
	}
	return out
}

// PrefixedChildKey returns the flat byte key under which the oracle sees
// storage belonging to the named child trie: the reserved prefix, the
// child's name, then the key unchanged.
func PrefixedChildKey(child, key []byte) []byte {
	out := make([]byte, 0, len(ChildStoragePrefix)+len(child)+len(key))
	out = append(out, ChildStoragePrefix...)
	out = append(out, child...)
	out = append(out, key...)
	return out
}

// MaybePrefixed applies PrefixedChildKey when child is non-empty, and
// returns key unchanged for main-trie requests.
func MaybePrefixed(child, key []byte) []byte {
	if len(child) == 0 {
		return key
	}
	return PrefixedChildKey(child, key)
}
