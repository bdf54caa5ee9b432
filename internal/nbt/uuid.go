package nbt

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// UUIDToIntArray encodes a UUID as four big-endian 32-bit words, the form
// entity state uses for UUID fields.
func UUIDToIntArray(id uuid.UUID) IntArray {
	arr := make(IntArray, 4)
	for i := range arr {
		arr[i] = int32(binary.BigEndian.Uint32(id[i*4 : i*4+4]))
	}
	return arr
}

// IntArrayToUUID decodes the four-word form back into a UUID.
func IntArrayToUUID(t Tag) (uuid.UUID, error) {
	arr, ok := t.(IntArray)
	if !ok {
		return uuid.Nil, fmt.Errorf("uuid: expected int_array, got %v", typeOf(t))
	}
	if len(arr) != 4 {
		return uuid.Nil, fmt.Errorf("uuid: expected 4 ints, got %d", len(arr))
	}
	var id uuid.UUID
	for i, word := range arr {
		binary.BigEndian.PutUint32(id[i*4:i*4+4], uint32(word))
	}
	return id, nil
}

func typeOf(t Tag) string {
	if t == nil {
		return "nil"
	}
	return t.Type().String()
}
