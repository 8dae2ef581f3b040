package field

import (
	"math/rand/v2"

	"github.com/artpar/scenarist/internal/document"
	"github.com/google/uuid"
)

// Sample returns a random value of the declared type, used to fill fields
// with throwaway data. Enum descriptors pick one of their allowed values.
func Sample(d Descriptor) document.Value {
	switch d.Type {
	case TypeString:
		return document.String("sample-" + uuid.New().String()[:8])
	case TypeNumber:
		return document.Number(float64(rand.IntN(100000)) / 100)
	case TypeInteger:
		return document.Number(rand.IntN(10000))
	case TypeBoolean:
		return document.Bool(rand.IntN(2) == 1)
	case TypeEnum:
		if len(d.Enum) > 0 {
			return document.String(d.Enum[rand.IntN(len(d.Enum))])
		}
		return DefaultFor(d.Type)
	default:
		return DefaultFor(d.Type)
	}
}
