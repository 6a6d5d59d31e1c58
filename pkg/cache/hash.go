package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
)

// hashKey derives "<kind>:<component>:<digest>". The digest covers the
// component name, each parameter as name=value in name order, and the
// JSON form of opts. Negative zero hashes like zero, so a sector swept
// from -0 shares its entry with one swept from 0.
func hashKey(kind, component string, params map[string]float64, opts any) string {
	h := sha256.New()
	io.WriteString(h, component)
	for _, name := range slices.Sorted(maps.Keys(params)) {
		v := params[name]
		if v == 0 {
			v = 0
		}
		fmt.Fprintf(h, "\x00%s=%s", name, strconv.FormatFloat(v, 'g', -1, 64))
	}
	o, _ := json.Marshal(opts)
	h.Write([]byte{0})
	h.Write(o)
	return kind + ":" + component + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
