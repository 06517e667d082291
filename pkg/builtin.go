package salt

import (
	"fmt"
	"io"
	"time"
)

// builtinPrint writes one value per line: () for unit, true/false for
// booleans and base-10 digits for integers.
func builtinPrint(w io.Writer, v Value) error {
	_, err := fmt.Fprintln(w, v.String())
	return err
}

// builtinTime returns milliseconds since the Unix epoch.
func builtinTime(clock func() time.Time) Value {
	return Integer(clock().UnixMilli())
}
