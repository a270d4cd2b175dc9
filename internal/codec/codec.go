// Package codec encodes batch results as CBOR or JSON.
//
// CBOR uses Core Deterministic Encoding (RFC 8949 §4.2): the same result
// always produces identical bytes. Types implementing
// encoding.TextMarshaler, such as *dec.Dec, are written as text strings
// in both formats.
package codec

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.TextMarshaler = cbor.TextMarshalerTextString
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// An Encoder writes a stream of values.
type Encoder interface {
	Encode(v any) error
}

// A Decoder reads a stream of values written by an Encoder of the same
// format.
type Decoder interface {
	Decode(v any) error
}

// NewEncoder returns an encoder for format writing to w. JSON values are
// written one per line; CBOR values as a CBOR sequence.
func NewEncoder(w io.Writer, format string) (Encoder, error) {
	switch format {
	case FormatJSON:
		return json.NewEncoder(w), nil
	case FormatCBOR:
		return encMode.NewEncoder(w), nil
	}
	return nil, fmt.Errorf("codec: unknown format %q", format)
}

// NewDecoder returns a decoder for format reading from r.
func NewDecoder(r io.Reader, format string) (Decoder, error) {
	switch format {
	case FormatJSON:
		return json.NewDecoder(r), nil
	case FormatCBOR:
		return decMode.NewDecoder(r), nil
	}
	return nil, fmt.Errorf("codec: unknown format %q", format)
}
